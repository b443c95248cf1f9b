// Package ansi provides ANSI escape code constants and a palette that
// applies them only when the destination is a color-capable terminal.
package ansi

import (
	"os"
	"strings"
)

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Yellow = "\033[33m"
	Green  = "\033[32m"
	Red    = "\033[31m"
	Cyan   = "\033[36m"
)

// Palette styles strings. The zero value emits plain text.
type Palette struct {
	Enabled bool
}

// Paint wraps s in the given codes followed by Reset. With the palette
// disabled, or no codes, s is returned unchanged.
func (p Palette) Paint(s string, codes ...string) string {
	if !p.Enabled || len(codes) == 0 {
		return s
	}
	return strings.Join(codes, "") + s + Reset
}

// ForFile returns a palette enabled when f is a character device and the
// NO_COLOR environment variable is unset.
func ForFile(f *os.File) Palette {
	if f == nil || os.Getenv("NO_COLOR") != "" {
		return Palette{}
	}
	info, err := f.Stat()
	if err != nil {
		return Palette{}
	}
	return Palette{Enabled: info.Mode()&os.ModeCharDevice != 0}
}
