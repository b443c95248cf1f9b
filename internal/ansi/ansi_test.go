package ansi

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPaint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		palette Palette
		codes   []string
		want    string
	}{
		{"disabled", Palette{}, []string{Bold, Red}, "km"},
		{"no codes", Palette{Enabled: true}, nil, "km"},
		{"one code", Palette{Enabled: true}, []string{Green}, Green + "km" + Reset},
		{"stacked", Palette{Enabled: true}, []string{Bold, Red}, Bold + Red + "km" + Reset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.palette.Paint("km", tt.codes...); got != tt.want {
				t.Errorf("Paint = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestForFile_RegularFileIsPlain(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if ForFile(f).Enabled {
		t.Error("palette enabled for a regular file")
	}
	if ForFile(nil).Enabled {
		t.Error("palette enabled for nil file")
	}
}
