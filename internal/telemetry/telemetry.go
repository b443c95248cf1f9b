// Package telemetry appends catalog watch events to a JSON lines file.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event kinds identify the type of telemetry event.
const (
	KindWatchStart   = "watch_start"
	KindWatchStop    = "watch_stop"
	KindReload       = "reload"
	KindReloadFailed = "reload_failed"
)

// Event is a single telemetry record.
type Event struct {
	Timestamp  time.Time `json:"ts"`
	Kind       string    `json:"kind"`
	Catalog    string    `json:"catalog"`
	Units      int       `json:"units,omitempty"`
	Unresolved int       `json:"unresolved,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Emitter appends events to a JSONL file. It is safe for concurrent use.
// A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	now  func() time.Time
	mu   sync.Mutex
}

// NewEmitter opens path for appending, creating it if needed.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{file: f, enc: json.NewEncoder(f), now: time.Now}, nil
}

// Emit writes evt, stamping it with the current time when Timestamp is zero.
// Calling Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if evt.Timestamp.IsZero() {
		evt.Timestamp = e.now().UTC()
	}
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Close closes the underlying file. Calling Close on a nil Emitter is a
// no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}
