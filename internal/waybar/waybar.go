// Package waybar emits merged status snapshots in the JSON line
// format waybar's custom module protocol expects.
package waybar

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/nerrad567/shellybar/internal/render"
)

// Payload is one snapshot as consumed by the bar widget.
type Payload struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
}

// Merge combines per-device fragments into a single payload. Texts are
// joined with the configured separator, tooltips with newlines, in the
// order the fragments are given.
func Merge(fragments []render.Fragment, separator string) Payload {
	texts := make([]string, len(fragments))
	tooltips := make([]string, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Text
		tooltips[i] = f.Tooltip
	}
	return Payload{
		Text:    strings.Join(texts, separator),
		Tooltip: strings.Join(tooltips, "\n"),
	}
}

// Writer serialises payloads onto a stream, one JSON object per line.
// It is safe for concurrent use; the bar reads whole lines, so two
// snapshots must never interleave.
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriter wraps an output stream, normally stdout.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc}
}

// Write emits one payload line.
func (w *Writer) Write(p Payload) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enc.Encode(p); err != nil {
		return fmt.Errorf("waybar: writing payload: %w", err)
	}
	return nil
}
