package binding

import (
	"fmt"
	"html"
	"io"
	"sync"
)

// Writer prints one line per Line to a terminal or any other text stream.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Append writes the sanitized line followed by a newline.
func (w *Writer) Append(line Line) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := fmt.Fprintln(w.w, PlainText(line.Text)); err != nil {
		return fmt.Errorf("write line: %w", err)
	}
	return nil
}

// HTMLTranscript appends each line as an escaped paragraph element, so
// markup inside a message is shown as text rather than interpreted.
type HTMLTranscript struct {
	mu sync.Mutex
	w  io.Writer
}

// NewHTMLTranscript wraps w.
func NewHTMLTranscript(w io.Writer) *HTMLTranscript {
	return &HTMLTranscript{w: w}
}

// Append writes <p class="kind">text</p>.
func (t *HTMLTranscript) Append(line Line) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := fmt.Fprintf(t.w, "<p class=%q>%s</p>\n", line.Kind.String(), html.EscapeString(line.Text)); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
