package binding

import "sync"

// Buffer is an Output that keeps every appended line in memory.
type Buffer struct {
	mu    sync.Mutex
	lines []Line
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append records the line.
func (b *Buffer) Append(line Line) error {
	b.mu.Lock()
	b.lines = append(b.lines, line)
	b.mu.Unlock()
	return nil
}

// Lines returns a copy of the recorded lines in arrival order.
func (b *Buffer) Lines() []Line {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len reports how many lines were recorded.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}
