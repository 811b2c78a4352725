// Package binding connects a chat client to whatever surface displays the
// conversation and collects the text to send.
package binding

import "sync"

// LineKind tells an output how a line should be presented.
type LineKind int

const (
	// LineStatus is a connection status notice.
	LineStatus LineKind = iota
	// LineChat is a rendered chat message.
	LineChat
	// LineError reports a frame or transport problem.
	LineError
)

func (k LineKind) String() string {
	switch k {
	case LineStatus:
		return "status"
	case LineChat:
		return "chat"
	case LineError:
		return "error"
	default:
		return "unknown"
	}
}

// Line is a single unit of output. Text is plain text, never markup.
type Line struct {
	Kind LineKind
	Text string
}

// Input is the text box the user types into.
type Input interface {
	Value() string
	Clear()
}

// Output is the surface chat lines are appended to. Implementations are
// responsible for inserting Text safely for their medium.
type Output interface {
	Append(line Line) error
}

// Field is an in-memory Input.
type Field struct {
	mu    sync.Mutex
	value string
}

// NewField returns a field holding value.
func NewField(value string) *Field {
	return &Field{value: value}
}

// Set replaces the field contents.
func (f *Field) Set(value string) {
	f.mu.Lock()
	f.value = value
	f.mu.Unlock()
}

// Value returns the current contents.
func (f *Field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Clear empties the field.
func (f *Field) Clear() {
	f.Set("")
}
