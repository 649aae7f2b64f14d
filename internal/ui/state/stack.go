package state

import "strings"

// Titled is anything that can appear in a breadcrumb.
type Titled interface {
	Title() string
}

// Stack is the navigation stack. The bottom entry is the root and is never
// popped.
type Stack[V Titled] struct {
	entries []V
}

// NewStack returns a stack holding root.
func NewStack[V Titled](root V) *Stack[V] {
	return &Stack[V]{entries: []V{root}}
}

// Push makes v the current entry.
func (s *Stack[V]) Push(v V) {
	s.entries = append(s.entries, v)
}

// Pop removes the current entry. At the root it does nothing and reports false.
func (s *Stack[V]) Pop() (V, bool) {
	var zero V
	if len(s.entries) <= 1 {
		return zero, false
	}
	top := s.entries[len(s.entries)-1]
	s.entries[len(s.entries)-1] = zero
	s.entries = s.entries[:len(s.entries)-1]
	return top, true
}

// Current returns the top entry.
func (s *Stack[V]) Current() V {
	return s.entries[len(s.entries)-1]
}

// Depth reports the number of entries.
func (s *Stack[V]) Depth() int {
	return len(s.entries)
}

// Breadcrumb joins the non-empty titles of every entry.
func (s *Stack[V]) Breadcrumb(sep string) string {
	parts := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		if title := strings.TrimSpace(e.Title()); title != "" {
			parts = append(parts, title)
		}
	}
	return strings.Join(parts, sep)
}
