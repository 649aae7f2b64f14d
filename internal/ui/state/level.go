package state

import "github.com/netops-tools/dnac-console/internal/menu"

// Level holds the cursor state of one menu screen.
type Level struct {
	ID         string
	Title      string
	Items      []menu.Item
	Cursor     int
	LastCursor int
}

// NewLevel constructs a Level with the cursor on the first item.
func NewLevel(id, title string, items []menu.Item) *Level {
	return &Level{
		ID:         id,
		Title:      title,
		Items:      append([]menu.Item(nil), items...),
		LastCursor: -1,
	}
}

// IndexOf returns the index for a given item identifier.
func (l *Level) IndexOf(id string) int {
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Selected returns the item under the cursor.
func (l *Level) Selected() (menu.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return menu.Item{}, false
	}
	return l.Items[l.Cursor], true
}

// Remember stores the cursor so it can be restored after a child level pops.
func (l *Level) Remember() {
	l.LastCursor = l.Cursor
}

// Restore moves the cursor back to the remembered position, if still valid.
func (l *Level) Restore() {
	if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
		l.Cursor = l.LastCursor
	}
	l.LastCursor = -1
	l.clamp()
}
