package state

// Scroll tracks the first visible line of a read-only text body.
type Scroll struct {
	Offset int
	Total  int
}

func (s *Scroll) maxOffset(visible int) int {
	if visible <= 0 {
		visible = 1
	}
	if s.Total <= visible {
		return 0
	}
	return s.Total - visible
}

// By moves the offset by delta lines, keeping the last page full.
func (s *Scroll) By(delta, visible int) bool {
	old := s.Offset
	s.Offset = clamp(s.Offset+delta, 0, s.maxOffset(visible))
	return s.Offset != old
}

// PageUp scrolls back one page.
func (s *Scroll) PageUp(visible int) bool {
	return s.By(-max(visible, 1), visible)
}

// PageDown scrolls forward one page.
func (s *Scroll) PageDown(visible int) bool {
	return s.By(max(visible, 1), visible)
}

// Home jumps to the first line.
func (s *Scroll) Home() bool {
	old := s.Offset
	s.Offset = 0
	return old != 0
}

// End jumps so the last line sits at the bottom.
func (s *Scroll) End(visible int) bool {
	old := s.Offset
	s.Offset = s.maxOffset(visible)
	return old != s.Offset
}

// Visible returns the range of lines to draw.
func (s *Scroll) Visible(visible int) (start, end int) {
	s.Offset = clamp(s.Offset, 0, s.maxOffset(visible))
	end = s.Offset + visible
	if visible <= 0 || end > s.Total {
		end = s.Total
	}
	return s.Offset, end
}
