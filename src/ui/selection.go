package ui

// NextIndex moves the selection down, wrapping from the last row to the first.
func NextIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i >= n-1 {
		return 0
	}
	return i + 1
}

// PrevIndex moves the selection up, wrapping from the first row to the last.
func PrevIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i <= 0 {
		return n - 1
	}
	return i - 1
}

// clampIndex keeps i inside [0, n).
func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// scrollOffset returns the first visible row so that selected stays inside a
// window of visible rows, moving the window as little as possible.
func scrollOffset(selected, offset, visible, n int) int {
	if visible <= 0 || n <= visible {
		return 0
	}
	if selected < offset {
		offset = selected
	}
	if selected >= offset+visible {
		offset = selected - visible + 1
	}
	if last := n - visible; offset > last {
		offset = last
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
