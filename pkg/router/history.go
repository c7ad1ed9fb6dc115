package router

// History abstracts the navigation stack. The browser driver backs it with
// the real history API; tests and the dev server use MemoryHistory.
type History interface {
	// Push appends an entry and makes it current.
	Push(path string)

	// Replace swaps the current entry without growing the stack.
	Replace(path string)

	// Current returns the current entry, or "" when the stack is empty.
	Current() string

	// Back moves one entry back. It reports whether a move happened.
	Back() (string, bool)

	// Forward moves one entry forward. It reports whether a move happened.
	Forward() (string, bool)
}

// MemoryHistory is an in-process History.
type MemoryHistory struct {
	stack []string
	idx   int
}

// NewMemoryHistory returns an empty history.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{idx: -1}
}

// Push drops any forward entries, the way a browser does.
func (h *MemoryHistory) Push(path string) {
	h.stack = append(h.stack[:h.idx+1], path)
	h.idx = len(h.stack) - 1
}

func (h *MemoryHistory) Replace(path string) {
	if h.idx < 0 {
		h.Push(path)
		return
	}
	h.stack[h.idx] = path
}

func (h *MemoryHistory) Current() string {
	if h.idx < 0 {
		return ""
	}
	return h.stack[h.idx]
}

func (h *MemoryHistory) Back() (string, bool) {
	if h.idx <= 0 {
		return "", false
	}
	h.idx--
	return h.stack[h.idx], true
}

func (h *MemoryHistory) Forward() (string, bool) {
	if h.idx < 0 || h.idx >= len(h.stack)-1 {
		return "", false
	}
	h.idx++
	return h.stack[h.idx], true
}

// Len returns the number of entries in the stack.
func (h *MemoryHistory) Len() int { return len(h.stack) }
