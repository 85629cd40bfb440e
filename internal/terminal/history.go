package terminal

const maxHistory = 100

// history keeps submitted lines for recall with the Up/Down keys.
type history struct {
	lines []string
	pos   int    // len(lines) when not browsing
	draft string // input being typed before browsing started
}

func (h *history) add(line string) {
	if n := len(h.lines); n == 0 || h.lines[n-1] != line {
		h.lines = append(h.lines, line)
	}
	if over := len(h.lines) - maxHistory; over > 0 {
		h.lines = append(h.lines[:0], h.lines[over:]...)
	}
	h.pos = len(h.lines)
	h.draft = ""
}

// prev moves to the previous line. current is kept as the draft when browsing starts.
func (h *history) prev(current string) string {
	if len(h.lines) == 0 {
		return current
	}
	if h.pos == len(h.lines) {
		h.draft = current
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.lines[h.pos]
}

// next moves towards the newest line and back to the draft.
func (h *history) next() string {
	if h.pos < len(h.lines) {
		h.pos++
	}
	if h.pos == len(h.lines) {
		return h.draft
	}
	return h.lines[h.pos]
}
