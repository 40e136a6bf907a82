package model

const historySize = 5

// History stores recent universe hashes for cycle detection
type History struct {
	hashes []string
}

// Record adds a state to history and maintains size
func (h *History) Record(hash string) {
	h.hashes = append(h.hashes, hash)

	// Keep only the last few states, enough to catch period 1-3 cycles
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant checks if hash repeats one of the last three recorded states
func (h *History) IsStagnant(hash string) bool {
	if len(h.hashes) < 3 {
		return false
	}
	for i := 1; i <= 3; i++ {
		if h.hashes[len(h.hashes)-i] == hash {
			return true
		}
	}
	return false
}

// Reset forgets all recorded states
func (h *History) Reset() {
	h.hashes = nil
}
