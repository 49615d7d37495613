package notifications

import "sync"

// defaultHistoryCapacity bounds the in-memory notification log. Old entries
// are evicted oldest-first; the log exists for the in-app notification screen
// and debugging, not as durable storage.
const defaultHistoryCapacity = 50

// History is a bounded, concurrency-safe log of rendered notifications.
// Every rendered payload lands here regardless of whether push delivery was
// granted or succeeded.
type History struct {
	mu       sync.Mutex
	capacity int
	entries  []Payload
}

// NewHistory creates a History with the default capacity of 50 entries.
func NewHistory() *History {
	return NewHistoryWithCapacity(defaultHistoryCapacity)
}

// NewHistoryWithCapacity creates a History bounded to capacity entries.
// Non-positive capacities fall back to the default.
func NewHistoryWithCapacity(capacity int) *History {
	if capacity <= 0 {
		capacity = defaultHistoryCapacity
	}
	return &History{capacity: capacity}
}

// Append records a payload, evicting the oldest entry when full.
func (h *History) Append(p Payload) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, p)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[len(h.entries)-h.capacity:]
	}
}

// All returns the recorded payloads, oldest first.
func (h *History) All() []Payload {
	h.mu.Lock()
	defer h.mu.Unlock()

	copied := make([]Payload, len(h.entries))
	copy(copied, h.entries)
	return copied
}

// Len returns the number of recorded payloads.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
