package scoreserver

import "sync"

// hub fans accepted scores out to live feed subscribers.
// A subscriber that falls behind loses messages rather than blocking posts.
type hub struct {
	mu   sync.Mutex
	subs map[chan []byte]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[chan []byte]struct{})}
}

// subscribe registers a new subscriber.
func (h *hub) subscribe() chan []byte {
	ch := make(chan []byte, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// unsubscribe removes a subscriber and closes its channel.
func (h *hub) unsubscribe(ch chan []byte) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// publish sends msg to every subscriber without blocking.
// Returns the number of subscribers that received it.
func (h *hub) publish(msg []byte) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	for ch := range h.subs {
		select {
		case ch <- msg:
			sent++
		default:
		}
	}
	return sent
}

// count returns the number of subscribers.
func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
