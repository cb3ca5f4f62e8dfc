package server

import (
	"sync"
	"time"
)

// Hub tracks the servers of all live sessions so they can be notified on
// shutdown.
type Hub struct {
	mu      sync.Mutex
	servers map[*Server]struct{}
}

func NewHub() *Hub {
	return &Hub{servers: make(map[*Server]struct{})}
}

func (h *Hub) Register(s *Server) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.servers[s] = struct{}{}
}

func (h *Hub) Unregister(s *Server) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.servers, s)
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.servers)
}

// Shutdown notifies every registered server and waits for their sessions to
// unregister, up to the given timeout.
func (h *Hub) Shutdown(timeout time.Duration) {
	h.mu.Lock()
	for s := range h.servers {
		s.Shutdown()
	}
	h.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Len() == 0 {
			return
		}
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}
