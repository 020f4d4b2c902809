package bridge

import (
	"sync"

	"github.com/yourusername/flash-convert-go/internal/domain"
)

// listenerRegistry fans progress events out to subscribed listeners.
// Handles stay valid after the operation finishes; removing twice is
// harmless.
type listenerRegistry struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]domain.ProgressListener
}

func newListenerRegistry() *listenerRegistry {
	return &listenerRegistry{listeners: make(map[int]domain.ProgressListener)}
}

func (r *listenerRegistry) Add(fn domain.ProgressListener) domain.ListenerHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	return &listenerHandle{registry: r, id: id}
}

func (r *listenerRegistry) Emit(ev domain.ProgressEvent) {
	r.mu.RLock()
	fns := make([]domain.ProgressListener, 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

type listenerHandle struct {
	registry *listenerRegistry
	id       int
}

func (h *listenerHandle) Remove() error {
	h.registry.mu.Lock()
	defer h.registry.mu.Unlock()
	delete(h.registry.listeners, h.id)
	return nil
}
