package sse

import (
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Registry indexes open streams by "<tenantID>:<userID>". A key may hold any
// number of streams (several tabs, several devices).
type Registry struct {
	mu      sync.RWMutex
	streams map[string][]*Stream
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{streams: make(map[string][]*Stream)}
}

// Register adds s under its key.
func (r *Registry) Register(s *Stream) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := s.Key()
	r.streams[key] = append(r.streams[key], s)
}

// Unregister removes s by identity. It reports whether s was present.
func (r *Registry) Unregister(s *Stream) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := s.Key()
	list := r.streams[key]
	i := slices.Index(list, s)
	if i < 0 {
		return false
	}

	list = slices.Delete(list, i, i+1)
	if len(list) == 0 {
		delete(r.streams, key)
	} else {
		r.streams[key] = list
	}
	return true
}

// AllUnder returns every stream belonging to the tenant.
func (r *Registry) AllUnder(tenantID uuid.UUID) []*Stream {
	prefix := tenantID.String() + ":"

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Stream
	for key, list := range r.streams {
		if strings.HasPrefix(key, prefix) {
			out = append(out, list...)
		}
	}
	return out
}

// All returns every open stream.
func (r *Registry) All() []*Stream {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Flatten(lo.Values(r.streams))
}

// Len returns the number of open streams.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, list := range r.streams {
		n += len(list)
	}
	return n
}
