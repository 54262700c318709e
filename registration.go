package di

import (
	"sync"

	"github.com/google/uuid"

	"github.com/havenwise/di/internal/cache"
)

// singletonSlot is the key the one instance a Singleton Registration ever
// holds is cached under - the slot only ever holds the one entry, but
// cache.Store wants a comparable key type.
type singletonSlot struct{}

// Registration is the record a container keeps for one registered
// Identifier: its provider, its lifecycle, and - for the Singleton
// lifecycle - the slot an already-built instance is cached in.
type Registration struct {
	ID        uuid.UUID
	Container *Container
	Ident     Identifier
	Prov      Provider
	Life      Lifecycle

	mu    sync.Mutex
	built bool
	slot  *cache.Store[singletonSlot, any]
}

func newRegistration(c *Container, id Identifier, opts RegisterOptions) (*Registration, error) {
	prov, err := opts.provider()
	if err != nil {
		return nil, err
	}

	return &Registration{
		ID:        uuid.New(),
		Container: c,
		Ident:     id,
		Prov:      prov,
		Life:      opts.Lifecycle(),
		slot:      cache.New[singletonSlot, any](),
	}, nil
}

// cached returns the cached instance and true if one was already built
// for a Singleton registration. First-writer-wins: concurrent resolvers
// racing to build the same singleton all construct, but only the first
// to finish has its instance kept.
func (r *Registration) cached() (any, bool) {
	r.mu.Lock()
	built := r.built
	r.mu.Unlock()
	if !built {
		return nil, false
	}
	return r.slot.Get(singletonSlot{})
}

// store keeps instance as the registration's cached singleton if none has
// been stored yet, and reports whether this call was the one that won
// that race.
func (r *Registration) store(instance any) (kept any, first bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.built {
		v, _ := r.slot.Get(singletonSlot{})
		return v, false
	}
	r.slot.Set(singletonSlot{}, instance)
	r.built = true
	return instance, true
}

// reset clears a cached singleton instance, used when a container is
// disposed so a subsequent (programmer-error) resolve doesn't hand back
// a disposed instance.
func (r *Registration) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slot.Clear()
	r.built = false
}
