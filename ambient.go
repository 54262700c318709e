package di

import (
	"sync"

	"github.com/havenwise/di/internal/cache"
	"github.com/havenwise/di/internal/events"
	"github.com/havenwise/di/internal/record"
)

// resolutionContext is the state shared by every frame of one top-level
// Resolve call tree: the resolution record tree used for cycle
// detection, and the cache backing Resolution-lifecycle registrations,
// which live for exactly one such tree.
type resolutionContext struct {
	tree     *record.Tree
	disposal *events.Registry
	cache    *cache.Store[regKey, any]
}

type regKey struct {
	container string
	regID     string
}

func (rc *resolutionContext) cached(r *Registration) (any, bool) {
	return rc.cache.Get(regKey{container: r.Container.Name, regID: r.ID.String()})
}

func (rc *resolutionContext) store(r *Registration, v any) {
	rc.cache.Set(regKey{container: r.Container.Name, regID: r.ID.String()}, v)
}

// ambientState is the single process-wide slot holding the resolution
// context for whatever top-level Resolve call is currently in flight. It
// is deliberately not goroutine-aware: di assumes a single cooperative
// call stack per resolution, the same assumption the corpus's own
// single-threaded resolution graphs make. Two genuinely concurrent,
// unrelated top-level Resolve calls on different goroutines will
// interleave their writes to this slot; that is out of scope. What the
// slot does guard against deterministically is disposing a container
// mid-resolution.
type ambientState struct {
	mu    sync.Mutex
	depth int
	ctx   *resolutionContext
}

var ambient ambientState

// join increments the ambient depth. If this call takes the depth from
// 0 to 1, it is the outermost frame and allocates a fresh resolution
// context rooted at root. Every other call observes depth already > 0
// and joins the existing context instead of allocating its own. leave is
// always called exactly once per join, in a defer, to unwind the depth
// count and tear the slot down when it returns to 0.
func (a *ambientState) join(root any) (ctx *resolutionContext, leave func()) {
	a.mu.Lock()
	a.depth++
	if a.depth == 1 {
		a.ctx = &resolutionContext{
			tree:     record.New(root),
			disposal: events.NewRegistry(),
			cache:    cache.New[regKey, any](),
		}
	}
	c := a.ctx
	a.mu.Unlock()

	return c, func() {
		a.mu.Lock()
		a.depth--
		done := a.depth == 0
		var ctx *resolutionContext
		if done {
			ctx = a.ctx
			a.ctx = nil
		}
		a.mu.Unlock()

		if done && ctx != nil {
			_ = ctx.disposal.Dispose()
		}
	}
}

// inFlight reports whether a resolution is currently in progress
// anywhere in the process.
func (a *ambientState) inFlight() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.depth > 0
}

var globalMiddleware = NewManager()

// GlobalMiddleware returns the process-wide Manager applied to every
// container's resolutions, ahead of each container's own local
// middleware.
func GlobalMiddleware() *Manager {
	return globalMiddleware
}
