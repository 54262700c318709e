package di

import (
	"sync"

	"github.com/havenwise/di/internal/events"
)

// Params carries the state a Middleware can inspect or rewrite before
// calling Next, and that the default Executor ultimately resolves
// against.
type Params struct {
	Container *Container
	Ident     Identifier
	Opts      *ResolveOptions
}

// Next invokes the remainder of the middleware chain (or the container's
// default Executor, if this is the last link) and returns its result.
type Next func(params Params) (any, error)

// Middleware observes or rewrites a resolution. Calling next proceeds to
// the rest of the chain; returning without calling next short-circuits
// it, e.g. to serve a cached value or reject the call outright.
type Middleware func(params Params, next Next) (any, error)

// Executor is the terminal link of a chain: the container's own
// resolution logic, with no further middleware to call.
type Executor func(params Params) (any, error)

type middlewareEntry struct {
	id int
	mw Middleware
}

const (
	eventChange = "change"
	eventBefore = "before"
	eventAfter  = "after"
	eventError  = "error"
)

// Manager holds an ordered chain of Middleware plus before/after/error
// listeners. A container has exactly one local Manager; one additional
// global Manager (see GlobalMiddleware) applies to every container in
// the process. The chain is not cached: Container.Resolve composes it
// afresh from the current lists (via Wrap) on every call, so a Use or
// Unused takes effect on the next Resolve. Use and Unused also emit a
// change event, observable through OnChange.
type Manager struct {
	mu      sync.Mutex
	entries []middlewareEntry
	nextID  int

	emitter *events.Emitter
}

// NewManager builds an empty Manager.
func NewManager() *Manager {
	return &Manager{emitter: events.NewEmitter()}
}

// Use appends mw to the end of the chain and returns a token that Unused
// accepts to remove it again.
func (m *Manager) Use(mw Middleware) int {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.entries = append(m.entries, middlewareEntry{id: id, mw: mw})
	m.mu.Unlock()
	m.emitter.Emit(eventChange)
	return id
}

// Unused removes the middleware previously returned by Use with this
// token. It is a no-op if the token is unknown or already removed.
func (m *Manager) Unused(id int) {
	m.mu.Lock()
	for i, e := range m.entries {
		if e.id == id {
			m.entries = append(m.entries[:i:i], m.entries[i+1:]...)
			break
		}
	}
	m.mu.Unlock()
	m.emitter.Emit(eventChange)
}

// OnChange registers a listener invoked whenever the chain's membership
// changes. It returns a function that removes the listener.
func (m *Manager) OnChange(fn func()) func() {
	closer := m.emitter.On(eventChange, func(_ ...any) { fn() })
	return func() { _ = closer.Dispose() }
}

// OnBefore registers a listener invoked just before each frame of this
// manager's portion of the chain runs - once for the terminal and once
// per middleware, so N middlewares fire it N+1 times per resolution.
func (m *Manager) OnBefore(fn func(Params)) func() {
	closer := m.emitter.On(eventBefore, func(args ...any) { fn(args[0].(Params)) })
	return func() { _ = closer.Dispose() }
}

// OnAfter registers a listener invoked after each frame of this
// manager's portion of the chain completes without error.
func (m *Manager) OnAfter(fn func(Params, any)) func() {
	closer := m.emitter.On(eventAfter, func(args ...any) { fn(args[0].(Params), args[1]) })
	return func() { _ = closer.Dispose() }
}

// OnError registers a listener invoked when a frame of this manager's
// portion of the chain returns an error; an error that passes through
// several frames fires it once per frame.
func (m *Manager) OnError(fn func(Params, error)) func() {
	closer := m.emitter.On(eventError, func(args ...any) { fn(args[0].(Params), args[1].(error)) })
	return func() { _ = closer.Dispose() }
}

func (m *Manager) snapshot() []Middleware {
	m.mu.Lock()
	defer m.mu.Unlock()
	mws := make([]Middleware, len(m.entries))
	for i, e := range m.entries {
		mws[i] = e.mw
	}
	return mws
}

// Wrap composes this manager's middleware in front of terminal, emitting
// a before/after/error triple around every frame in the composed chain -
// the terminal itself, plus each middleware in turn - so that N
// middlewares registered on one Manager produce N+1 nested pairs, not a
// single pair for the whole call. Containers use it to chain the global
// manager in front of their own local one, ahead of the default Executor.
func (m *Manager) Wrap(terminal Next) Next {
	mws := m.snapshot()

	next := m.instrumented(terminal)
	for i := len(mws) - 1; i >= 0; i-- {
		mw := mws[i]
		n := next
		frame := func(p Params) (any, error) { return mw(p, n) }
		next = m.instrumented(frame)
	}
	return next
}

// instrumented wraps a single frame - the terminal or one middleware's
// call into the rest of the chain - with this manager's before/after/
// error emission.
func (m *Manager) instrumented(frame Next) Next {
	return func(p Params) (any, error) {
		m.emitter.Emit(eventBefore, p)
		v, err := frame(p)
		if err != nil {
			m.emitter.Emit(eventError, p, err)
			return v, err
		}
		m.emitter.Emit(eventAfter, p, v)
		return v, nil
	}
}
