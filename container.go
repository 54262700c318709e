package di

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/havenwise/di/internal/events"
	"github.com/havenwise/di/internal/registry"
)

// Container is a node in a hierarchy of service registries. Resolving an
// identifier that misses locally walks up to Parent (unless
// ResolveOptions.Local is set); registering, disposing, or mutating
// middleware on a container never affects its parent.
type Container struct {
	ID     uuid.UUID
	Name   string
	Parent *Container

	regs       *registry.Table[Identifier, *Registration]
	middleware *Manager
	disposal   *events.Registry

	resolved atomic.Int64
	failed   atomic.Int64

	mu       sync.RWMutex
	children []*Container
	disposed bool
}

// NewContainer creates a container named name, under parent. A nil
// parent makes it a root of its own hierarchy.
func NewContainer(name string, parent *Container) *Container {
	c := &Container{
		ID:         uuid.New(),
		Name:       name,
		Parent:     parent,
		regs:       registry.New[Identifier, *Registration](),
		middleware: NewManager(),
		disposal:   events.NewRegistry(),
	}
	if parent != nil {
		parent.mu.Lock()
		parent.children = append(parent.children, c)
		parent.mu.Unlock()
	}
	return c
}

// RootContainer is a ready-to-use root container, convenient for
// programs that only need one hierarchy and don't want to thread a
// *Container through their own setup.
var RootContainer = NewContainer("root", nil)

// Register adds id to the container's registry with the provider and
// lifecycle described by opts.
func (c *Container) Register(id Identifier, opts RegisterOptions) (*Registration, error) {
	c.mu.RLock()
	disposed := c.disposed
	c.mu.RUnlock()
	if disposed {
		return nil, &DisposedError{Container: c.Name}
	}

	reg, err := newRegistration(c, id, opts)
	if err != nil {
		return nil, err
	}
	if err := c.regs.Append(id, reg); err != nil {
		return nil, &DisposedError{Container: c.Name}
	}
	return reg, nil
}

// Unregister removes every registration under id from this container
// only (never from ancestors) and returns the count removed. Instances
// already built from a removed registration are left alone - Unregister
// is a registry change, not a disposal.
func (c *Container) Unregister(id Identifier) int {
	return c.regs.RemoveAll(id)
}

// IsRegistered reports whether id has at least one registration,
// searching ancestors too unless opts.Local is set.
func (c *Container) IsRegistered(id Identifier, opts *IsRegisteredOptions) bool {
	local := opts != nil && opts.Local

	for cur := c; cur != nil; cur = cur.Parent {
		if cur.regs.Has(id) {
			return true
		}
		if local {
			break
		}
	}
	return false
}

// ServiceIdentifiers returns every identifier registered directly on
// this container. Ancestors are not included.
func (c *Container) ServiceIdentifiers() []Identifier {
	return c.regs.Keys()
}

// Use appends mw to this container's local middleware chain and returns
// a token Unused accepts to remove it again.
func (c *Container) Use(mw Middleware) int {
	return c.middleware.Use(mw)
}

// Unused removes a middleware previously added with Use.
func (c *Container) Unused(id int) {
	c.middleware.Unused(id)
}

// Dispose tears the container down: every tracked Disposable instance is
// closed in LIFO order, every Singleton slot this container owns is
// cleared, and the container is detached from its parent, after which
// further Register/Resolve calls fail with a DisposedError. Dispose
// refuses and returns a ReentrantResolveError if a resolution is
// currently in flight anywhere in the process, since tearing down a
// registry mid-resolve could hand an in-progress factory a disposed
// dependency.
//
// Child containers are not disposed automatically - a child outliving a
// disposed parent (or vice versa) is the caller's responsibility, not
// this package's.
func (c *Container) Dispose() error {
	if ambient.inFlight() {
		return &ReentrantResolveError{Container: c.Name}
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	c.disposed = true
	c.mu.Unlock()

	var errs []error
	if err := c.disposal.Dispose(); err != nil {
		errs = append(errs, err)
	}

	for _, key := range c.regs.Keys() {
		for _, reg := range c.regs.Get(key) {
			reg.reset()
		}
	}
	c.regs.Dispose()
	_ = c.middleware.emitter.Dispose()

	if c.Parent != nil {
		c.Parent.detach(c)
	}

	return joinErrors(errs)
}

func (c *Container) detach(child *Container) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, ch := range c.children {
		if ch == child {
			c.children = append(c.children[:i:i], c.children[i+1:]...)
			break
		}
	}
}

// Statistics summarizes one container's registry and resolve history, as
// of the call. RegisteredCount counts individual registrations (the same
// identifier registered twice counts twice); ResolvedCount and
// FailedCount are running totals the default executor updates on every
// Resolve call against this container that reaches it - nested calls
// made from inside a factory included, calls answered by middleware
// without calling next, or returned as a Ref or Dynamic, excluded.
type Statistics struct {
	Container       string
	RegisteredCount int
	ResolvedCount   int64
	FailedCount     int64
	Children        int
}

// Statistics reports how many registrations c directly holds, how many
// Resolve calls against it have succeeded or failed, and how many child
// containers it currently has.
func (c *Container) Statistics() Statistics {
	c.mu.RLock()
	children := len(c.children)
	c.mu.RUnlock()

	registered := 0
	for _, key := range c.regs.Keys() {
		registered += len(c.regs.Get(key))
	}

	return Statistics{
		Container:       c.Name,
		RegisteredCount: registered,
		ResolvedCount:   c.resolved.Load(),
		FailedCount:     c.failed.Load(),
		Children:        children,
	}
}

func (c *Container) isDisposed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.disposed
}
