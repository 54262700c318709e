package di

import "sync"

// Ref is a lazy, memoized handle to a service: the wrapped identifier is
// not resolved until Current is first called, and the result - value or
// error - is cached for every subsequent call. Requesting a Ref instead
// of an eager value is how a constructor breaks a cycle: the edge that
// produced the Ref is exempt from cycle detection, because the actual
// resolution it performs happens later, outside the resolution tree that
// created it.
type Ref struct {
	container *Container
	id        Identifier
	opts      *ResolveOptions

	mu    sync.Mutex
	ran   bool
	value any
	err   error
}

func newRef(c *Container, id Identifier, opts *ResolveOptions) *Ref {
	return &Ref{container: c, id: id, opts: opts}
}

// Current resolves the wrapped identifier on first call and returns the
// same value or error on every call thereafter.
func (r *Ref) Current() (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ran {
		r.value, r.err = r.container.Resolve(r.id, r.opts)
		r.ran = true
	}
	return r.value, r.err
}

// Resolved reports whether Current has already run, without triggering
// it.
func (r *Ref) Resolved() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ran
}

// RefOf resolves a Ref's wrapped value as T, returning an error if the
// underlying resolution failed or the value is not assignable to T.
func RefOf[T any](r *Ref) (T, error) {
	var zero T
	v, err := r.Current()
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, &InvalidOptionsError{Reason: "resolved value is not assignable to requested type"}
	}
	return t, nil
}

// Dynamic is a re-evaluating handle to a service: every call to Current
// performs a fresh resolution against the container it was created from,
// rather than caching the first result the way Ref does. Like Ref, the
// edge that produced a Dynamic is exempt from cycle detection.
type Dynamic struct {
	container *Container
	id        Identifier
	opts      *ResolveOptions

	mu       sync.Mutex
	resolved bool
}

func newDynamic(c *Container, id Identifier, opts *ResolveOptions) *Dynamic {
	return &Dynamic{container: c, id: id, opts: opts}
}

// Current resolves the wrapped identifier again, every time it is
// called. Unlike Ref, the result is never cached - only the fact that a
// read has happened at least once is.
func (d *Dynamic) Current() (any, error) {
	d.mu.Lock()
	d.resolved = true
	d.mu.Unlock()
	return d.container.Resolve(d.id, d.opts)
}

// Resolved reports whether Current has been called at least once.
func (d *Dynamic) Resolved() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resolved
}

// DynamicOf resolves a Dynamic's current value as T.
func DynamicOf[T any](d *Dynamic) (T, error) {
	var zero T
	v, err := d.Current()
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, &InvalidOptionsError{Reason: "resolved value is not assignable to requested type"}
	}
	return t, nil
}
