package di

import "github.com/havenwise/di/internal/events"

// Disposable is implemented by a service instance that holds resources
// needing an explicit release - a connection pool, a file handle, a
// background goroutine. Singleton instances that implement Disposable
// are closed, in reverse order of construction, when their owning
// container is disposed. Resolution-lifecycle instances that implement it are closed
// when the top-level Resolve call tree that produced them finishes.
type Disposable interface {
	Close() error
}

// trackDisposable registers instance for disposal against registry, if
// it implements Disposable. Anything else is left untouched.
func trackDisposable(registry *events.Registry, instance any) {
	if d, ok := instance.(Disposable); ok {
		registry.Track(events.CloserFunc(d.Close))
	}
}
