package di

import (
	"encoding/json"
	"fmt"
)

// Lifecycle controls how a registration's produced instances are cached
// across resolutions.
type Lifecycle int

const (
	// Transient produces a fresh instance on every resolution. This is the
	// default for UseClass, UseFactory, and UseAlias registrations.
	Transient Lifecycle = iota

	// Singleton caches one instance per registration, for the lifetime of
	// the container that owns it. UseValue registrations always behave as
	// Singleton, since the value is already built.
	Singleton

	// Resolution caches one instance per registration per top-level
	// Resolve call tree, in the resolution context - a fresh instance is
	// produced for each new outermost Resolve, but repeated resolutions of
	// the same registration within that one call tree share it.
	Resolution
)

// String returns the lifecycle's name.
func (l Lifecycle) String() string {
	switch l {
	case Transient:
		return "Transient"
	case Singleton:
		return "Singleton"
	case Resolution:
		return "Resolution"
	default:
		return fmt.Sprintf("Lifecycle(%d)", int(l))
	}
}

// IsValid reports whether l is one of the three defined lifecycles.
func (l Lifecycle) IsValid() bool {
	return l >= Transient && l <= Resolution
}

// MarshalText implements encoding.TextMarshaler.
func (l Lifecycle) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, &LifecycleError{Value: int(l)}
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Lifecycle) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Transient", "transient":
		*l = Transient
	case "Singleton", "singleton":
		*l = Singleton
	case "Resolution", "resolution":
		*l = Resolution
	default:
		return &LifecycleError{Value: string(text)}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l Lifecycle) MarshalJSON() ([]byte, error) {
	if !l.IsValid() {
		return nil, &LifecycleError{Value: int(l)}
	}
	return json.Marshal(l.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Lifecycle) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return l.UnmarshalText([]byte(s))
}
