// Package typecache memoizes the human-readable name computed for a
// reflect.Type, adapted from the container's old constructor-analysis type
// cache down to the one thing the resolution-path formatter still needs:
// a short, stable name for a TypeIdentifier, computed once no matter how
// many times a failed resolution's path gets rendered.
package typecache

import (
	"reflect"
	"sync"
)

var cache sync.Map // map[reflect.Type]string

// FormattedName returns a short, human-readable name for t, such as
// "*Logger" or "[]Handler", computing it once per type and caching the
// result thereafter.
func FormattedName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	if v, ok := cache.Load(t); ok {
		return v.(string)
	}

	name := compute(t)
	cache.Store(t, name)
	return name
}

func compute(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Ptr:
		return "*" + compute(t.Elem())
	case reflect.Slice:
		return "[]" + compute(t.Elem())
	case reflect.Array:
		return compute(t.Elem())
	default:
		if t.Name() == "" {
			return t.String()
		}
		return t.Name()
	}
}
