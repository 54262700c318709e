package di

import (
	"fmt"
	"reflect"

	"github.com/havenwise/di/internal/typecache"
)

// Identifier is an opaque, identity-compared key under which providers are
// registered. The only valid forms are a TypeIdentifier derived from a
// constructor/prototype value, a non-empty Name, or a Symbol minted by
// NewSymbol.
type Identifier interface {
	identifier()
	String() string
}

// TypeIdentifier identifies a service by the reflect.Type of a constructor
// or prototype value. Two TypeIdentifiers are equal iff the underlying
// reflect.Type values are ==; Go interns types, so this is true identity
// equality, not a structural comparison.
type TypeIdentifier struct {
	Type reflect.Type
}

func (TypeIdentifier) identifier() {}

// String renders a short type name, e.g. "*Logger".
func (t TypeIdentifier) String() string {
	return typecache.FormattedName(t.Type)
}

// IdentifierOf builds a TypeIdentifier from an example value of the
// service's type, e.g. IdentifierOf((*Logger)(nil)) or IdentifierOf(Logger{}).
func IdentifierOf(prototype any) TypeIdentifier {
	return TypeIdentifier{Type: reflect.TypeOf(prototype)}
}

// Name is a non-empty string identifier. Equality is plain string
// equality.
type Name string

func (Name) identifier() {}

// String returns the name itself.
func (n Name) String() string { return string(n) }

// Symbol is an opaque identifier compared by pointer identity, the
// closest Go analogue to a JavaScript Symbol. Construct one with
// NewSymbol; the zero value is not a usable Symbol.
type Symbol struct {
	label string
}

func (*Symbol) identifier() {}

// String renders the symbol's label, if any, or a generic placeholder.
func (s *Symbol) String() string {
	if s == nil || s.label == "" {
		return "Symbol()"
	}
	return fmt.Sprintf("Symbol(%s)", s.label)
}

// NewSymbol mints a new, globally unique identifier. label is used only
// for display and has no bearing on equality - two symbols with the same
// label are still distinct identifiers.
func NewSymbol(label string) *Symbol {
	return &Symbol{label: label}
}

// sameIdentifier reports whether a and b are identity-equal per the rules
// above: TypeIdentifier compares underlying reflect.Type, Name compares
// string value, Symbol compares pointer identity.
func sameIdentifier(a, b Identifier) bool {
	if a == nil || b == nil {
		return a == b
	}

	switch av := a.(type) {
	case TypeIdentifier:
		bv, ok := b.(TypeIdentifier)
		return ok && av.Type == bv.Type
	case Name:
		bv, ok := b.(Name)
		return ok && av == bv
	case *Symbol:
		bv, ok := b.(*Symbol)
		return ok && av == bv
	default:
		return a == b
	}
}
