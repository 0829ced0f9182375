package schema

import (
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"
)

// Proto describes a record layout whose scalar type is not fixed yet: an
// ordered list of field names awaiting concretization.
type Proto struct {
	names []string
}

// NewProto creates an unresolved record layout from field names.
// It fails with an error wrapping ErrSchema if no names are given, a name
// is duplicated, or a name is not a valid exported Go identifier.
func NewProto(names ...string) (*Proto, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("record layout has no fields: %w", ErrSchema)
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if !validFieldName(name) {
			return nil, fmt.Errorf("%q is not a valid exported field name: %w", name, ErrSchema)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate field name %q: %w", name, ErrSchema)
		}
		seen[name] = true
	}
	p := &Proto{names: make([]string, len(names))}
	copy(p.names, names)
	return p, nil
}

// Names returns the field names in order.
func (p *Proto) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Resolve concretizes the layout against a scalar type, synthesizing a
// struct type whose fields all have that type. The resulting descriptor is
// the same one Build would return for the synthesized type.
//
// Resolve fails with an error wrapping ErrConcretize if scalar is not a
// scalar type.
func (p *Proto) Resolve(scalar reflect.Type) (*Descriptor, error) {
	if !IsScalar(scalar) {
		return nil, fmt.Errorf("element type %s is not a scalar: %w", scalar, ErrConcretize)
	}

	fields := make([]reflect.StructField, len(p.names))
	for i, name := range p.names {
		fields[i] = reflect.StructField{
			Name: name,
			Type: scalar,
		}
	}

	// reflect.StructOf canonicalizes identical layouts, so repeated
	// resolutions against the same scalar hit the descriptor cache.
	return Build(reflect.StructOf(fields))
}

// validFieldName reports whether name is a valid exported Go identifier.
func validFieldName(name string) bool {
	if name == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsUpper(first) {
		return false
	}
	for i, r := range name {
		if i == 0 {
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
