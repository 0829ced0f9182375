package schema

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// Common errors
var (
	ErrSchema       = errors.New("invalid record schema")
	ErrUnknownField = errors.New("unknown field")
	ErrConcretize   = errors.New("cannot concretize record type")
)

// Descriptor describes a concrete record type: a struct whose exported
// fields all share one scalar type. Descriptors are immutable.
type Descriptor struct {
	Type   reflect.Type // the record struct type
	Names  []string     // field names in declaration order
	Scalar reflect.Type // the shared field scalar type
	index  map[string]int
}

var (
	cacheMu sync.RWMutex
	cache   = map[reflect.Type]*Descriptor{}
)

// Build returns the descriptor for a record struct type. The result is
// computed once per type and cached.
//
// Build fails with an error wrapping ErrSchema if rt is not a struct, has
// no fields, has unexported fields, or its fields do not all share one
// scalar type.
func Build(rt reflect.Type) (*Descriptor, error) {
	cacheMu.RLock()
	d, ok := cache[rt]
	cacheMu.RUnlock()
	if ok {
		return d, nil
	}

	d, err := build(rt)
	if err != nil {
		return nil, err
	}

	cacheMu.Lock()
	cache[rt] = d
	cacheMu.Unlock()
	return d, nil
}

func build(rt reflect.Type) (*Descriptor, error) {
	if rt == nil {
		return nil, fmt.Errorf("nil record type: %w", ErrSchema)
	}
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("record type %s is not a struct: %w", rt, ErrSchema)
	}

	n := rt.NumField()
	if n == 0 {
		return nil, fmt.Errorf("record type %s has no fields: %w", rt, ErrSchema)
	}

	d := &Descriptor{
		Type:  rt,
		Names: make([]string, n),
		index: make(map[string]int, n),
	}

	for i := 0; i < n; i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			return nil, fmt.Errorf("record type %s has unexported field %q: %w", rt, f.Name, ErrSchema)
		}
		if i == 0 {
			if !IsScalar(f.Type) {
				return nil, fmt.Errorf("field %q of %s has non-scalar type %s: %w", f.Name, rt, f.Type, ErrSchema)
			}
			d.Scalar = f.Type
		} else if f.Type != d.Scalar {
			return nil, fmt.Errorf("field %q of %s has type %s, want %s: %w", f.Name, rt, f.Type, d.Scalar, ErrSchema)
		}
		d.Names[i] = f.Name
		d.index[f.Name] = i
	}

	return d, nil
}

// FieldCount returns the number of fields in the record.
func (d *Descriptor) FieldCount() int {
	return len(d.Names)
}

// FieldIndex returns the declaration-order index of the named field.
// It fails with an error wrapping ErrUnknownField if the name is absent.
// Lookup is constant time.
func (d *Descriptor) FieldIndex(name string) (int, error) {
	i, ok := d.index[name]
	if !ok {
		return 0, fmt.Errorf("%q not in record type %s: %w", name, d.Type, ErrUnknownField)
	}
	return i, nil
}

// IsScalar reports whether t is a scalar type: a boolean, numeric, or
// string kind with no internal structure of its own.
func IsScalar(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	default:
		return false
	}
}
