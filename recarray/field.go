package recarray

import (
	"fmt"
	"reflect"

	"github.com/robert-malhotra/go-recarray/internal/indexing"
)

// FieldSlice is a live, mutable view of one record field across all
// elements: a scalar array with the view's logical shape, selecting a fixed
// index along the buffer's trailing axis. It aliases the same storage as the
// Array that produced it, so writes on either side are visible on the other.
type FieldSlice struct {
	arr   *Array
	field int
	base  int // flat offset of the field's contiguous block
}

// Field returns the slice for field index k.
// It fails with ErrBounds if k is outside [0, FieldCount).
func (a *Array) Field(k int) (*FieldSlice, error) {
	if err := indexing.CheckIndex(k, a.desc.FieldCount()); err != nil {
		return nil, err
	}
	return &FieldSlice{arr: a, field: k, base: k * a.length}, nil
}

// FieldByName returns the slice for the named field, resolved in constant
// time through the descriptor's cached name map. It fails with
// ErrUnknownField if the record has no such field.
func (a *Array) FieldByName(name string) (*FieldSlice, error) {
	k, err := a.desc.FieldIndex(name)
	if err != nil {
		return nil, err
	}
	return a.Field(k)
}

// Name returns the field's name.
func (s *FieldSlice) Name() string {
	return s.arr.desc.Names[s.field]
}

// Index returns the field's declaration-order index.
func (s *FieldSlice) Index() int {
	return s.field
}

// ElemType returns the field's scalar type.
func (s *FieldSlice) ElemType() reflect.Type {
	return s.arr.desc.Scalar
}

// Shape returns a copy of the logical extents, identical to the Array's.
func (s *FieldSlice) Shape() []int {
	return s.arr.Shape()
}

// Rank returns the logical rank N.
func (s *FieldSlice) Rank() int {
	return s.arr.Rank()
}

// Len returns the number of elements.
func (s *FieldSlice) Len() int {
	return s.arr.Len()
}

// Get returns the field value of element i.
// It fails with ErrBounds if i is outside [0, Len).
func (s *FieldSlice) Get(i int) (any, error) {
	if err := indexing.CheckIndex(i, s.arr.length); err != nil {
		return nil, err
	}
	return s.arr.buf.At(s.base + i), nil
}

// Set stores v as the field value of element i. The write lands in the
// shared buffer, so it is immediately visible through the Array.
func (s *FieldSlice) Set(i int, v any) error {
	if err := s.checkValue(v); err != nil {
		return err
	}
	if err := indexing.CheckIndex(i, s.arr.length); err != nil {
		return err
	}
	s.arr.buf.SetAt(s.base+i, v)
	return nil
}

// GetAt returns the field value at a coordinate tuple of length Rank.
func (s *FieldSlice) GetAt(coords ...int) (any, error) {
	if err := indexing.CheckCoords(coords, s.arr.shape); err != nil {
		return nil, err
	}
	return s.ElemAt(coords), nil
}

// SetAt stores v as the field value at a coordinate tuple of length Rank.
func (s *FieldSlice) SetAt(v any, coords ...int) error {
	if err := s.checkValue(v); err != nil {
		return err
	}
	if err := indexing.CheckCoords(coords, s.arr.shape); err != nil {
		return err
	}
	bc := s.arr.bufCoords(coords)
	bc[len(coords)] = s.field
	s.arr.buf.SetAtCoords(bc, v)
	return nil
}

// ElemAt returns the field value at a coordinate tuple, satisfying Operand.
// Coordinates are assumed valid; exported access goes through GetAt.
func (s *FieldSlice) ElemAt(coords []int) any {
	bc := s.arr.bufCoords(coords)
	bc[len(coords)] = s.field
	return s.arr.buf.AtCoords(bc)
}

func (s *FieldSlice) checkValue(v any) error {
	if reflect.TypeOf(v) != s.arr.desc.Scalar {
		return fmt.Errorf("field value of type %T, want %s: %w", v, s.arr.desc.Scalar, ErrTypeMismatch)
	}
	return nil
}
