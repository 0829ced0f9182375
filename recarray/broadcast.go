package recarray

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/robert-malhotra/go-recarray/internal/indexing"
)

// Operand is the capability an array-like value needs to join an elementwise
// expression: it reports its logical rank and shape and supports coordinate
// read access. Array, FieldSlice, and Dense all satisfy it; an Array
// participates at its logical rank N, not the buffer's underlying N+1.
type Operand interface {
	Rank() int
	Shape() []int

	// ElemAt returns the element at a coordinate tuple of length Rank.
	// Coordinates are validated by the caller.
	ElemAt(coords []int) any
}

// MapFunc combines one value per operand, in operand order, into a result.
type MapFunc func(args []any) any

// Map evaluates fn elementwise over the operands and returns the results in
// a freshly allocated Dense buffer of element type out.
//
// The result shape is negotiated by broadcasting: its rank is the maximum
// operand rank, an operand's missing trailing dimensions act as extent 1,
// and in each dimension the non-1 extents must agree (ErrShapeMismatch
// otherwise); extent-1 operands are stretched. The output is always a plain
// buffer, never a record view, since fn's result type is arbitrary. A result
// value not assignable to out fails with ErrTypeMismatch.
func Map(fn MapFunc, out reflect.Type, operands ...Operand) (*Dense, error) {
	if fn == nil {
		return nil, errors.New("nil map function")
	}
	if len(operands) == 0 {
		return nil, errors.New("at least one operand required")
	}

	shape, err := broadcastShape(operands)
	if err != nil {
		return nil, err
	}

	result, err := DenseOf(out, shape...)
	if err != nil {
		return nil, err
	}

	shapes := make([][]int, len(operands))
	coords := make([][]int, len(operands))
	for j, op := range operands {
		shapes[j] = op.Shape()
		coords[j] = make([]int, op.Rank())
	}

	args := make([]any, len(operands))
	for i := 0; i < result.Len(); i++ {
		pos := indexing.LinearToCoords(i, shape)
		for j, op := range operands {
			oc := coords[j]
			for d := range oc {
				if shapes[j][d] == 1 {
					oc[d] = 0
				} else {
					oc[d] = pos[d]
				}
			}
			args[j] = op.ElemAt(oc)
		}

		v := fn(args)
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || !rv.Type().AssignableTo(out) {
			return nil, fmt.Errorf("map result of type %T not assignable to %s: %w", v, out, ErrTypeMismatch)
		}
		result.SetAt(i, v)
	}

	return result, nil
}

// broadcastShape negotiates the result shape across operands: max rank, and
// per dimension either agreement or stretching of extent 1.
func broadcastShape(operands []Operand) ([]int, error) {
	rank := 0
	for _, op := range operands {
		if r := op.Rank(); r > rank {
			rank = r
		}
	}

	shape := make([]int, rank)
	for d := range shape {
		shape[d] = 1
	}
	for _, op := range operands {
		for d, e := range op.Shape() {
			switch {
			case e == shape[d] || e == 1:
			case shape[d] == 1:
				shape[d] = e
			default:
				return nil, fmt.Errorf("extent %d conflicts with %d in dimension %d: %w", e, shape[d], d, ErrShapeMismatch)
			}
		}
	}
	return shape, nil
}
