package recarray

import (
	"fmt"
	"reflect"

	"github.com/robert-malhotra/go-recarray/internal/indexing"
)

// Buffer is the storage collaborator an Array wraps. It supplies the element
// scalar type, rank, per-dimension extents, linear and coordinate get/set,
// and an allocation primitive for fresh storage of the same kind.
//
// Linear indices follow column-major order: the first axis varies fastest.
// Implementations may assume indices and coordinates are in range; the view
// layer validates before every access.
type Buffer interface {
	// ElemType returns the scalar type of the buffer's elements.
	ElemType() reflect.Type

	// Rank returns the number of dimensions.
	Rank() int

	// Shape returns the per-dimension extents.
	Shape() []int

	// Len returns the total number of elements.
	Len() int

	// At returns the element at a linear index.
	At(i int) any

	// SetAt stores v at a linear index.
	SetAt(i int, v any)

	// AtCoords returns the element at a coordinate tuple.
	AtCoords(coords []int) any

	// SetAtCoords stores v at a coordinate tuple.
	SetAtCoords(coords []int, v any)

	// Similar allocates fresh zeroed storage of the same kind with the
	// given element type and shape.
	Similar(elem reflect.Type, shape []int) Buffer
}

// Dense is a contiguous in-memory Buffer: a flat typed slice plus a shape,
// stored in column-major order.
type Dense struct {
	data    reflect.Value // flat slice of the element type
	shape   []int
	strides []int
	length  int
}

// NewDense allocates a zeroed dense buffer of element type T.
func NewDense[T any](shape ...int) (*Dense, error) {
	return DenseOf(reflect.TypeOf((*T)(nil)).Elem(), shape...)
}

// DenseOf allocates a zeroed dense buffer with the given element type.
// An empty shape describes a rank-0 buffer holding a single element.
func DenseOf(elem reflect.Type, shape ...int) (*Dense, error) {
	if elem == nil {
		return nil, fmt.Errorf("nil element type: %w", ErrTypeMismatch)
	}
	if err := indexing.ValidShape(shape); err != nil {
		return nil, err
	}
	n := indexing.Product(shape)
	data := reflect.MakeSlice(reflect.SliceOf(elem), n, n)
	return newDense(data, shape), nil
}

// DenseFrom wraps an existing flat slice as a dense buffer without copying:
// the buffer aliases data, so mutations are visible both ways. The shape's
// element count must equal len(data).
func DenseFrom[T any](data []T, shape ...int) (*Dense, error) {
	if err := indexing.ValidShape(shape); err != nil {
		return nil, err
	}
	if n := indexing.Product(shape); n != len(data) {
		return nil, fmt.Errorf("%d elements cannot fill shape %v (%d slots): %w", len(data), shape, n, ErrShapeMismatch)
	}
	return newDense(reflect.ValueOf(data), shape), nil
}

func newDense(data reflect.Value, shape []int) *Dense {
	d := &Dense{
		data:    data,
		shape:   make([]int, len(shape)),
		length:  indexing.Product(shape),
		strides: indexing.Strides(shape),
	}
	copy(d.shape, shape)
	return d
}

// ElemType returns the scalar type of the buffer's elements.
func (d *Dense) ElemType() reflect.Type {
	return d.data.Type().Elem()
}

// Rank returns the number of dimensions.
func (d *Dense) Rank() int {
	return len(d.shape)
}

// Shape returns a copy of the per-dimension extents.
func (d *Dense) Shape() []int {
	out := make([]int, len(d.shape))
	copy(out, d.shape)
	return out
}

// Len returns the total number of elements.
func (d *Dense) Len() int {
	return d.length
}

// Data returns the flat backing slice. The slice shares storage with the
// buffer, so writes through it are visible to every view over the buffer.
func (d *Dense) Data() any {
	return d.data.Interface()
}

// At returns the element at a linear index. It panics if i is out of range,
// mirroring slice indexing.
func (d *Dense) At(i int) any {
	return d.data.Index(i).Interface()
}

// SetAt stores v at a linear index. It panics if i is out of range or v's
// type is not assignable to the element type.
func (d *Dense) SetAt(i int, v any) {
	d.data.Index(i).Set(reflect.ValueOf(v))
}

// AtCoords returns the element at a coordinate tuple.
func (d *Dense) AtCoords(coords []int) any {
	return d.At(indexing.CoordsToLinear(coords, d.strides))
}

// SetAtCoords stores v at a coordinate tuple.
func (d *Dense) SetAtCoords(coords []int, v any) {
	d.SetAt(indexing.CoordsToLinear(coords, d.strides), v)
}

// Similar allocates a fresh zeroed dense buffer with the given element type
// and shape. It panics on a nil element type or negative extent; callers
// that take untrusted shapes validate first.
func (d *Dense) Similar(elem reflect.Type, shape []int) Buffer {
	b, err := DenseOf(elem, shape...)
	if err != nil {
		panic(err)
	}
	return b
}

// ElemAt returns the element at a coordinate tuple, satisfying Operand so a
// plain buffer can join elementwise expressions.
func (d *Dense) ElemAt(coords []int) any {
	return d.AtCoords(coords)
}
