package recarray

import (
	"fmt"
	"reflect"

	"github.com/robert-malhotra/go-recarray/internal/indexing"
	"github.com/robert-malhotra/go-recarray/internal/schema"
)

// Array is a struct-of-arrays view: it presents an N+1 dimensional buffer,
// whose trailing axis enumerates the fields of a record struct, as an
// N-dimensional array of records. The view borrows the buffer for its whole
// lifetime and never copies it; Set mutates the buffer in place.
type Array struct {
	buf    Buffer
	desc   *schema.Descriptor
	shape  []int
	length int
}

// New wraps buf as an array of records of type rt.
//
// rt must be a struct whose exported fields all share one scalar type
// (ErrInvalidRecordType otherwise). buf must have rank at least 1 (ErrRank),
// its element type must equal the record's field type (ErrTypeMismatch), and
// its trailing extent must equal the field count (ErrShapeMismatch).
func New(rt reflect.Type, buf Buffer) (*Array, error) {
	if buf == nil {
		return nil, fmt.Errorf("nil buffer: %w", ErrRank)
	}

	desc, err := schema.Build(rt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecordType, err)
	}

	rank := buf.Rank()
	if rank < 1 {
		return nil, fmt.Errorf("buffer has rank 0, need a trailing field dimension: %w", ErrRank)
	}
	if buf.ElemType() != desc.Scalar {
		return nil, fmt.Errorf("buffer element type %s, record field type %s: %w", buf.ElemType(), desc.Scalar, ErrTypeMismatch)
	}

	bshape := buf.Shape()
	if bshape[rank-1] != desc.FieldCount() {
		return nil, fmt.Errorf("buffer trailing extent %d, record %s has %d fields: %w",
			bshape[rank-1], rt, desc.FieldCount(), ErrShapeMismatch)
	}

	shape := bshape[:rank-1]
	return &Array{
		buf:    buf,
		desc:   desc,
		shape:  shape,
		length: indexing.Product(shape),
	}, nil
}

// Of is the uniform construction path for record views and plain buffers.
// When rt is a record struct it behaves like New. When rt is the buffer's
// scalar element type the buffer itself is returned untouched, so one call
// site can build either kind of result.
func Of(rt reflect.Type, buf Buffer) (any, error) {
	if rt != nil && schema.IsScalar(rt) {
		if buf == nil {
			return nil, fmt.Errorf("nil buffer: %w", ErrRank)
		}
		if buf.ElemType() != rt {
			return nil, fmt.Errorf("buffer element type %s, want %s: %w", buf.ElemType(), rt, ErrTypeMismatch)
		}
		return buf, nil
	}
	return New(rt, buf)
}

// NewNamed wraps buf as an array of records with the given field names,
// inferring the field scalar type from the buffer's element type. It is the
// convenience form of ResolveRecordType followed by New.
func NewNamed(buf Buffer, names ...string) (*Array, error) {
	if buf == nil {
		return nil, fmt.Errorf("nil buffer: %w", ErrRank)
	}
	rt, err := ResolveRecordType(buf.ElemType(), names...)
	if err != nil {
		return nil, err
	}
	return New(rt, buf)
}

// ResolveRecordType concretizes a record layout, given as ordered field
// names, against a scalar type. It fails with ErrSchema for an unusable name
// list and ErrConcretize when scalar is not a scalar type.
func ResolveRecordType(scalar reflect.Type, names ...string) (reflect.Type, error) {
	p, err := schema.NewProto(names...)
	if err != nil {
		return nil, err
	}
	desc, err := p.Resolve(scalar)
	if err != nil {
		return nil, err
	}
	return desc.Type, nil
}

// Shape returns a copy of the logical extents (the buffer's shape minus the
// trailing field axis).
func (a *Array) Shape() []int {
	out := make([]int, len(a.shape))
	copy(out, a.shape)
	return out
}

// Rank returns the logical rank N.
func (a *Array) Rank() int {
	return len(a.shape)
}

// Len returns the number of logical elements (zero if any extent is zero).
func (a *Array) Len() int {
	return a.length
}

// ElementType returns the record struct type.
func (a *Array) ElementType() reflect.Type {
	return a.desc.Type
}

// FieldCount returns the number of record fields.
func (a *Array) FieldCount() int {
	return a.desc.FieldCount()
}

// FieldNames returns the record field names in declaration order.
func (a *Array) FieldNames() []string {
	out := make([]string, len(a.desc.Names))
	copy(out, a.desc.Names)
	return out
}

// Buffer returns the backing buffer the view borrows.
func (a *Array) Buffer() Buffer {
	return a.buf
}

// Get returns the record at linear index i, gathering its fields from the
// buffer. It fails with ErrBounds if i is outside [0, Len).
func (a *Array) Get(i int) (any, error) {
	if err := indexing.CheckIndex(i, a.length); err != nil {
		return nil, err
	}
	return a.gather(i), nil
}

// GetAt returns the record at a coordinate tuple of length Rank. It fails
// with ErrRank on an arity mismatch and ErrBounds when any coordinate is
// outside its extent.
func (a *Array) GetAt(coords ...int) (any, error) {
	if err := indexing.CheckCoords(coords, a.shape); err != nil {
		return nil, err
	}
	return a.gatherCoords(coords), nil
}

// Set scatters rec's fields into the buffer slots of linear index i.
// rec must be a value (or pointer to a value) of the record type
// (ErrTypeMismatch); the bounds check runs before any buffer write.
func (a *Array) Set(i int, rec any) error {
	rv, err := a.recordValue(rec)
	if err != nil {
		return err
	}
	if err := indexing.CheckIndex(i, a.length); err != nil {
		return err
	}
	for k := 0; k < a.desc.FieldCount(); k++ {
		a.buf.SetAt(i+k*a.length, rv.Field(k).Interface())
	}
	return nil
}

// SetAt scatters rec's fields at a coordinate tuple of length Rank, with
// the same contract as Set.
func (a *Array) SetAt(rec any, coords ...int) error {
	rv, err := a.recordValue(rec)
	if err != nil {
		return err
	}
	if err := indexing.CheckCoords(coords, a.shape); err != nil {
		return err
	}
	bc := a.bufCoords(coords)
	for k := 0; k < a.desc.FieldCount(); k++ {
		bc[len(coords)] = k
		a.buf.SetAtCoords(bc, rv.Field(k).Interface())
	}
	return nil
}

// EachFunc is called for each element during traversal.
// i is the linear index and rec the synthesized record.
// Return false to stop early.
type EachFunc func(i int, rec any) bool

// Each calls fn for every element in linear order. Together with Shape it
// is the sequence a formatting layer renders from.
func (a *Array) Each(fn EachFunc) {
	for i := 0; i < a.length; i++ {
		if !fn(i, a.gather(i)) {
			return
		}
	}
}

// ElemAt returns the record at a coordinate tuple, satisfying Operand.
// Coordinates are assumed valid; exported access goes through GetAt.
func (a *Array) ElemAt(coords []int) any {
	return a.gatherCoords(coords)
}

// gather builds the record at linear index i without bounds checks. With
// the first axis varying fastest, field k of element i lives at buffer
// offset i + k*length: one contiguous block per field.
func (a *Array) gather(i int) any {
	rec := reflect.New(a.desc.Type).Elem()
	for k := 0; k < a.desc.FieldCount(); k++ {
		rec.Field(k).Set(reflect.ValueOf(a.buf.At(i + k*a.length)))
	}
	return rec.Interface()
}

// gatherCoords builds the record at a coordinate tuple without bounds checks.
func (a *Array) gatherCoords(coords []int) any {
	bc := a.bufCoords(coords)
	rec := reflect.New(a.desc.Type).Elem()
	for k := 0; k < a.desc.FieldCount(); k++ {
		bc[len(coords)] = k
		rec.Field(k).Set(reflect.ValueOf(a.buf.AtCoords(bc)))
	}
	return rec.Interface()
}

// bufCoords widens logical coordinates with a slot for the field axis.
func (a *Array) bufCoords(coords []int) []int {
	bc := make([]int, len(coords)+1)
	copy(bc, coords)
	return bc
}

// recordValue unwraps and validates a caller-supplied record.
func (a *Array) recordValue(rec any) (reflect.Value, error) {
	rv := reflect.ValueOf(rec)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Type() == a.desc.Type {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Type() != a.desc.Type {
		return reflect.Value{}, fmt.Errorf("record value of type %T, want %s: %w", rec, a.desc.Type, ErrTypeMismatch)
	}
	return rv, nil
}

// Similar allocates a fresh zeroed array with the same record type, shape,
// and buffer kind as a.
func (a *Array) Similar() (*Array, error) {
	buf := a.buf.Similar(a.desc.Scalar, append(a.Shape(), a.desc.FieldCount()))
	return New(a.desc.Type, buf)
}

// SimilarAs allocates fresh zeroed storage of a's buffer kind for element
// type rt and the given logical shape. A record type yields an *Array backed
// by a buffer of shape (shape..., fieldCount); a scalar type yields a plain
// Buffer of exactly shape, with no field axis.
func (a *Array) SimilarAs(rt reflect.Type, shape []int) (any, error) {
	if err := indexing.ValidShape(shape); err != nil {
		return nil, err
	}

	if rt != nil && schema.IsScalar(rt) {
		return a.buf.Similar(rt, shape), nil
	}

	desc, err := schema.Build(rt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecordType, err)
	}

	bshape := make([]int, len(shape)+1)
	copy(bshape, shape)
	bshape[len(shape)] = desc.FieldCount()
	return New(rt, a.buf.Similar(desc.Scalar, bshape))
}
