package recarray

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapArrayAndBuffer(t *testing.T) {
	arr, _ := particles43(t)
	weights, err := DenseFrom([]float64{1, 10, 100, 1000}, 4)
	require.NoError(t, err)

	out, err := Map(func(args []any) any {
		p := args[0].(Particle)
		w := args[1].(float64)
		return p.X * w
	}, reflect.TypeOf((*float64)(nil)).Elem(), arr, weights)
	require.NoError(t, err)

	assert.Equal(t, []int{4}, out.Shape())
	assert.Equal(t, []float64{0, 10, 200, 3000}, out.Data().([]float64))
}

func TestMapRankNegotiation(t *testing.T) {
	// A rank-1 view combined with a rank-2 buffer participates at its own
	// logical rank; the result takes the maximum rank.
	arr, _ := particles43(t)
	grid, err := DenseFrom(seq(8), 4, 2)
	require.NoError(t, err)

	out, err := Map(func(args []any) any {
		p := args[0].(Particle)
		g := args[1].(float64)
		return p.Y + g
	}, reflect.TypeOf((*float64)(nil)).Elem(), arr, grid)
	require.NoError(t, err)

	assert.Equal(t, []int{4, 2}, out.Shape())
	// Column (j=0): Y values {4,5,6,7} plus grid {0,1,2,3}.
	assert.Equal(t, float64(4), out.AtCoords([]int{0, 0}))
	assert.Equal(t, float64(10), out.AtCoords([]int{3, 0}))
	// Column (j=1): same Y values plus grid {4,5,6,7}.
	assert.Equal(t, float64(8), out.AtCoords([]int{0, 1}))
	assert.Equal(t, float64(14), out.AtCoords([]int{3, 1}))
}

func TestMapStretchesExtentOne(t *testing.T) {
	one, err := DenseFrom([]float64{5}, 1)
	require.NoError(t, err)
	four, err := DenseFrom([]float64{1, 2, 3, 4}, 4)
	require.NoError(t, err)

	out, err := Map(func(args []any) any {
		return args[0].(float64) * args[1].(float64)
	}, reflect.TypeOf((*float64)(nil)).Elem(), one, four)
	require.NoError(t, err)

	assert.Equal(t, []float64{5, 10, 15, 20}, out.Data().([]float64))
}

func TestMapFieldSliceOperand(t *testing.T) {
	arr, _ := particles43(t)
	x, err := arr.Field(0)
	require.NoError(t, err)
	z, err := arr.Field(2)
	require.NoError(t, err)

	out, err := Map(func(args []any) any {
		return args[0].(float64) + args[1].(float64)
	}, reflect.TypeOf((*float64)(nil)).Elem(), x, z)
	require.NoError(t, err)

	// X block {0..3} plus Z block {8..11}.
	assert.Equal(t, []float64{8, 10, 12, 14}, out.Data().([]float64))
}

func TestMapShapeConflict(t *testing.T) {
	a, err := NewDense[float64](3)
	require.NoError(t, err)
	b, err := NewDense[float64](4)
	require.NoError(t, err)

	_, err = Map(func(args []any) any { return args[0] }, reflect.TypeOf((*float64)(nil)).Elem(), a, b)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestMapResultTypeMismatch(t *testing.T) {
	buf, err := NewDense[float64](2)
	require.NoError(t, err)

	_, err = Map(func(args []any) any { return "oops" }, reflect.TypeOf((*float64)(nil)).Elem(), buf)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Map(func(args []any) any { return nil }, reflect.TypeOf((*float64)(nil)).Elem(), buf)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestMapScalarOperands(t *testing.T) {
	// Two rank-0 operands give a rank-0 result.
	a, err := NewDense[int64]()
	require.NoError(t, err)
	a.SetAt(0, int64(6))
	b, err := NewDense[int64]()
	require.NoError(t, err)
	b.SetAt(0, int64(7))

	out, err := Map(func(args []any) any {
		return args[0].(int64) * args[1].(int64)
	}, reflect.TypeOf((*int64)(nil)).Elem(), a, b)
	require.NoError(t, err)

	assert.Equal(t, 0, out.Rank())
	assert.Equal(t, int64(42), out.At(0))
}

func TestMapEmptyResult(t *testing.T) {
	empty, err := NewDense[float64](0)
	require.NoError(t, err)

	out, err := Map(func(args []any) any { return args[0] }, reflect.TypeOf((*float64)(nil)).Elem(), empty)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
}

func TestMapNoOperands(t *testing.T) {
	_, err := Map(func(args []any) any { return nil }, reflect.TypeOf((*float64)(nil)).Elem())
	assert.Error(t, err)
}
