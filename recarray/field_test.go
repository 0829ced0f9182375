package recarray

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldSliceValues(t *testing.T) {
	arr, _ := particles43(t)

	y, err := arr.Field(1)
	require.NoError(t, err)
	assert.Equal(t, "Y", y.Name())
	assert.Equal(t, 1, y.Index())
	assert.Equal(t, arr.Shape(), y.Shape())
	assert.Equal(t, arr.Len(), y.Len())
	assert.Equal(t, reflect.TypeOf((*float64)(nil)).Elem(), y.ElemType())

	// Field 1's block is flat positions {4, 5, 6, 7}.
	for i := 0; i < y.Len(); i++ {
		v, err := y.Get(i)
		require.NoError(t, err)
		assert.Equal(t, float64(4+i), v, "element %d", i)
	}
}

func TestFieldSliceAliasing(t *testing.T) {
	arr, buf := particles43(t)

	y, err := arr.Field(1)
	require.NoError(t, err)

	// Write through the slice, read through the view.
	require.NoError(t, y.Set(0, float64(-42)))
	rec, err := arr.Get(0)
	require.NoError(t, err)
	assert.Equal(t, Particle{X: 0, Y: -42, Z: 8}, rec)
	assert.Equal(t, float64(-42), buf.Data().([]float64)[4])

	// Write through the view, read through the slice.
	require.NoError(t, arr.Set(2, Particle{X: 2, Y: 99, Z: 10}))
	v, err := y.Get(2)
	require.NoError(t, err)
	assert.Equal(t, float64(99), v)
}

func TestFieldSliceCoords(t *testing.T) {
	buf, err := DenseFrom(seq(18), 2, 3, 3)
	require.NoError(t, err)
	arr, err := New(reflect.TypeOf((*Particle)(nil)).Elem(), buf)
	require.NoError(t, err)

	z, err := arr.FieldByName("Z")
	require.NoError(t, err)
	assert.Equal(t, 2, z.Rank())

	for i := 0; i < z.Len(); i++ {
		lin, err := z.Get(i)
		require.NoError(t, err)
		crd, err := z.GetAt(i%2, i/2)
		require.NoError(t, err)
		assert.Equal(t, lin, crd, "index %d", i)
	}

	require.NoError(t, z.SetAt(float64(-7), 1, 2))
	v, err := z.Get(5)
	require.NoError(t, err)
	assert.Equal(t, float64(-7), v)

	_, err = z.GetAt(2, 0)
	assert.ErrorIs(t, err, ErrBounds)
	_, err = z.GetAt(1)
	assert.ErrorIs(t, err, ErrRank)
}

func TestFieldLookup(t *testing.T) {
	arr, _ := particles43(t)

	for i, name := range []string{"X", "Y", "Z"} {
		s, err := arr.FieldByName(name)
		require.NoError(t, err)
		assert.Equal(t, i, s.Index())
	}

	_, err := arr.FieldByName("W")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = arr.Field(3)
	assert.ErrorIs(t, err, ErrBounds)
	_, err = arr.Field(-1)
	assert.ErrorIs(t, err, ErrBounds)
}

func TestFieldSliceBounds(t *testing.T) {
	arr, _ := particles43(t)
	x, err := arr.Field(0)
	require.NoError(t, err)

	_, err = x.Get(4)
	assert.ErrorIs(t, err, ErrBounds)
	err = x.Set(-1, float64(0))
	assert.ErrorIs(t, err, ErrBounds)
	err = x.Set(0, float32(1))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}
