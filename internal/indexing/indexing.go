package indexing

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrBounds = errors.New("index out of bounds")
	ErrRank   = errors.New("rank mismatch")
)

// Product returns the total number of elements for a shape.
// The empty shape describes a single scalar element, so Product(nil) is 1.
// Any zero extent makes the product zero.
func Product(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// Strides returns the column-major strides for a shape: strides[0] is 1 and
// each later axis strides over the product of the extents before it.
func Strides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for d := 0; d < len(shape); d++ {
		strides[d] = acc
		acc *= shape[d]
	}
	return strides
}

// ValidShape reports an error if any extent is negative.
func ValidShape(shape []int) error {
	for d, e := range shape {
		if e < 0 {
			return fmt.Errorf("negative extent %d in dimension %d: %w", e, d, ErrBounds)
		}
	}
	return nil
}

// CheckIndex validates a linear index against a length.
func CheckIndex(i, length int) error {
	if i < 0 || i >= length {
		return fmt.Errorf("index %d outside [0, %d): %w", i, length, ErrBounds)
	}
	return nil
}

// CheckCoords validates a coordinate tuple against a shape. The tuple must
// have exactly one coordinate per dimension.
func CheckCoords(coords, shape []int) error {
	if len(coords) != len(shape) {
		return fmt.Errorf("got %d coordinates for rank %d: %w", len(coords), len(shape), ErrRank)
	}
	for d, c := range coords {
		if c < 0 || c >= shape[d] {
			return fmt.Errorf("coordinate %d outside [0, %d) in dimension %d: %w", c, shape[d], d, ErrBounds)
		}
	}
	return nil
}

// CoordsToLinear maps a coordinate tuple to a flat offset using the given
// strides. The tuple is assumed to be in bounds.
func CoordsToLinear(coords, strides []int) int {
	off := 0
	for d, c := range coords {
		off += c * strides[d]
	}
	return off
}

// LinearToCoords maps a flat offset back to a coordinate tuple for a shape,
// in column-major order. The offset is assumed to be in bounds.
func LinearToCoords(i int, shape []int) []int {
	coords := make([]int, len(shape))
	for d := 0; d < len(shape); d++ {
		coords[d] = i % shape[d]
		i /= shape[d]
	}
	return coords
}
