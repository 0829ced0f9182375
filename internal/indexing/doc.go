// Package indexing provides index arithmetic for N-dimensional buffers.
//
// All arrays in this module use column-major order: the first axis varies
// fastest in the flat storage. For a shape (4, 3) the flat offset of
// coordinate (i, j) is i + j*4. A record buffer whose trailing axis holds
// the fields therefore stores all elements' values for field 0 first, then
// all values for field 1, and so on (field-major layout).
//
// # Key Functions
//
//   - [Strides]: Column-major strides for a shape
//   - [Product]: Total element count of a shape
//   - [CoordsToLinear] / [LinearToCoords]: Offset mapping in both directions
//   - [CheckIndex] / [CheckCoords]: Bounds validation against a length or shape
//
// Bounds failures wrap [ErrBounds]; coordinate arity failures wrap [ErrRank].
package indexing
