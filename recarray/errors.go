// Package recarray provides struct-of-arrays views over flat buffers.
//
// An Array exposes an N+1 dimensional buffer, whose trailing axis holds the
// fields of a record struct, as an N-dimensional array of records. Records
// are synthesized on read and scattered back on write; the view never copies
// the underlying storage.
package recarray

import (
	"errors"

	"github.com/robert-malhotra/go-recarray/internal/indexing"
	"github.com/robert-malhotra/go-recarray/internal/schema"
)

// Common errors
var (
	ErrSchema            = schema.ErrSchema
	ErrUnknownField      = schema.ErrUnknownField
	ErrConcretize        = schema.ErrConcretize
	ErrBounds            = indexing.ErrBounds
	ErrRank              = indexing.ErrRank
	ErrInvalidRecordType = errors.New("invalid record type")
	ErrTypeMismatch      = errors.New("element type mismatch")
	ErrShapeMismatch     = errors.New("shape mismatch")
)
