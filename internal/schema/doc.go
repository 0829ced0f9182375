// Package schema builds and caches record descriptors from Go struct types.
//
// A record type is a struct whose exported fields all share one scalar type.
// The descriptor captures the field names in declaration order, the shared
// scalar type, and a name-to-index map for constant-time field lookup.
// Descriptors are computed once per reflect.Type and cached for the lifetime
// of the process.
//
// # Generic Records
//
// A [Proto] describes a record layout whose scalar type is not fixed yet:
// just an ordered list of field names. [Proto.Resolve] concretizes it against
// a scalar type by synthesizing a struct type with reflect.StructOf, so the
// same layout can be instantiated for float64, int32, and so on.
//
// # Key Types
//
//   - [Descriptor]: Immutable description of a concrete record type
//   - [Proto]: Unresolved record layout awaiting a scalar type
//
// Failures wrap [ErrSchema], [ErrUnknownField], or [ErrConcretize].
package schema
