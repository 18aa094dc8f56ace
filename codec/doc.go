// Package codec converts native Go values to and from wire data values,
// guided by the TypeInfo derived at registration time.
//
// Serialization and deserialization are strict inverses over every supported
// shape: a value produced by one side always round-trips through the other.
// Failures are plain errors with enough context for the dispatcher to wrap
// them into boundary errors.
package codec
