// Package types defines the wire-level data model shared by every layer of
// agentwire: structural type schemas, data schemas, wire values, agent type
// descriptors and the closed agent error set.
//
// Values in this package are plain serializable data. All derivation and
// conversion logic lives in the schema and codec packages.
package types
