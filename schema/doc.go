// Package schema derives wire-level schemas from native type descriptors.
//
// The mapper recursively converts one native descriptor into an analysed
// type; unstructured marker types are intercepted before generic recursion
// and carry restriction metadata instead of structure; multimodal unions
// resolve into ordered named alternatives. Every failure names the scope it
// came from (class, method or constructor, parameter, offending type), and a
// class whose derivation fails anywhere produces no schema at all.
package schema
