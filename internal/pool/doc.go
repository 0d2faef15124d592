// Package pool holds the in-memory task set and the dependency graph
// engine over it: lookups, owner-scoped queries, duplicate detection, the
// state-transition guards, and the direct/indirect dependency traversals.
//
// The pool is a pure in-memory structure. It performs no I/O and assumes a
// single mutator; persistence and authorization live in the layers around
// it.
package pool
