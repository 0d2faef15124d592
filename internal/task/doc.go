// Package task defines the task entity: a unit of work with a unique
// integer ID, an owner, a clamped priority, a pending/done flag, and a flat
// list of dependency IDs. Tasks come in two variants, plain and deadline;
// the variant is a tag on one struct rather than a type hierarchy, and a
// plain task is upgraded by full replacement at the same ID.
//
// The package also provides the total two-level comparators used by list
// views, the smallest-unused-ID allocator, and the text codecs for
// dependency lists and due dates shared by external formats.
//
// Dependency IDs are stored as-is; whether they resolve to live tasks is
// checked by the pool at mutation time, not here.
package task
