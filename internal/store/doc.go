// Package store is the loader/persister collaborator. It renders the
// roster and the task pool into a single YAML snapshot file, written
// atomically (temp file, then rename), and materializes engine entities
// back from it. The engine itself never parses anything; all text
// conventions (tagged member names, dependency lists, due-date layout)
// live here and in the task codec.
//
// The store can also report whether the on-disk snapshot diverged from a
// given in-memory state, and watch the snapshot file for external writes.
package store
