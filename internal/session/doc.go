// Package session is the façade the front ends drive. A Session binds the
// acting user to the owner roster and the task pool, enforces ownership
// before every task mutation, and sequences the multi-step flows (create
// with duplicate check, state toggles behind the transition guards, group
// dissolution on last-member leave).
//
// Every operation returns immediately; persistence is the store's concern
// and happens only when the caller asks for it.
package session
