package task

import (
	"time"

	"taredo/internal/errors"
	"taredo/internal/owner"
)

// Kind identifies the variant of a task.
type Kind string

const (
	// KindSimple is a plain task with no due date.
	KindSimple Kind = "simple"

	// KindDeadline is a task carrying a due timestamp.
	KindDeadline Kind = "deadline"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Priority bounds. Every priority value is clamped into this range.
const (
	MinPriority = 1
	MaxPriority = 10
)

// ClampPriority forces a priority value into the [MinPriority, MaxPriority]
// range.
func ClampPriority(p int) int {
	if p < MinPriority {
		return MinPriority
	}
	if p > MaxPriority {
		return MaxPriority
	}
	return p
}

// Task is a unit of work. Its ID and owner are fixed at creation; the
// remaining fields are mutable through the setters. Mutations that require
// knowledge of other tasks (state transitions, dependency existence) are
// guarded by the pool, not here.
type Task struct {
	id          int
	kind        Kind
	description string
	owner       owner.Owner
	priority    int
	pending     bool
	deps        []int
	dueAt       time.Time // zero for KindSimple
}

// NewSimple creates a plain task. The priority is clamped and the
// dependency list is copied.
func NewSimple(id int, description string, own owner.Owner, priority int, pending bool, deps []int) *Task {
	return &Task{
		id:          id,
		kind:        KindSimple,
		description: description,
		owner:       own,
		priority:    ClampPriority(priority),
		pending:     pending,
		deps:        append([]int(nil), deps...),
	}
}

// NewDeadline creates a deadline task. A pending task must have a due
// timestamp strictly in the future; a completed one may carry any due
// timestamp, so back-dated history loads cleanly.
func NewDeadline(id int, description string, own owner.Owner, priority int, pending bool, deps []int, dueAt time.Time) (*Task, error) {
	if pending && !dueAt.After(time.Now()) {
		return nil, errors.NewTaskError("cannot create deadline task", errors.ErrPastDueDate).WithTaskID(id)
	}
	t := NewSimple(id, description, own, priority, pending, deps)
	t.kind = KindDeadline
	t.dueAt = dueAt
	return t, nil
}

// Restore materializes a task from persisted fields without the due-date
// check. It exists for loaders: a snapshot may legitimately hold a pending
// deadline task whose due date has passed (reopened after completion), and
// reloading must not reject it. dueAt is ignored unless kind is
// KindDeadline.
func Restore(id int, kind Kind, description string, own owner.Owner, priority int, pending bool, deps []int, dueAt time.Time) *Task {
	t := NewSimple(id, description, own, priority, pending, deps)
	if kind == KindDeadline {
		t.kind = KindDeadline
		t.dueAt = dueAt
	}
	return t
}

// WithDue builds a deadline task carrying all of t's fields and the given
// due timestamp. It is how a plain task gains a deadline (the result
// replaces t at the same ID) and how an existing deadline moves. The same
// future check as NewDeadline applies.
func WithDue(t *Task, dueAt time.Time) (*Task, error) {
	return NewDeadline(t.id, t.description, t.owner, t.priority, t.pending, t.deps, dueAt)
}

// ID returns the task's unique identifier.
func (t *Task) ID() int { return t.id }

// Kind returns the task's variant.
func (t *Task) Kind() Kind { return t.kind }

// Description returns the task's description.
func (t *Task) Description() string { return t.description }

// SetDescription updates the task's description.
func (t *Task) SetDescription(d string) { t.description = d }

// Owner returns the task's owner, fixed at creation.
func (t *Task) Owner() owner.Owner { return t.owner }

// Priority returns the task's priority.
func (t *Task) Priority() int { return t.priority }

// SetPriority sets the task's priority, clamped to the valid range.
func (t *Task) SetPriority(p int) { t.priority = ClampPriority(p) }

// AdjustPriority applies a delta to the priority, clamped to the valid
// range.
func (t *Task) AdjustPriority(delta int) {
	t.priority = ClampPriority(t.priority + delta)
}

// Pending reports whether the task is still open.
func (t *Task) Pending() bool { return t.pending }

// SetPending flips the open/done flag. Legality of the transition is the
// pool's check (CanChangeState); callers flip only after it passes.
func (t *Task) SetPending(pending bool) { t.pending = pending }

// DueAt returns the due timestamp. It is the zero time for plain tasks.
func (t *Task) DueAt() time.Time { return t.dueAt }

// DaysUntilDue returns whole days between now and the due timestamp.
// Negative for overdue tasks. Only meaningful for deadline tasks.
func (t *Task) DaysUntilDue() int {
	return int(time.Until(t.dueAt).Hours() / 24)
}

// Dependencies returns a copy of the task's dependency ID list.
func (t *Task) Dependencies() []int {
	return append([]int(nil), t.deps...)
}

// DependsOn reports whether id is in the task's dependency list.
func (t *Task) DependsOn(id int) bool {
	for _, d := range t.deps {
		if d == id {
			return true
		}
	}
	return false
}

// AddDependency appends a dependency ID. Adding an ID already present is a
// no-op. Existence and transition checks belong to the pool.
func (t *Task) AddDependency(id int) {
	if t.DependsOn(id) {
		return
	}
	t.deps = append(t.deps, id)
}

// RemoveDependency drops a dependency ID. Fails if the task does not
// depend on it.
func (t *Task) RemoveDependency(id int) error {
	for i, d := range t.deps {
		if d == id {
			t.deps = append(t.deps[:i], t.deps[i+1:]...)
			return nil
		}
	}
	return errors.NewTaskError("cannot remove dependency", errors.ErrNoSuchDependency).
		WithTaskID(t.id).WithDependencyID(id)
}

// BelongsTo reports whether the task belongs to the given owner. The rule
// is asymmetric: queried with a group, only exact ownership matches;
// queried with a user, a match is either direct ownership or ownership by
// a group the user is a confirmed member of.
func (t *Task) BelongsTo(o owner.Owner) bool {
	if o == nil {
		return false
	}
	if o.Kind() == owner.KindGroup {
		return owner.Equal(o, t.owner)
	}
	if g, ok := t.owner.(*owner.Group); ok {
		u, ok := o.(*owner.User)
		return ok && g.HasMember(u)
	}
	return owner.Equal(o, t.owner)
}

// SameWorkAs reports whether two tasks describe the same work regardless
// of ID: same owner, same description, same variant, and, when both carry
// deadlines, the same due timestamp. This is the duplicate criterion, which
// is deliberately weaker than Equal.
func (t *Task) SameWorkAs(other *Task) bool {
	if t.description != other.description || t.kind != other.kind {
		return false
	}
	if !owner.Equal(t.owner, other.owner) {
		return false
	}
	if t.kind == KindDeadline {
		return t.dueAt.Equal(other.dueAt)
	}
	return true
}

// Equal reports full structural equality, ID included. Used by the
// persister's changed-since-load comparison.
func (t *Task) Equal(other *Task) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.id != other.id || t.kind != other.kind || t.description != other.description {
		return false
	}
	if t.priority != other.priority || t.pending != other.pending {
		return false
	}
	if !owner.Equal(t.owner, other.owner) {
		return false
	}
	if !t.dueAt.Equal(other.dueAt) {
		return false
	}
	if len(t.deps) != len(other.deps) {
		return false
	}
	for i := range t.deps {
		if t.deps[i] != other.deps[i] {
			return false
		}
	}
	return true
}
