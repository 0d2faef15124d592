package pool

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"taredo/internal/errors"
	"taredo/internal/owner"
	"taredo/internal/task"
)

// Pool is the complete task set. Insertion order is preserved: listing and
// traversal walk tasks in the order they were added (or loaded), and
// Replace keeps a task's position.
type Pool struct {
	tasks []*task.Task
}

// New creates a pool over the given tasks. The slice is copied.
func New(tasks []*task.Task) *Pool {
	return &Pool{tasks: append([]*task.Task(nil), tasks...)}
}

// Len returns the number of tasks in the pool.
func (p *Pool) Len() int {
	return len(p.tasks)
}

// Tasks returns a copy of the task list in insertion order.
func (p *Pool) Tasks() []*task.Task {
	return append([]*task.Task(nil), p.tasks...)
}

// IDs returns the set of task IDs currently in use, in insertion order.
func (p *Pool) IDs() []int {
	ids := make([]int, len(p.tasks))
	for i, t := range p.tasks {
		ids[i] = t.ID()
	}
	return ids
}

// NextID returns the smallest positive integer not used by any task.
func (p *Pool) NextID() int {
	return task.NextID(p.IDs())
}

// FindByID returns the task with the given ID.
func (p *Pool) FindByID(id int) (*task.Task, error) {
	for _, t := range p.tasks {
		if t.ID() == id {
			return t, nil
		}
	}
	return nil, errors.NewNotFoundError("task", strconv.Itoa(id)).
		WithCause(errors.ErrTaskNotFound)
}

// Add appends a task. ID allocation and duplicate checks are the caller's
// responsibility (the session runs them before calling Add).
func (p *Pool) Add(t *task.Task) {
	p.tasks = append(p.tasks, t)
}

// Delete removes the task with the given ID. It fails while any other
// task still depends on it; callers that want a cascade strip those
// references first.
func (p *Pool) Delete(id int) error {
	idx := -1
	for i, t := range p.tasks {
		if t.ID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.NewNotFoundError("task", strconv.Itoa(id)).
			WithCause(errors.ErrTaskNotFound)
	}
	if deps := p.DirectDependents(id); len(deps) > 0 {
		return errors.NewTaskError("cannot delete task with dependents", errors.ErrHasDependents).
			WithTaskID(id)
	}
	p.tasks = append(p.tasks[:idx], p.tasks[idx+1:]...)
	return nil
}

// Replace substitutes the task holding the same ID, preserving its list
// position. Used for the plain-to-deadline upgrade and other
// edit-by-replacement flows.
func (p *Pool) Replace(t *task.Task) error {
	for i, old := range p.tasks {
		if old.ID() == t.ID() {
			p.tasks[i] = t
			return nil
		}
	}
	return errors.NewNotFoundError("task", strconv.Itoa(t.ID())).
		WithCause(errors.ErrTaskNotFound)
}

// DirectDependents returns every task whose dependency list contains id,
// in insertion order.
func (p *Pool) DirectDependents(id int) []*task.Task {
	var out []*task.Task
	for _, t := range p.tasks {
		if t.DependsOn(id) {
			out = append(out, t)
		}
	}
	return out
}

// DirectDependencies returns the tasks the given task depends on directly,
// in dependency-list order. IDs that no longer resolve are skipped.
func (p *Pool) DirectDependencies(t *task.Task) []*task.Task {
	var out []*task.Task
	for _, id := range t.Dependencies() {
		if dep, err := p.FindByID(id); err == nil {
			out = append(out, dep)
		}
	}
	return out
}

// IndirectDependents returns the transitive closure of DirectDependents as
// an ascending, de-duplicated ID list (direct dependents included). The
// walk carries a visited set, so it terminates even on a cyclic graph.
func (p *Pool) IndirectDependents(id int) []int {
	return p.closure(id, func(cur int) []int {
		var next []int
		for _, t := range p.DirectDependents(cur) {
			next = append(next, t.ID())
		}
		return next
	})
}

// IndirectDependencies returns the transitive closure of a task's own
// dependency list as an ascending, de-duplicated ID list (direct
// dependencies included). IDs that no longer resolve still appear in the
// result but are not expanded. Cycle-safe like IndirectDependents.
func (p *Pool) IndirectDependencies(id int) []int {
	return p.closure(id, func(cur int) []int {
		t, err := p.FindByID(cur)
		if err != nil {
			return nil
		}
		return t.Dependencies()
	})
}

// closure runs an iterative worklist walk from id, expanding each node at
// most once. The start node itself is excluded unless reachable through a
// cycle.
func (p *Pool) closure(id int, edges func(int) []int) []int {
	visited := map[int]bool{id: true}
	var out []int
	work := edges(id)
	for len(work) > 0 {
		cur := work[0]
		work = work[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		out = append(out, cur)
		work = append(work, edges(cur)...)
	}
	sort.Ints(out)
	return out
}

// ForOwner returns every task the given owner can act on, in insertion
// order. For a user this includes tasks owned by groups the user is a
// confirmed member of.
func (p *Pool) ForOwner(o owner.Owner) []*task.Task {
	var out []*task.Task
	for _, t := range p.tasks {
		if t.BelongsTo(o) {
			out = append(out, t)
		}
	}
	return out
}

// ByState returns the owner's tasks filtered by the pending flag.
func (p *Pool) ByState(o owner.Owner, pending bool) []*task.Task {
	var out []*task.Task
	for _, t := range p.ForOwner(o) {
		if t.Pending() == pending {
			out = append(out, t)
		}
	}
	return out
}

// DueOn returns the owner's deadline tasks due on the given calendar day.
func (p *Pool) DueOn(o owner.Owner, day time.Time) []*task.Task {
	y, m, d := day.Date()
	var out []*task.Task
	for _, t := range p.ForOwner(o) {
		if t.Kind() != task.KindDeadline {
			continue
		}
		ty, tm, td := t.DueAt().Date()
		if ty == y && tm == m && td == d {
			out = append(out, t)
		}
	}
	return out
}

// SearchDescription returns the owner's tasks whose description contains
// the given text, case-insensitively.
func (p *Pool) SearchDescription(o owner.Owner, text string) []*task.Task {
	needle := strings.ToLower(text)
	var out []*task.Task
	for _, t := range p.ForOwner(o) {
		if strings.Contains(strings.ToLower(t.Description()), needle) {
			out = append(out, t)
		}
	}
	return out
}

// IsDuplicate reports whether a task describing the same work as the
// candidate already exists among the acting user's visible tasks. The
// scope is deliberately the actor's view, not the whole pool: two users
// who cannot see each other's tasks may hold identical ones.
func (p *Pool) IsDuplicate(candidate *task.Task, actor *owner.User) bool {
	for _, t := range p.ForOwner(actor) {
		if t.SameWorkAs(candidate) {
			return true
		}
	}
	return false
}

// CanChangeState reports whether flipping the task's pending flag is
// legal. Completing is blocked while any direct dependency is still open;
// reopening is blocked while any direct dependent is already done. A
// dependency ID that no longer resolves surfaces as a not-found error.
// A nil return means the caller may flip the flag; CanChangeState never
// flips it itself.
func (p *Pool) CanChangeState(t *task.Task) error {
	if t.Pending() {
		for _, id := range t.Dependencies() {
			dep, err := p.FindByID(id)
			if err != nil {
				return err
			}
			if dep.Pending() {
				return errors.NewTaskError("cannot complete task while a dependency is open", errors.ErrOpenDependency).
					WithTaskID(t.ID()).WithDependencyID(id)
			}
		}
		return nil
	}
	for _, dep := range p.DirectDependents(t.ID()) {
		if !dep.Pending() {
			return errors.NewTaskError("cannot reopen task with a completed dependent", errors.ErrCompletedDependent).
				WithTaskID(t.ID()).WithDependencyID(dep.ID())
		}
	}
	return nil
}

// AddDependency makes t depend on the task with depID. The dependency must
// resolve to an existing task, and a completed task cannot take on a
// still-open dependency. Adding an edge that is already present is a
// no-op.
func (p *Pool) AddDependency(t *task.Task, depID int) error {
	dep, err := p.FindByID(depID)
	if err != nil {
		return err
	}
	if !t.Pending() && dep.Pending() {
		return errors.NewTaskError("completed task cannot depend on open work", errors.ErrInvalidTransition).
			WithTaskID(t.ID()).WithDependencyID(depID)
	}
	t.AddDependency(depID)
	return nil
}

// RemoveDependency drops t's dependency on depID. Fails when the edge is
// not present.
func (p *Pool) RemoveDependency(t *task.Task, depID int) error {
	return t.RemoveDependency(depID)
}

// StripDependency removes every reference to id from the dependency lists
// of all tasks. Used by cascade deletions before the referenced task goes
// away.
func (p *Pool) StripDependency(id int) {
	for _, t := range p.DirectDependents(id) {
		// Present by construction, so the error cannot fire.
		_ = t.RemoveDependency(id)
	}
}

// Equal reports structural equality with another pool: same tasks, in the
// same order, each structurally equal. The persister uses this for its
// changed-since-load comparison.
func (p *Pool) Equal(other *Pool) bool {
	if p == nil || other == nil {
		return p == other
	}
	if len(p.tasks) != len(other.tasks) {
		return false
	}
	for i := range p.tasks {
		if !p.tasks[i].Equal(other.tasks[i]) {
			return false
		}
	}
	return true
}
