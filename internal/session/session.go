package session

import (
	"time"

	"taredo/internal/errors"
	"taredo/internal/logging"
	"taredo/internal/owner"
	"taredo/internal/pool"
	"taredo/internal/task"
)

// Session binds an acting user to the shared roster and task pool. All
// task mutations check ownership against the actor first; all reads are
// scoped to the actor's visible tasks.
type Session struct {
	actor  *owner.User
	roster *owner.Roster
	pool   *pool.Pool
	log    *logging.Logger
}

// New creates a session for the given actor. The logger may be
// logging.NopLogger() when the caller does not want log output.
func New(actor *owner.User, roster *owner.Roster, p *pool.Pool, log *logging.Logger) *Session {
	return &Session{
		actor:  actor,
		roster: roster,
		pool:   p,
		log:    log.WithActor(actor.Name()),
	}
}

// Actor returns the acting user.
func (s *Session) Actor() *owner.User { return s.actor }

// Roster returns the owner roster. Shared with the store and the mail
// importer.
func (s *Session) Roster() *owner.Roster { return s.roster }

// Pool returns the task pool. Shared with the store.
func (s *Session) Pool() *pool.Pool { return s.pool }

// authorize returns the task with the given ID if the actor may act on
// it.
func (s *Session) authorize(id int) (*task.Task, error) {
	t, err := s.pool.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !t.BelongsTo(s.actor) {
		return nil, errors.NewTaskError("task does not belong to "+s.actor.Name(), errors.ErrUnauthorized).
			WithTaskID(id)
	}
	return t, nil
}

// checkNew validates a candidate task before it enters the pool: every
// declared dependency must resolve, the chosen owner must be one the actor
// can act for, and the same work must not already exist among the actor's
// visible tasks.
func (s *Session) checkNew(candidate *task.Task) error {
	if !candidate.BelongsTo(s.actor) {
		return errors.NewTaskError("cannot create a task for "+candidate.Owner().Name(), errors.ErrUnauthorized)
	}
	for _, depID := range candidate.Dependencies() {
		if _, err := s.pool.FindByID(depID); err != nil {
			return err
		}
	}
	if s.pool.IsDuplicate(candidate, s.actor) {
		return errors.NewTaskError("an identical task already exists", errors.ErrDuplicateTask)
	}
	return nil
}

// CreateSimple creates a plain task owned by own, which must be the actor
// or one of the actor's groups. Dependencies must resolve; duplicates are
// rejected. The new ID is the smallest unused one.
func (s *Session) CreateSimple(own owner.Owner, description string, priority int, pending bool, deps []int) (*task.Task, error) {
	id := s.pool.NextID()
	t := task.NewSimple(id, description, own, priority, pending, deps)
	if err := s.checkNew(t); err != nil {
		return nil, err
	}
	s.pool.Add(t)
	s.log.WithOp("create").Info("task created", "task_id", id, "owner", own.Name())
	return t, nil
}

// CreateDeadline creates a deadline task. Same checks as CreateSimple,
// plus the due timestamp must be in the future when the task starts
// pending.
func (s *Session) CreateDeadline(own owner.Owner, description string, priority int, pending bool, deps []int, dueAt time.Time) (*task.Task, error) {
	id := s.pool.NextID()
	t, err := task.NewDeadline(id, description, own, priority, pending, deps, dueAt)
	if err != nil {
		return nil, err
	}
	if err := s.checkNew(t); err != nil {
		return nil, err
	}
	s.pool.Add(t)
	s.log.WithOp("create").Info("deadline task created", "task_id", id, "owner", own.Name(), "due", dueAt)
	return t, nil
}

// Delete removes the actor's task. Blocked while other tasks depend on
// it.
func (s *Session) Delete(id int) error {
	if _, err := s.authorize(id); err != nil {
		return err
	}
	if err := s.pool.Delete(id); err != nil {
		return err
	}
	s.log.WithOp("delete").Info("task deleted", "task_id", id)
	return nil
}

// Detail is the full view of one task: the task itself plus its
// neighborhood in the dependency graph. The indirect slices hold only the
// transitive part, with the direct edges subtracted.
type Detail struct {
	Task                 *task.Task
	DirectDependents     []*task.Task
	IndirectDependents   []int
	DirectDependencies   []*task.Task
	IndirectDependencies []int
}

// View returns the detail view of the actor's task.
func (s *Session) View(id int) (*Detail, error) {
	t, err := s.authorize(id)
	if err != nil {
		return nil, err
	}
	d := &Detail{
		Task:               t,
		DirectDependents:   s.pool.DirectDependents(id),
		DirectDependencies: s.pool.DirectDependencies(t),
	}
	direct := make(map[int]bool)
	for _, dep := range d.DirectDependents {
		direct[dep.ID()] = true
	}
	for _, depID := range s.pool.IndirectDependents(id) {
		if !direct[depID] {
			d.IndirectDependents = append(d.IndirectDependents, depID)
		}
	}
	direct = make(map[int]bool)
	for _, depID := range t.Dependencies() {
		direct[depID] = true
	}
	for _, depID := range s.pool.IndirectDependencies(id) {
		if !direct[depID] {
			d.IndirectDependencies = append(d.IndirectDependencies, depID)
		}
	}
	return d, nil
}

// List returns the actor's tasks sorted by the given parameter and
// direction.
func (s *Session) List(param task.SortParam, order task.SortOrder) ([]*task.Task, error) {
	if !param.IsValid() {
		return nil, errors.NewValidationError("unknown sort parameter").
			WithField("sort").WithValue(string(param))
	}
	if !order.IsValid() {
		return nil, errors.NewValidationError("unknown sort order").
			WithField("order").WithValue(string(order))
	}
	out := s.pool.ForOwner(s.actor)
	task.Sort(out, param, order)
	return out, nil
}

// ListByState is List restricted to pending or completed tasks.
func (s *Session) ListByState(pending bool, param task.SortParam, order task.SortOrder) ([]*task.Task, error) {
	if !param.IsValid() {
		return nil, errors.NewValidationError("unknown sort parameter").
			WithField("sort").WithValue(string(param))
	}
	if !order.IsValid() {
		return nil, errors.NewValidationError("unknown sort order").
			WithField("order").WithValue(string(order))
	}
	out := s.pool.ByState(s.actor, pending)
	task.Sort(out, param, order)
	return out, nil
}

// SearchDueOn returns the actor's deadline tasks due on the given
// calendar day.
func (s *Session) SearchDueOn(day time.Time) []*task.Task {
	return s.pool.DueOn(s.actor, day)
}

// SearchText returns the actor's tasks whose description contains the
// text, case-insensitively.
func (s *Session) SearchText(text string) []*task.Task {
	return s.pool.SearchDescription(s.actor, text)
}

// AdjustPriority shifts the task's priority by delta, clamped to the
// valid range.
func (s *Session) AdjustPriority(id, delta int) error {
	t, err := s.authorize(id)
	if err != nil {
		return err
	}
	t.AdjustPriority(delta)
	s.log.WithOp("priority").Info("priority adjusted", "task_id", id, "priority", t.Priority())
	return nil
}

// ToggleState flips the task between pending and done, subject to the
// dependency guards: completing needs every dependency done, reopening
// needs every dependent still open.
func (s *Session) ToggleState(id int) error {
	t, err := s.authorize(id)
	if err != nil {
		return err
	}
	if err := s.pool.CanChangeState(t); err != nil {
		return err
	}
	t.SetPending(!t.Pending())
	s.log.WithOp("toggle").Info("task state changed", "task_id", id, "pending", t.Pending())
	return nil
}

// SetDueDate gives the task a due timestamp. A plain task is upgraded to
// a deadline task in place, keeping its ID and list position; an existing
// deadline task moves. The future check applies while the task is
// pending.
func (s *Session) SetDueDate(id int, dueAt time.Time) error {
	t, err := s.authorize(id)
	if err != nil {
		return err
	}
	upgraded, err := task.WithDue(t, dueAt)
	if err != nil {
		return err
	}
	if err := s.pool.Replace(upgraded); err != nil {
		return err
	}
	s.log.WithOp("due").Info("due date set", "task_id", id, "due", dueAt)
	return nil
}

// AddDependency makes the actor's task depend on another existing task.
func (s *Session) AddDependency(id, depID int) error {
	t, err := s.authorize(id)
	if err != nil {
		return err
	}
	if err := s.pool.AddDependency(t, depID); err != nil {
		return err
	}
	s.log.WithOp("dep").Info("dependency added", "task_id", id, "dependency_id", depID)
	return nil
}

// RemoveDependency drops a dependency from the actor's task.
func (s *Session) RemoveDependency(id, depID int) error {
	t, err := s.authorize(id)
	if err != nil {
		return err
	}
	if err := s.pool.RemoveDependency(t, depID); err != nil {
		return err
	}
	s.log.WithOp("dep").Info("dependency removed", "task_id", id, "dependency_id", depID)
	return nil
}

// SetEmail updates the actor's contact address.
func (s *Session) SetEmail(email string) {
	s.actor.SetEmail(email)
	s.log.WithOp("email").Info("email updated")
}

// OwnerChoices lists the owners the actor may create tasks for: the actor
// first, then the actor's groups in membership order.
func (s *Session) OwnerChoices() []owner.Owner {
	out := []owner.Owner{s.actor}
	for _, g := range s.actor.Groups() {
		out = append(out, g)
	}
	return out
}

// OwnerAt returns the owner at the given zero-based index of
// OwnerChoices. Indexes outside the list fail with ChoiceOutOfRange.
func (s *Session) OwnerAt(i int) (owner.Owner, error) {
	choices := s.OwnerChoices()
	if i < 0 || i >= len(choices) {
		return nil, errors.NewValidationError("owner selection out of range").
			WithValue(i).WithCause(errors.ErrChoiceOutOfRange)
	}
	return choices[i], nil
}
