package task

import (
	"testing"
	"time"

	"taredo/internal/errors"
	"taredo/internal/owner"
)

func TestClampPriority(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{-5, 1},
		{1, 1},
		{5, 5},
		{10, 10},
		{11, 10},
	}
	for _, tt := range tests {
		if got := ClampPriority(tt.in); got != tt.want {
			t.Errorf("ClampPriority(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNewSimple(t *testing.T) {
	alice := owner.NewUser("alice", "alice@example.com")
	deps := []int{2, 3}
	tk := NewSimple(1, "write report", alice, 99, true, deps)

	if tk.Kind() != KindSimple {
		t.Errorf("Kind() = %s, want simple", tk.Kind())
	}
	if tk.Priority() != MaxPriority {
		t.Errorf("Priority() = %d, want clamped to %d", tk.Priority(), MaxPriority)
	}

	// The dependency list is copied, not retained.
	deps[0] = 99
	if tk.DependsOn(99) {
		t.Error("constructor must copy the dependency list")
	}
	got := tk.Dependencies()
	got[0] = 42
	if tk.DependsOn(42) {
		t.Error("Dependencies() must return a caller-owned copy")
	}
}

func TestNewDeadline_FutureCheck(t *testing.T) {
	alice := owner.NewUser("alice", "alice@example.com")
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	if _, err := NewDeadline(1, "x", alice, 5, true, nil, past); !errors.Is(err, errors.ErrPastDueDate) {
		t.Errorf("pending task with past due date: error = %v, want ErrPastDueDate", err)
	}

	// A completed task may carry any due timestamp (back-dated history).
	if _, err := NewDeadline(1, "x", alice, 5, false, nil, past); err != nil {
		t.Errorf("done task with past due date: error = %v, want nil", err)
	}

	if _, err := NewDeadline(1, "x", alice, 5, true, nil, future); err != nil {
		t.Errorf("pending task with future due date: error = %v, want nil", err)
	}
}

func TestWithDue_UpgradePreservesFields(t *testing.T) {
	alice := owner.NewUser("alice", "alice@example.com")
	plain := NewSimple(7, "ship release", alice, 4, true, []int{2})
	due := time.Now().Add(48 * time.Hour)

	up, err := WithDue(plain, due)
	if err != nil {
		t.Fatalf("WithDue() error = %v", err)
	}
	if up.Kind() != KindDeadline {
		t.Errorf("Kind() = %s, want deadline", up.Kind())
	}
	if up.ID() != 7 || up.Description() != "ship release" || up.Priority() != 4 {
		t.Error("upgrade must preserve ID, description and priority")
	}
	if !up.DependsOn(2) {
		t.Error("upgrade must preserve dependencies")
	}
	if !up.DueAt().Equal(due) {
		t.Errorf("DueAt() = %v, want %v", up.DueAt(), due)
	}
}

func TestTask_AddRemoveDependency(t *testing.T) {
	alice := owner.NewUser("alice", "alice@example.com")
	tk := NewSimple(1, "x", alice, 5, true, nil)

	tk.AddDependency(2)
	tk.AddDependency(2) // idempotent
	if got := tk.Dependencies(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("Dependencies() = %v, want [2]", got)
	}

	if err := tk.RemoveDependency(9); !errors.Is(err, errors.ErrNoSuchDependency) {
		t.Errorf("RemoveDependency(absent) error = %v, want ErrNoSuchDependency", err)
	}
	if err := tk.RemoveDependency(2); err != nil {
		t.Fatalf("RemoveDependency() error = %v", err)
	}
	if len(tk.Dependencies()) != 0 {
		t.Error("dependency should be gone")
	}
}

func TestTask_BelongsTo(t *testing.T) {
	alice := owner.NewUser("alice", "alice@example.com")
	bob := owner.NewUser("bob", "bob@example.com")
	backend := owner.NewGroup("backend")
	backend.RestoreMember(owner.Member{Status: owner.MemberConfirmed, User: alice})
	frontend := owner.NewGroup("frontend")

	ownTask := NewSimple(1, "mine", alice, 5, true, nil)
	groupTask := NewSimple(2, "ours", backend, 5, true, nil)

	tests := []struct {
		name string
		task *Task
		o    owner.Owner
		want bool
	}{
		{"user owns directly", ownTask, alice, true},
		{"other user does not", ownTask, bob, false},
		{"member reaches group task", groupTask, alice, true},
		{"non-member does not", groupTask, bob, false},
		{"group matches its own task", groupTask, backend, true},
		{"other group does not", groupTask, frontend, false},
		// The asymmetric rule: a group never owns through a user.
		{"group does not reach user task", ownTask, backend, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.BelongsTo(tt.o); got != tt.want {
				t.Errorf("BelongsTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTask_SameWorkAs(t *testing.T) {
	alice := owner.NewUser("alice", "alice@example.com")
	due := time.Now().Add(time.Hour)

	a := NewSimple(1, "write report", alice, 5, true, nil)
	b := NewSimple(9, "write report", alice, 2, false, []int{1})

	// Tasks differing only in ID (and mutable state) are duplicates.
	if !a.SameWorkAs(b) {
		t.Error("same owner/description/variant should be the same work regardless of ID")
	}

	c := NewSimple(3, "other report", alice, 5, true, nil)
	if a.SameWorkAs(c) {
		t.Error("different descriptions are not the same work")
	}

	d1, err := NewDeadline(4, "write report", alice, 5, true, nil, due)
	if err != nil {
		t.Fatalf("NewDeadline() error = %v", err)
	}
	if a.SameWorkAs(d1) {
		t.Error("plain and deadline variants are not the same work")
	}

	d2, err := NewDeadline(5, "write report", alice, 5, true, nil, due.Add(time.Minute))
	if err != nil {
		t.Fatalf("NewDeadline() error = %v", err)
	}
	if d1.SameWorkAs(d2) {
		t.Error("deadline tasks with different due timestamps are not the same work")
	}

	d3, err := NewDeadline(6, "write report", alice, 1, false, []int{2}, due)
	if err != nil {
		t.Fatalf("NewDeadline() error = %v", err)
	}
	if !d1.SameWorkAs(d3) {
		t.Error("deadline tasks matching on due timestamp are the same work")
	}
}

func TestTask_Equal(t *testing.T) {
	alice := owner.NewUser("alice", "alice@example.com")

	a := NewSimple(1, "x", alice, 5, true, []int{2, 3})
	b := NewSimple(1, "x", alice, 5, true, []int{2, 3})
	if !a.Equal(b) {
		t.Error("structurally identical tasks should be equal")
	}

	b.SetPending(false)
	if a.Equal(b) {
		t.Error("tasks differing in state should not be equal")
	}

	c := NewSimple(1, "x", alice, 5, true, []int{3, 2})
	if a.Equal(c) {
		t.Error("dependency order matters for structural equality")
	}
}

func TestTask_DaysUntilDue(t *testing.T) {
	alice := owner.NewUser("alice", "alice@example.com")
	due := time.Now().Add(72*time.Hour + time.Minute)
	tk, err := NewDeadline(1, "x", alice, 5, true, nil, due)
	if err != nil {
		t.Fatalf("NewDeadline() error = %v", err)
	}
	if got := tk.DaysUntilDue(); got != 3 {
		t.Errorf("DaysUntilDue() = %d, want 3", got)
	}
}
