package task

import (
	"testing"
	"time"

	"taredo/internal/owner"
)

func idsOf(tasks []*Task) []int {
	ids := make([]int, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID()
	}
	return ids
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSort_ByPriority(t *testing.T) {
	alice := owner.NewUser("alice", "alice@example.com")
	mk := func(id, prio int, desc string) *Task {
		return NewSimple(id, desc, alice, prio, true, nil)
	}

	tasks := []*Task{
		mk(1, 5, "bravo"),
		mk(2, 2, "delta"),
		mk(3, 5, "alpha"),
		mk(4, 9, "charlie"),
	}

	Sort(tasks, ByPriority, Ascending)
	if got, want := idsOf(tasks), []int{2, 3, 1, 4}; !equalIDs(got, want) {
		t.Errorf("ascending IDs = %v, want %v", got, want)
	}

	Sort(tasks, ByPriority, Descending)
	if got, want := idsOf(tasks), []int{4, 3, 1, 2}; !equalIDs(got, want) {
		t.Errorf("descending IDs = %v, want %v", got, want)
	}
}

// Ties fall back to ascending description order in both directions, so
// equal-priority runs keep the same relative order whichever way the
// primary key points.
func TestSort_TiebreakIsAscendingBothDirections(t *testing.T) {
	alice := owner.NewUser("alice", "alice@example.com")
	tasks := []*Task{
		NewSimple(1, "zulu", alice, 5, true, nil),
		NewSimple(2, "alpha", alice, 5, true, nil),
		NewSimple(3, "mike", alice, 5, true, nil),
	}

	want := []int{2, 3, 1} // alpha, mike, zulu

	Sort(tasks, ByPriority, Ascending)
	if got := idsOf(tasks); !equalIDs(got, want) {
		t.Errorf("ascending tie order = %v, want %v", got, want)
	}

	Sort(tasks, ByPriority, Descending)
	if got := idsOf(tasks); !equalIDs(got, want) {
		t.Errorf("descending tie order = %v, want %v", got, want)
	}
}

func TestSort_ByDueDate(t *testing.T) {
	alice := owner.NewUser("alice", "alice@example.com")
	base := time.Now().Add(time.Hour)

	mkDue := func(id int, desc string, due time.Time) *Task {
		tk, err := NewDeadline(id, desc, alice, 5, true, nil, due)
		if err != nil {
			t.Fatalf("NewDeadline() error = %v", err)
		}
		return tk
	}

	late := mkDue(1, "late", base.Add(48*time.Hour))
	soon := mkDue(2, "soon", base)
	plainB := NewSimple(3, "bravo", alice, 5, true, nil)
	plainA := NewSimple(4, "alpha", alice, 5, true, nil)

	tasks := []*Task{late, soon, plainB, plainA}
	Sort(tasks, ByDueDate, Ascending)

	// Plain tasks sort before every deadline task and tie among
	// themselves on description.
	if got, want := idsOf(tasks), []int{4, 3, 2, 1}; !equalIDs(got, want) {
		t.Errorf("ascending due order = %v, want %v", got, want)
	}

	Sort(tasks, ByDueDate, Descending)
	if got, want := idsOf(tasks), []int{1, 2, 4, 3}; !equalIDs(got, want) {
		t.Errorf("descending due order = %v, want %v", got, want)
	}
}

func TestSortParamAndOrder_IsValid(t *testing.T) {
	if !ByPriority.IsValid() || !ByDueDate.IsValid() {
		t.Error("known sort parameters should be valid")
	}
	if SortParam("alphabetical").IsValid() {
		t.Error("unknown sort parameter should be invalid")
	}
	if !Ascending.IsValid() || !Descending.IsValid() {
		t.Error("known sort orders should be valid")
	}
	if SortOrder("sideways").IsValid() {
		t.Error("unknown sort order should be invalid")
	}
}
