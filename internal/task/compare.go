package task

import (
	"sort"
	"strings"
)

// SortParam selects the primary key for ordering a task list.
type SortParam string

const (
	// ByPriority orders tasks by their priority value.
	ByPriority SortParam = "priority"

	// ByDueDate orders tasks by due timestamp. Plain tasks sort strictly
	// before any deadline task and compare equal among themselves.
	ByDueDate SortParam = "due"
)

// IsValid returns true if this is a recognized sort parameter.
func (p SortParam) IsValid() bool {
	return p == ByPriority || p == ByDueDate
}

// SortOrder selects the direction of the primary key.
type SortOrder string

const (
	// Ascending sorts smallest first.
	Ascending SortOrder = "ascending"

	// Descending sorts largest first.
	Descending SortOrder = "descending"
)

// IsValid returns true if this is a recognized sort order.
func (o SortOrder) IsValid() bool {
	return o == Ascending || o == Descending
}

// Compare orders two tasks by the primary key only: -1, 0 or 1.
func Compare(a, b *Task, param SortParam) int {
	if param == ByDueDate {
		return compareDue(a, b)
	}
	switch {
	case a.priority < b.priority:
		return -1
	case a.priority > b.priority:
		return 1
	default:
		return 0
	}
}

// compareDue implements the due-date ordering: a plain task is strictly
// less than any deadline task, two plain tasks are equal.
func compareDue(a, b *Task) int {
	aDeadline := a.kind == KindDeadline
	bDeadline := b.kind == KindDeadline
	switch {
	case !aDeadline && !bDeadline:
		return 0
	case !aDeadline:
		return -1
	case !bDeadline:
		return 1
	default:
		return a.dueAt.Compare(b.dueAt)
	}
}

// Sort orders tasks in place by the given parameter and direction. The
// primary key follows the requested direction; ties always fall back to
// ascending lexicographic description, regardless of direction, which
// makes the comparator total and keeps tied runs readable either way. The
// sort is stable.
func Sort(tasks []*Task, param SortParam, order SortOrder) {
	sign := 1
	if order == Descending {
		sign = -1
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if c := sign * Compare(tasks[i], tasks[j], param); c != 0 {
			return c < 0
		}
		return strings.Compare(tasks[i].description, tasks[j].description) < 0
	})
}
