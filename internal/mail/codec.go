package mail

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"taredo/internal/errors"
	"taredo/internal/task"
)

// State keywords used in message bodies.
const (
	statePending = "pending"
	stateDone    = "done"
)

// Body field labels, in the order they must appear.
const (
	fieldDescription  = "Description"
	fieldType         = "Type"
	fieldOwner        = "Owner"
	fieldPriority     = "Priority"
	fieldState        = "State"
	fieldDependencies = "Dependencies"
	fieldDue          = "Due"
)

// Compose renders one task as an outbound reminder. The subject is the
// given prefix followed by the task description; the body is an HTML
// summary, one "label: value" line per field.
func Compose(from, to, subjectPrefix string, t *task.Task) Message {
	var sb strings.Builder
	line := func(label, value string) {
		sb.WriteString("<b>" + label + ":</b> " + value + "<br>")
	}
	line(fieldDescription, t.Description())
	line(fieldType, t.Kind().String())
	line(fieldOwner, t.Owner().Name())
	line(fieldPriority, strconv.Itoa(t.Priority()))
	state := statePending
	if !t.Pending() {
		state = stateDone
	}
	line(fieldState, state)
	line(fieldDependencies, task.FormatDeps(t.Dependencies()))
	if t.Kind() == task.KindDeadline {
		line(fieldDue, t.DueAt().Format(task.DueLayout))
	}

	return NewMessage(from, to, subjectPrefix+t.Description(), sb.String())
}

// Record is one task decoded from an inbound message, before owner
// resolution and ID allocation.
type Record struct {
	Description string
	Kind        task.Kind
	OwnerName   string
	Priority    int
	Pending     bool
	Deps        []int
	DueAt       time.Time // set only when Kind is deadline
}

// Parse decodes a plain-text message body into a Record. The body is one
// "label: value" line per field, in fixed order; the Due line is present
// exactly when the type is deadline.
func Parse(body string) (Record, error) {
	var rec Record

	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	fields := make([]string, 0, 7)
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		// Values may themselves contain colons (the due timestamp
		// does), so split on the first one only.
		parts := strings.SplitN(l, ":", 2)
		if len(parts) != 2 {
			return rec, errors.NewValidationError("malformed message line").
				WithField("body").WithValue(l)
		}
		fields = append(fields, strings.TrimSpace(parts[1]))
	}
	if len(fields) < 6 {
		return rec, errors.NewValidationError(
			fmt.Sprintf("message has %d fields, want at least 6", len(fields))).
			WithField("body")
	}

	rec.Description = fields[0]
	rec.Kind = task.Kind(fields[1])
	if rec.Kind != task.KindSimple && rec.Kind != task.KindDeadline {
		return rec, errors.NewValidationError("unknown task type").
			WithField(fieldType).WithValue(fields[1])
	}
	rec.OwnerName = fields[2]

	prio, err := strconv.Atoi(fields[3])
	if err != nil {
		return rec, errors.NewValidationError("malformed priority").
			WithField(fieldPriority).WithValue(fields[3]).WithCause(err)
	}
	rec.Priority = prio

	switch fields[4] {
	case statePending:
		rec.Pending = true
	case stateDone:
		rec.Pending = false
	default:
		return rec, errors.NewValidationError("unknown state keyword").
			WithField(fieldState).WithValue(fields[4])
	}

	deps, err := task.ParseDeps(fields[5])
	if err != nil {
		return rec, err
	}
	rec.Deps = deps

	if rec.Kind == task.KindDeadline {
		if len(fields) < 7 {
			return rec, errors.NewValidationError("deadline task without a due line").
				WithField(fieldDue)
		}
		due, err := time.ParseInLocation(task.DueLayout, fields[6], time.Local)
		if err != nil {
			return rec, errors.NewValidationError("malformed due date").
				WithField(fieldDue).WithValue(fields[6]).WithCause(err)
		}
		rec.DueAt = due
	}

	return rec, nil
}
