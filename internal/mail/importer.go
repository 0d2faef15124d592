package mail

import (
	"taredo/internal/logging"
	"taredo/internal/owner"
	"taredo/internal/session"
	"taredo/internal/task"
)

// Importer drains the transport's unread messages into the session. Only
// messages carrying the configured subject marker are considered;
// everything else is left untouched.
type Importer struct {
	session   *session.Session
	transport Transport
	marker    string
	log       *logging.Logger
}

// NewImporter wires an importer to a session and a transport.
func NewImporter(s *session.Session, t Transport, marker string, log *logging.Logger) *Importer {
	return &Importer{
		session:   s,
		transport: t,
		marker:    marker,
		log:       log.WithOp("mail-import"),
	}
}

// Import reads the unread marked messages and creates one task per
// message. A message whose owner does not include the acting user is put
// back unread, so its owner can import it from their own session. A
// message that fails to parse or to create stays unread too. Returns the
// number of tasks created.
func (i *Importer) Import() (int, error) {
	msgs, err := i.transport.Unread()
	if err != nil {
		return 0, err
	}

	created := 0
	for _, m := range msgs {
		if m.Subject != i.marker {
			continue
		}
		if err := i.transport.MarkRead(m.ID); err != nil {
			return created, err
		}

		rec, err := Parse(m.Body)
		if err != nil {
			i.log.Warn("skipping malformed message", "message_id", m.ID, "error", err)
			if err := i.transport.MarkUnread(m.ID); err != nil {
				return created, err
			}
			continue
		}

		own, err := i.session.Roster().ResolveOwner(rec.OwnerName)
		if err != nil {
			i.log.Warn("skipping message with unknown owner", "message_id", m.ID, "owner", rec.OwnerName)
			if err := i.transport.MarkUnread(m.ID); err != nil {
				return created, err
			}
			continue
		}

		// Not addressed to this actor: leave it for its owner.
		if !i.ownedByActor(own) {
			i.log.Debug("message not for this actor, leaving unread", "message_id", m.ID, "owner", rec.OwnerName)
			if err := i.transport.MarkUnread(m.ID); err != nil {
				return created, err
			}
			continue
		}

		if rec.Kind == task.KindDeadline {
			_, err = i.session.CreateDeadline(own, rec.Description, rec.Priority, rec.Pending, rec.Deps, rec.DueAt)
		} else {
			_, err = i.session.CreateSimple(own, rec.Description, rec.Priority, rec.Pending, rec.Deps)
		}
		if err != nil {
			i.log.Warn("failed to create imported task", "message_id", m.ID, "error", err)
			if err := i.transport.MarkUnread(m.ID); err != nil {
				return created, err
			}
			continue
		}
		created++
	}

	return created, nil
}

// ownedByActor reports whether the resolved owner puts the task in the
// acting user's scope: either the actor themselves or a group the actor
// is a confirmed member of.
func (i *Importer) ownedByActor(own owner.Owner) bool {
	actor := i.session.Actor()
	if owner.Equal(own, actor) {
		return true
	}
	if g, ok := own.(*owner.Group); ok {
		return g.HasMember(actor)
	}
	return false
}
