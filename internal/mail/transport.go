package mail

import (
	"github.com/google/uuid"

	"taredo/internal/errors"
)

// Message is one email, reduced to what the collaborator needs.
type Message struct {
	ID      string
	From    string
	To      string
	Subject string
	Body    string
	Unread  bool
}

// NewMessage creates an outbound message with a fresh ID.
func NewMessage(from, to, subject, body string) Message {
	return Message{
		ID:      uuid.NewString(),
		From:    from,
		To:      to,
		Subject: subject,
		Body:    body,
		Unread:  true,
	}
}

// Transport moves messages in and out. Implementations own the protocol
// details; the importer only needs the unread set and the read flags.
type Transport interface {
	// Send delivers one message.
	Send(m Message) error
	// Unread returns the unread messages in arrival order.
	Unread() ([]Message, error)
	// MarkRead flags a message as read, so later fetches skip it.
	MarkRead(id string) error
	// MarkUnread restores the unread flag, leaving the message for
	// another actor to pick up.
	MarkUnread(id string) error
}

// MemoryTransport is an in-process Transport backed by a slice. It stands
// in for a real mail server in tests and in single-process setups.
type MemoryTransport struct {
	messages []Message
}

// NewMemoryTransport creates an empty in-memory transport.
func NewMemoryTransport() *MemoryTransport {
	return &MemoryTransport{}
}

// Send appends the message to the mailbox.
func (t *MemoryTransport) Send(m Message) error {
	t.messages = append(t.messages, m)
	return nil
}

// Unread returns copies of the unread messages in arrival order.
func (t *MemoryTransport) Unread() ([]Message, error) {
	var out []Message
	for _, m := range t.messages {
		if m.Unread {
			out = append(out, m)
		}
	}
	return out, nil
}

// MarkRead flags the message with the given ID as read.
func (t *MemoryTransport) MarkRead(id string) error {
	return t.setUnread(id, false)
}

// MarkUnread flags the message with the given ID as unread.
func (t *MemoryTransport) MarkUnread(id string) error {
	return t.setUnread(id, true)
}

func (t *MemoryTransport) setUnread(id string, unread bool) error {
	for i := range t.messages {
		if t.messages[i].ID == id {
			t.messages[i].Unread = unread
			return nil
		}
	}
	return errors.NewNotFoundError("message", id)
}
