package mail

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"taredo/internal/errors"
)

// fileRecord is the on-disk shape of one message. Arrived orders the
// inbox; the file name is just the message ID.
type fileRecord struct {
	ID      string    `yaml:"id"`
	From    string    `yaml:"from"`
	To      string    `yaml:"to"`
	Subject string    `yaml:"subject"`
	Body    string    `yaml:"body"`
	Unread  bool      `yaml:"unread"`
	Arrived time.Time `yaml:"arrived"`
}

// FileTransport is a Transport backed by a directory of YAML files, one
// message per file. It lets separate taredo invocations exchange messages
// without a mail server: a sender drops files in, an importer drains them.
type FileTransport struct {
	dir string
}

// NewFileTransport creates a transport over the given directory. The
// directory is created on the first Send.
func NewFileTransport(dir string) *FileTransport {
	return &FileTransport{dir: dir}
}

// Dir returns the inbox directory.
func (t *FileTransport) Dir() string { return t.dir }

func (t *FileTransport) path(id string) string {
	return filepath.Join(t.dir, id+".yaml")
}

// Send writes the message as a file in the inbox directory.
func (t *FileTransport) Send(m Message) error {
	if err := os.MkdirAll(t.dir, 0755); err != nil {
		return fmt.Errorf("create mail directory: %w", err)
	}
	rec := fileRecord{
		ID:      m.ID,
		From:    m.From,
		To:      m.To,
		Subject: m.Subject,
		Body:    m.Body,
		Unread:  m.Unread,
		Arrived: time.Now(),
	}
	return t.write(rec)
}

// Unread returns the unread messages in arrival order.
func (t *FileTransport) Unread() ([]Message, error) {
	entries, err := os.ReadDir(t.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read mail directory: %w", err)
	}

	var recs []fileRecord
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		rec, err := t.read(filepath.Join(t.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if rec.Unread {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].Arrived.Equal(recs[j].Arrived) {
			return recs[i].Arrived.Before(recs[j].Arrived)
		}
		return recs[i].ID < recs[j].ID
	})

	out := make([]Message, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Message{
			ID:      rec.ID,
			From:    rec.From,
			To:      rec.To,
			Subject: rec.Subject,
			Body:    rec.Body,
			Unread:  rec.Unread,
		})
	}
	return out, nil
}

// MarkRead flags the message with the given ID as read.
func (t *FileTransport) MarkRead(id string) error {
	return t.setUnread(id, false)
}

// MarkUnread restores the unread flag.
func (t *FileTransport) MarkUnread(id string) error {
	return t.setUnread(id, true)
}

func (t *FileTransport) setUnread(id string, unread bool) error {
	rec, err := t.read(t.path(id))
	if os.IsNotExist(err) {
		return errors.NewNotFoundError("message", id)
	}
	if err != nil {
		return err
	}
	rec.Unread = unread
	return t.write(rec)
}

func (t *FileTransport) read(path string) (fileRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileRecord{}, err
	}
	var rec fileRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return fileRecord{}, fmt.Errorf("unmarshal message %s: %w", filepath.Base(path), err)
	}
	return rec, nil
}

func (t *FileTransport) write(rec fileRecord) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal message %s: %w", rec.ID, err)
	}
	if err := os.WriteFile(t.path(rec.ID), data, 0644); err != nil {
		return fmt.Errorf("write message %s: %w", rec.ID, err)
	}
	return nil
}
