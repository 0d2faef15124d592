package store

import (
	"fmt"
	"strings"
	"time"

	"taredo/internal/owner"
	"taredo/internal/pool"
	"taredo/internal/task"
)

// snapshot is the YAML shape of the whole persisted state.
type snapshot struct {
	Users  []userRecord  `yaml:"users"`
	Groups []groupRecord `yaml:"groups"`
	Tasks  []taskRecord  `yaml:"tasks"`
}

type userRecord struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// groupRecord lists members under the tagged-name convention: a plain
// name is a confirmed member, a "<T>" suffix marks a pending admission
// request, "<I>" a pending invitation.
type groupRecord struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}

type taskRecord struct {
	ID           int    `yaml:"id"`
	Kind         string `yaml:"kind"`
	Description  string `yaml:"description"`
	Owner        string `yaml:"owner"`
	Priority     int    `yaml:"priority"`
	Pending      bool   `yaml:"pending"`
	Dependencies string `yaml:"dependencies"`
	Due          string `yaml:"due,omitempty"`
}

// encode renders the roster and pool into the snapshot shape.
func encode(roster *owner.Roster, p *pool.Pool) snapshot {
	var snap snapshot

	for _, u := range roster.Users() {
		snap.Users = append(snap.Users, userRecord{Name: u.Name(), Email: u.Email()})
	}
	for _, g := range roster.Groups() {
		rec := groupRecord{Name: g.Name()}
		for _, m := range g.Members() {
			rec.Members = append(rec.Members, m.TaggedName())
		}
		snap.Groups = append(snap.Groups, rec)
	}
	for _, t := range p.Tasks() {
		rec := taskRecord{
			ID:           t.ID(),
			Kind:         t.Kind().String(),
			Description:  t.Description(),
			Owner:        t.Owner().Name(),
			Priority:     t.Priority(),
			Pending:      t.Pending(),
			Dependencies: task.FormatDeps(t.Dependencies()),
		}
		if t.Kind() == task.KindDeadline {
			rec.Due = t.DueAt().Format(task.DueLayout)
		}
		snap.Tasks = append(snap.Tasks, rec)
	}
	return snap
}

// decode materializes a roster and a pool from the snapshot shape. Users
// are built first, then groups resolve their member names against them,
// then tasks resolve their owner names against both.
func decode(snap snapshot) (*owner.Roster, *pool.Pool, error) {
	users := make([]*owner.User, 0, len(snap.Users))
	byName := make(map[string]*owner.User, len(snap.Users))
	for _, rec := range snap.Users {
		u := owner.NewUser(rec.Name, rec.Email)
		users = append(users, u)
		byName[rec.Name] = u
	}

	groups := make([]*owner.Group, 0, len(snap.Groups))
	for _, rec := range snap.Groups {
		g := owner.NewGroup(rec.Name)
		for _, tagged := range rec.Members {
			m, err := decodeMember(tagged, byName)
			if err != nil {
				return nil, nil, fmt.Errorf("group %q: %w", rec.Name, err)
			}
			g.RestoreMember(m)
		}
		groups = append(groups, g)
	}

	roster := owner.NewRoster(users, groups)

	tasks := make([]*task.Task, 0, len(snap.Tasks))
	for _, rec := range snap.Tasks {
		own, err := roster.ResolveOwner(rec.Owner)
		if err != nil {
			return nil, nil, fmt.Errorf("task %d: %w", rec.ID, err)
		}
		deps, err := task.ParseDeps(rec.Dependencies)
		if err != nil {
			return nil, nil, fmt.Errorf("task %d: %w", rec.ID, err)
		}
		kind := task.Kind(rec.Kind)
		var due time.Time
		if kind == task.KindDeadline {
			due, err = time.ParseInLocation(task.DueLayout, rec.Due, time.Local)
			if err != nil {
				return nil, nil, fmt.Errorf("task %d: bad due date %q: %w", rec.ID, rec.Due, err)
			}
		}
		tasks = append(tasks, task.Restore(rec.ID, kind, rec.Description, own, rec.Priority, rec.Pending, deps, due))
	}

	return roster, pool.New(tasks), nil
}

// decodeMember parses one tagged member name. Confirmed entries must
// resolve to a known user; pending entries keep the user's current email
// when the user is known.
func decodeMember(tagged string, byName map[string]*owner.User) (owner.Member, error) {
	status := owner.MemberConfirmed
	name := tagged
	switch {
	case strings.HasSuffix(tagged, owner.TagRequest):
		status = owner.MemberRequested
		name = strings.TrimSuffix(tagged, owner.TagRequest)
	case strings.HasSuffix(tagged, owner.TagInvite):
		status = owner.MemberInvited
		name = strings.TrimSuffix(tagged, owner.TagInvite)
	}

	u, ok := byName[name]
	if status == owner.MemberConfirmed {
		if !ok {
			return owner.Member{}, fmt.Errorf("member %q is not a known user", name)
		}
		return owner.Member{Status: owner.MemberConfirmed, User: u}, nil
	}

	m := owner.Member{Status: status, Name: name}
	if ok {
		m.Email = u.Email()
	}
	return m, nil
}
