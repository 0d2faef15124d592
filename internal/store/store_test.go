package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"taredo/internal/logging"
	"taredo/internal/owner"
	"taredo/internal/pool"
	"taredo/internal/task"
)

func testState(t *testing.T) (*owner.Roster, *pool.Pool) {
	t.Helper()
	alice := owner.NewUser("alice", "alice@example.com")
	bob := owner.NewUser("bob", "bob@example.com")
	carol := owner.NewUser("carol", "carol@example.com")

	backend := owner.NewGroup("backend")
	backend.RestoreMember(owner.Member{Status: owner.MemberConfirmed, User: alice})
	backend.RestoreMember(owner.Member{Status: owner.MemberRequested, Name: "bob", Email: "bob@example.com"})
	backend.RestoreMember(owner.Member{Status: owner.MemberInvited, Name: "carol", Email: "carol@example.com"})

	due := time.Date(2026, 12, 17, 10, 30, 0, 0, time.Local)
	tasks := []*task.Task{
		task.NewSimple(1, "write report", alice, 5, true, nil),
		task.Restore(2, task.KindDeadline, "ship release", backend, 8, true, []int{1}, due),
		// A reopened task may carry a past due date; the store must
		// round-trip it untouched.
		task.Restore(3, task.KindDeadline, "stale", alice, 1, true, nil,
			time.Date(2020, 1, 2, 9, 0, 0, 0, time.Local)),
	}

	return owner.NewRoster([]*owner.User{alice, bob, carol}, []*owner.Group{backend}), pool.New(tasks)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "taredo.yaml"), logging.NopLogger())
	roster, p := testState(t)

	if err := s.Save(roster, p); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loadedRoster, loadedPool, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !loadedRoster.Equal(roster) {
		t.Error("loaded roster differs from the saved one")
	}
	if !loadedPool.Equal(p) {
		t.Error("loaded pool differs from the saved one")
	}

	// The pending roster entries survive with their status intact.
	g, err := loadedRoster.LookupGroup("backend")
	if err != nil {
		t.Fatalf("LookupGroup() error = %v", err)
	}
	if len(g.Requests()) != 1 || g.Requests()[0].DisplayName() != "bob" {
		t.Errorf("Requests() = %v, want bob's pending request", g.Requests())
	}
	if len(g.Invites()) != 1 || g.Invites()[0].DisplayName() != "carol" {
		t.Errorf("Invites() = %v, want carol's pending invite", g.Invites())
	}
}

func TestLoad_MissingFileStartsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "absent.yaml"), logging.NopLogger())
	roster, p, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(roster.Users()) != 0 || len(roster.Groups()) != 0 || p.Len() != 0 {
		t.Error("a missing snapshot should yield empty state")
	}
}

func TestLoad_RejectsUnknownConfirmedMember(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taredo.yaml")
	data := []byte("users: []\ngroups:\n  - name: backend\n    members: [ghost]\ntasks: []\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s := New(path, logging.NopLogger())
	if _, _, err := s.Load(); err == nil {
		t.Error("a confirmed member without a user record should fail to load")
	}
}

func TestChanged(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "taredo.yaml"), logging.NopLogger())
	roster, p := testState(t)

	if err := s.Save(roster, p); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	changed, err := s.Changed(roster, p)
	if err != nil {
		t.Fatalf("Changed() error = %v", err)
	}
	if changed {
		t.Error("state just saved should not count as changed")
	}

	tk, err := p.FindByID(1)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	tk.SetPriority(9)

	changed, err = s.Changed(roster, p)
	if err != nil {
		t.Fatalf("Changed() error = %v", err)
	}
	if !changed {
		t.Error("a mutated pool should count as changed")
	}
}

func TestWatch_FiresOnExternalWrite(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "taredo.yaml"), logging.NopLogger())
	roster, p := testState(t)
	if err := s.Save(roster, p); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	fired := make(chan struct{}, 1)
	w, err := s.Watch(func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Stop()

	// Simulate another process rewriting the snapshot.
	if err := s.Save(roster, p); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not report the external write")
	}
}
