package session

import (
	"testing"

	"taredo/internal/errors"
	"taredo/internal/logging"
	"taredo/internal/owner"
	"taredo/internal/pool"
	"taredo/internal/task"
)

func TestCreateGroup(t *testing.T) {
	alice := owner.NewUser("alice", "alice@example.com")
	s := newSession(t, "alice", []*owner.User{alice}, nil, nil)

	g, err := s.CreateGroup("backend")
	if err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}
	if !g.HasMember(alice) {
		t.Error("creator should be the sole confirmed member")
	}
	if !alice.MemberOf(g) {
		t.Error("creator's group list should include the new group")
	}

	if _, err := s.CreateGroup("backend"); !errors.Is(err, errors.ErrGroupExists) {
		t.Errorf("duplicate group name: error = %v, want ErrGroupExists", err)
	}
}

func TestMembershipRequestWorkflow(t *testing.T) {
	alice := owner.NewUser("alice", "alice@example.com")
	bob := owner.NewUser("bob", "bob@example.com")
	backend := owner.NewGroup("backend")
	backend.RestoreMember(owner.Member{Status: owner.MemberConfirmed, User: alice})

	users := []*owner.User{alice, bob}
	groups := []*owner.Group{backend}
	roster := owner.NewRoster(users, groups)
	p := pool.New(nil)
	bobSession := New(bob, roster, p, logging.NopLogger())
	aliceSession := New(alice, roster, p, logging.NopLogger())

	if err := bobSession.RequestMembership("backend"); err != nil {
		t.Fatalf("RequestMembership() error = %v", err)
	}
	// A second request while one is pending is rejected.
	if err := bobSession.RequestMembership("backend"); !errors.Is(err, errors.ErrPendingEntry) {
		t.Errorf("repeated request: error = %v, want ErrPendingEntry", err)
	}

	reqs := aliceSession.PendingRequests()
	if len(reqs["backend"]) != 1 || reqs["backend"][0].DisplayName() != "bob" {
		t.Fatalf("PendingRequests() = %v, want bob's request under backend", reqs)
	}

	// Decline, then bob may ask again.
	if err := aliceSession.ReviewRequest("backend", "bob", false); err != nil {
		t.Fatalf("ReviewRequest(decline) error = %v", err)
	}
	if backend.HasMember(bob) {
		t.Fatal("declined requester must not be a member")
	}
	if err := bobSession.RequestMembership("backend"); err != nil {
		t.Fatalf("re-request after decline: error = %v", err)
	}

	if err := aliceSession.ReviewRequest("backend", "bob", true); err != nil {
		t.Fatalf("ReviewRequest(accept) error = %v", err)
	}
	if !backend.HasMember(bob) || !bob.MemberOf(backend) {
		t.Error("accepted requester should be linked on both sides")
	}
}

func TestInviteWorkflow(t *testing.T) {
	alice := owner.NewUser("alice", "alice@example.com")
	bob := owner.NewUser("bob", "bob@example.com")
	carol := owner.NewUser("carol", "carol@example.com")
	backend := owner.NewGroup("backend")
	backend.RestoreMember(owner.Member{Status: owner.MemberConfirmed, User: alice})

	roster := owner.NewRoster([]*owner.User{alice, bob, carol}, []*owner.Group{backend})
	p := pool.New(nil)
	aliceSession := New(alice, roster, p, logging.NopLogger())
	bobSession := New(bob, roster, p, logging.NopLogger())
	carolSession := New(carol, roster, p, logging.NopLogger())

	// Only members may invite.
	if err := carolSession.InviteUser("backend", "bob"); !errors.Is(err, errors.ErrNotMember) {
		t.Errorf("invite by non-member: error = %v, want ErrNotMember", err)
	}

	if err := aliceSession.InviteUser("backend", "bob"); err != nil {
		t.Fatalf("InviteUser() error = %v", err)
	}

	invites := bobSession.Invites()
	if len(invites) != 1 || invites[0].Name() != "backend" {
		t.Fatalf("Invites() = %v, want backend", invites)
	}
	// The invitation is addressed to bob, not carol.
	if got := carolSession.Invites(); len(got) != 0 {
		t.Errorf("carol's Invites() = %v, want none", got)
	}

	if err := bobSession.ReviewInvite("backend", true); err != nil {
		t.Fatalf("ReviewInvite(accept) error = %v", err)
	}
	if !backend.HasMember(bob) {
		t.Error("accepting an invite should confirm membership")
	}
	if got := bobSession.Invites(); len(got) != 0 {
		t.Errorf("Invites() after accept = %v, want none", got)
	}
}

func TestLeaveGroup_NotLastMember(t *testing.T) {
	alice := owner.NewUser("alice", "alice@example.com")
	bob := owner.NewUser("bob", "bob@example.com")
	backend := owner.NewGroup("backend")
	backend.RestoreMember(owner.Member{Status: owner.MemberConfirmed, User: alice})
	backend.RestoreMember(owner.Member{Status: owner.MemberConfirmed, User: bob})

	roster := owner.NewRoster([]*owner.User{alice, bob}, []*owner.Group{backend})
	p := pool.New([]*task.Task{task.NewSimple(1, "shared", backend, 5, true, nil)})
	s := New(alice, roster, p, logging.NopLogger())

	if err := s.LeaveGroup("backend"); err != nil {
		t.Fatalf("LeaveGroup() error = %v", err)
	}
	if backend.HasMember(alice) || alice.MemberOf(backend) {
		t.Error("leaving should unlink both sides")
	}
	// The group and its tasks survive.
	if _, err := roster.LookupGroup("backend"); err != nil {
		t.Errorf("group should still exist: %v", err)
	}
	if p.Len() != 1 {
		t.Errorf("group tasks should survive, pool has %d", p.Len())
	}
}

// The last confirmed member leaving dissolves the group: its tasks are
// deleted and dependency references to them are stripped from surviving
// tasks, not left dangling.
func TestLeaveGroup_LastMemberDissolves(t *testing.T) {
	alice := owner.NewUser("alice", "alice@example.com")
	backend := owner.NewGroup("backend")
	backend.RestoreMember(owner.Member{Status: owner.MemberConfirmed, User: alice})

	groupTask := task.NewSimple(1, "team job", backend, 5, true, nil)
	personal := task.NewSimple(2, "my job", alice, 5, true, []int{1})
	roster := owner.NewRoster([]*owner.User{alice}, []*owner.Group{backend})
	p := pool.New([]*task.Task{groupTask, personal})
	s := New(alice, roster, p, logging.NopLogger())

	if err := s.LeaveGroup("backend"); err != nil {
		t.Fatalf("LeaveGroup() error = %v", err)
	}

	if _, err := roster.LookupGroup("backend"); !errors.Is(err, errors.ErrGroupNotFound) {
		t.Errorf("dissolved group lookup: error = %v, want ErrGroupNotFound", err)
	}
	if _, err := p.FindByID(1); !errors.Is(err, errors.ErrTaskNotFound) {
		t.Errorf("group task should be deleted, got %v", err)
	}
	if personal.DependsOn(1) {
		t.Error("surviving task must not keep a dependency on a deleted ID")
	}
	if p.Len() != 1 {
		t.Errorf("pool has %d tasks, want only the personal one", p.Len())
	}
}

func TestLeaveGroup_Errors(t *testing.T) {
	alice := owner.NewUser("alice", "alice@example.com")
	bob := owner.NewUser("bob", "bob@example.com")
	backend := owner.NewGroup("backend")
	backend.RestoreMember(owner.Member{Status: owner.MemberConfirmed, User: bob})

	roster := owner.NewRoster([]*owner.User{alice, bob}, []*owner.Group{backend})
	s := New(alice, roster, pool.New(nil), logging.NopLogger())

	if err := s.LeaveGroup("frontend"); !errors.Is(err, errors.ErrGroupNotFound) {
		t.Errorf("leave unknown group: error = %v, want ErrGroupNotFound", err)
	}
	if err := s.LeaveGroup("backend"); !errors.Is(err, errors.ErrNotMember) {
		t.Errorf("leave group not belonged to: error = %v, want ErrNotMember", err)
	}
}
