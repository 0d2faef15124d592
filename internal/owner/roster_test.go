package owner

import (
	"testing"

	"taredo/internal/errors"
)

func testRoster(t *testing.T) (*Roster, *User, *User) {
	t.Helper()
	alice := NewUser("alice", "alice@example.com")
	bob := NewUser("bob", "bob@example.com")
	return NewRoster([]*User{alice, bob}, nil), alice, bob
}

func TestRoster_CreateGroup(t *testing.T) {
	r, alice, _ := testRoster(t)

	g, err := r.CreateGroup("backend", alice)
	if err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}
	if !g.HasMember(alice) {
		t.Error("creator should be the sole confirmed member")
	}
	if !alice.MemberOf(g) {
		t.Error("creator's group list should include the new group")
	}

	if _, err := r.CreateGroup("backend", alice); !errors.Is(err, errors.ErrGroupExists) {
		t.Errorf("duplicate CreateGroup() error = %v, want ErrGroupExists", err)
	}
}

func TestRoster_ResolveOwner_GroupWinsCollision(t *testing.T) {
	alice := NewUser("alice", "alice@example.com")
	r := NewRoster([]*User{alice}, []*Group{NewGroup("alice")})

	got, err := r.ResolveOwner("alice")
	if err != nil {
		t.Fatalf("ResolveOwner() error = %v", err)
	}
	if got.Kind() != KindGroup {
		t.Errorf("ResolveOwner() kind = %s, want group", got.Kind())
	}

	if _, err := r.ResolveOwner("nobody"); !errors.Is(err, errors.ErrUserNotFound) {
		t.Errorf("ResolveOwner(unknown) error = %v, want ErrUserNotFound", err)
	}
}

func TestRoster_RequestWorkflow(t *testing.T) {
	r, alice, bob := testRoster(t)
	g, _ := r.CreateGroup("backend", alice)

	if err := r.Request(bob, g); err != nil {
		t.Fatalf("Request() error = %v", err)
	}

	// A second request while one is pending is rejected.
	if err := r.Request(bob, g); !errors.Is(err, errors.ErrPendingEntry) {
		t.Errorf("second Request() error = %v, want ErrPendingEntry", err)
	}

	// Members cannot request admission.
	if err := r.Request(alice, g); !errors.Is(err, errors.ErrAlreadyMember) {
		t.Errorf("member Request() error = %v, want ErrAlreadyMember", err)
	}

	// Declining removes the entry without granting membership.
	if err := r.ResolveRequest(alice, g, "bob", false); err != nil {
		t.Fatalf("ResolveRequest(decline) error = %v", err)
	}
	if g.HasMember(bob) {
		t.Error("declined requester must not be a member")
	}

	// The requester may request again anytime.
	if err := r.Request(bob, g); err != nil {
		t.Fatalf("re-Request() error = %v", err)
	}
	if err := r.ResolveRequest(alice, g, "bob", true); err != nil {
		t.Fatalf("ResolveRequest(accept) error = %v", err)
	}
	if !g.HasMember(bob) {
		t.Error("accepted requester should be a confirmed member")
	}
	if !bob.MemberOf(g) {
		t.Error("accepted requester's group list should include the group")
	}
	if _, pending := g.PendingFor("bob"); pending {
		t.Error("pending entry should be removed after acceptance")
	}
}

func TestRoster_ResolveRequest_RequiresMembership(t *testing.T) {
	r, alice, bob := testRoster(t)
	carol := NewUser("carol", "carol@example.com")
	r.AddUser(carol)

	g, _ := r.CreateGroup("backend", alice)
	if err := r.Request(bob, g); err != nil {
		t.Fatalf("Request() error = %v", err)
	}

	if err := r.ResolveRequest(carol, g, "bob", true); !errors.Is(err, errors.ErrNotMember) {
		t.Errorf("outsider ResolveRequest() error = %v, want ErrNotMember", err)
	}
}

func TestRoster_InviteWorkflow(t *testing.T) {
	r, alice, bob := testRoster(t)
	g, _ := r.CreateGroup("backend", alice)

	// Only members can invite.
	if err := r.Invite(bob, alice, g); !errors.Is(err, errors.ErrNotMember) {
		t.Errorf("outsider Invite() error = %v, want ErrNotMember", err)
	}

	if err := r.Invite(alice, bob, g); err != nil {
		t.Fatalf("Invite() error = %v", err)
	}
	if err := r.Invite(alice, bob, g); !errors.Is(err, errors.ErrPendingEntry) {
		t.Errorf("second Invite() error = %v, want ErrPendingEntry", err)
	}

	invites := r.InvitesFor(bob)
	if len(invites) != 1 || invites[0].Name() != "backend" {
		t.Fatalf("InvitesFor(bob) = %v, want [backend]", invites)
	}

	// Declining leaves the invitee's memberships untouched.
	if err := r.ResolveInvite(bob, g, false); err != nil {
		t.Fatalf("ResolveInvite(decline) error = %v", err)
	}
	if g.HasMember(bob) || bob.MemberOf(g) {
		t.Error("declined invite must not grant membership")
	}

	if err := r.Invite(alice, bob, g); err != nil {
		t.Fatalf("re-Invite() error = %v", err)
	}
	if err := r.ResolveInvite(bob, g, true); err != nil {
		t.Fatalf("ResolveInvite(accept) error = %v", err)
	}
	if !g.HasMember(bob) || !bob.MemberOf(g) {
		t.Error("accepted invite should confirm membership on both sides")
	}

	// An invited member shows no further pending invites.
	if got := r.InvitesFor(bob); len(got) != 0 {
		t.Errorf("InvitesFor after acceptance = %v, want none", got)
	}
}

func TestRoster_Detach(t *testing.T) {
	r, alice, bob := testRoster(t)
	g, _ := r.CreateGroup("backend", alice)

	if err := r.Detach(bob, g); !errors.Is(err, errors.ErrNotMember) {
		t.Errorf("Detach(non-member) error = %v, want ErrNotMember", err)
	}

	if err := r.Detach(alice, g); err != nil {
		t.Fatalf("Detach() error = %v", err)
	}
	if g.HasMember(alice) || alice.MemberOf(g) {
		t.Error("Detach should unlink both sides")
	}
}

func TestRoster_Equal(t *testing.T) {
	build := func() *Roster {
		alice := NewUser("alice", "alice@example.com")
		r := NewRoster([]*User{alice}, nil)
		if _, err := r.CreateGroup("backend", alice); err != nil {
			t.Fatalf("CreateGroup() error = %v", err)
		}
		return r
	}

	if !build().Equal(build()) {
		t.Error("structurally identical rosters should be equal")
	}

	a := build()
	b := build()
	bob := NewUser("bob", "bob@example.com")
	b.AddUser(bob)
	if a.Equal(b) {
		t.Error("rosters with different user lists should not be equal")
	}
}
