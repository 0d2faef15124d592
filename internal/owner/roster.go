package owner

import (
	"taredo/internal/errors"
)

// Roster is the directory of all users and groups known to a session, and
// the home of the membership workflow transitions. It owns no tasks; task
// consequences of membership changes (such as deleting a dissolved group's
// tasks) are handled by the caller before the roster is mutated.
type Roster struct {
	users  []*User
	groups []*Group
}

// NewRoster creates a roster over the given users and groups.
// Both slices are retained.
func NewRoster(users []*User, groups []*Group) *Roster {
	return &Roster{users: users, groups: groups}
}

// Users returns a copy of the user list in insertion order.
func (r *Roster) Users() []*User {
	out := make([]*User, len(r.users))
	copy(out, r.users)
	return out
}

// Groups returns a copy of the group list in insertion order.
func (r *Roster) Groups() []*Group {
	out := make([]*Group, len(r.groups))
	copy(out, r.groups)
	return out
}

// AddUser appends a user to the directory.
func (r *Roster) AddUser(u *User) {
	r.users = append(r.users, u)
}

// LookupUser returns the user with the given name.
func (r *Roster) LookupUser(name string) (*User, error) {
	for _, u := range r.users {
		if u.Name() == name {
			return u, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrUserNotFound, "%q", name)
}

// LookupGroup returns the group with the given name.
func (r *Roster) LookupGroup(name string) (*Group, error) {
	for _, g := range r.groups {
		if g.Name() == name {
			return g, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrGroupNotFound, "%q", name)
}

// ResolveOwner resolves a serialized owner name to a Group or, failing
// that, a User. Groups win a name collision, matching how external formats
// have always been read back.
func (r *Roster) ResolveOwner(name string) (Owner, error) {
	if g, err := r.LookupGroup(name); err == nil {
		return g, nil
	}
	if u, err := r.LookupUser(name); err == nil {
		return u, nil
	}
	return nil, errors.Wrapf(errors.ErrUserNotFound, "owner %q", name)
}

// CreateGroup creates a group whose sole confirmed member is the creator.
// Fails if a group of that name already exists.
func (r *Roster) CreateGroup(name string, creator *User) (*Group, error) {
	for _, g := range r.groups {
		if g.Name() == name {
			return nil, errors.NewAlreadyExistsError("group", name).WithCause(errors.ErrGroupExists)
		}
	}
	g := NewGroup(name)
	g.addConfirmed(creator)
	creator.addGroup(g)
	r.groups = append(r.groups, g)
	return g, nil
}

// RemoveGroup drops a group from the directory. The caller has already
// detached members and disposed of the group's tasks.
func (r *Roster) RemoveGroup(g *Group) {
	for i, existing := range r.groups {
		if Equal(existing, g) {
			r.groups = append(r.groups[:i], r.groups[i+1:]...)
			return
		}
	}
}

// -----------------------------------------------------------------------------
// Membership workflow transitions
// -----------------------------------------------------------------------------

// Request files an admission request: the user asks to join a group they do
// not belong to. The group's roster gains a pending entry; the user's own
// group list is untouched until a member accepts.
func (r *Roster) Request(u *User, g *Group) error {
	if g.HasMember(u) {
		return errors.NewGroupError("cannot request admission", errors.ErrAlreadyMember).
			WithGroup(g.Name()).WithUser(u.Name())
	}
	if _, ok := g.PendingFor(u.Name()); ok {
		return errors.NewGroupError("cannot request admission", errors.ErrPendingEntry).
			WithGroup(g.Name()).WithUser(u.Name())
	}
	g.addPending(MemberRequested, u)
	return nil
}

// Invite extends an invitation: an existing member offers membership to an
// outside user. The invitee confirms or declines later.
func (r *Roster) Invite(actor, invitee *User, g *Group) error {
	if !g.HasMember(actor) {
		return errors.NewGroupError("cannot invite", errors.ErrNotMember).
			WithGroup(g.Name()).WithUser(actor.Name())
	}
	if g.HasMember(invitee) {
		return errors.NewGroupError("cannot invite", errors.ErrAlreadyMember).
			WithGroup(g.Name()).WithUser(invitee.Name())
	}
	if _, ok := g.PendingFor(invitee.Name()); ok {
		return errors.NewGroupError("cannot invite", errors.ErrPendingEntry).
			WithGroup(g.Name()).WithUser(invitee.Name())
	}
	g.addPending(MemberInvited, invitee)
	return nil
}

// ResolveRequest settles an admission request. The reviewing actor must be
// a confirmed member. Accepting converts the requester into a confirmed
// member on both sides; declining only removes the pending entry, so the
// requester may request again anytime.
func (r *Roster) ResolveRequest(actor *User, g *Group, requester string, accept bool) error {
	if !g.HasMember(actor) {
		return errors.NewGroupError("cannot review requests", errors.ErrNotMember).
			WithGroup(g.Name()).WithUser(actor.Name())
	}
	entry, ok := g.PendingFor(requester)
	if !ok || entry.Status != MemberRequested {
		return errors.NewGroupError("no such admission request", errors.ErrUserNotFound).
			WithGroup(g.Name()).WithUser(requester)
	}
	if accept {
		u, err := r.LookupUser(requester)
		if err != nil {
			return err
		}
		g.addConfirmed(u)
		u.addGroup(g)
	}
	g.removePending(requester)
	return nil
}

// ResolveInvite settles an invitation addressed to the given user.
// Accepting confirms membership on both sides; declining removes only the
// pending entry.
func (r *Roster) ResolveInvite(invitee *User, g *Group, accept bool) error {
	entry, ok := g.PendingFor(invitee.Name())
	if !ok || entry.Status != MemberInvited {
		return errors.NewGroupError("no such invitation", errors.ErrUserNotFound).
			WithGroup(g.Name()).WithUser(invitee.Name())
	}
	if accept {
		g.addConfirmed(invitee)
		invitee.addGroup(g)
	}
	g.removePending(invitee.Name())
	return nil
}

// InvitesFor returns the groups holding an unresolved invitation addressed
// to the user, in directory order.
func (r *Roster) InvitesFor(u *User) []*Group {
	var out []*Group
	for _, g := range r.groups {
		if u.MemberOf(g) {
			continue
		}
		if entry, ok := g.PendingFor(u.Name()); ok && entry.Status == MemberInvited {
			out = append(out, g)
		}
	}
	return out
}

// RequestsVisibleTo returns, per group the user belongs to, the unresolved
// admission requests awaiting review.
func (r *Roster) RequestsVisibleTo(u *User) map[string][]Member {
	out := make(map[string][]Member)
	for _, g := range u.Groups() {
		if reqs := g.Requests(); len(reqs) > 0 {
			out[g.Name()] = reqs
		}
	}
	return out
}

// Detach removes a confirmed member from a group on both sides. It does not
// dissolve empty groups; LeaveGroup orchestration in the session decides
// that, because dissolution has task-side consequences.
func (r *Roster) Detach(u *User, g *Group) error {
	if !g.HasMember(u) {
		return errors.NewGroupError("cannot leave", errors.ErrNotMember).
			WithGroup(g.Name()).WithUser(u.Name())
	}
	g.removeConfirmed(u)
	u.removeGroup(g)
	return nil
}

// Equal reports structural equality of two rosters: same users and groups,
// in the same order, compared structurally.
func (r *Roster) Equal(other *Roster) bool {
	if r == nil || other == nil {
		return r == other
	}
	if len(r.users) != len(other.users) || len(r.groups) != len(other.groups) {
		return false
	}
	for i := range r.users {
		if !r.users[i].Equal(other.users[i]) {
			return false
		}
	}
	for i := range r.groups {
		if !r.groups[i].Equal(other.groups[i]) {
			return false
		}
	}
	return true
}
