package owner

// MemberStatus classifies an entry in a group's member roster.
type MemberStatus string

const (
	// MemberConfirmed is a real member of the group.
	MemberConfirmed MemberStatus = "confirmed"

	// MemberRequested is an outside user's unresolved admission request.
	MemberRequested MemberStatus = "requested"

	// MemberInvited is an unresolved invitation extended to an outside user.
	MemberInvited MemberStatus = "invited"
)

// String returns the string representation of the member status.
func (s MemberStatus) String() string {
	return string(s)
}

// Member is one entry in a group's roster. A confirmed entry references the
// real user. A pending entry (requested or invited) carries only a copy of
// the user's name and email: it implies no membership and matches no user
// in membership queries.
type Member struct {
	Status MemberStatus
	User   *User  // set when Status == MemberConfirmed
	Name   string // pending entries only
	Email  string // pending entries only
}

// DisplayName returns the plain user name behind the entry.
func (m Member) DisplayName() string {
	if m.Status == MemberConfirmed {
		return m.User.Name()
	}
	return m.Name
}

// TaggedName returns the name under the serialized convention used by
// external text formats: pending entries carry a reserved suffix.
func (m Member) TaggedName() string {
	switch m.Status {
	case MemberRequested:
		return m.Name + TagRequest
	case MemberInvited:
		return m.Name + TagInvite
	default:
		return m.User.Name()
	}
}

// Group is a named collection of users that can own tasks collectively.
// Its roster holds confirmed members plus pending requests and invitations.
type Group struct {
	name    string
	members []Member
}

// NewGroup creates an empty group with the given name.
func NewGroup(name string) *Group {
	return &Group{name: name}
}

// Name returns the group's display name.
func (g *Group) Name() string { return g.name }

// Kind returns KindGroup.
func (g *Group) Kind() Kind { return KindGroup }

// Members returns a copy of the group's roster in insertion order,
// pending entries included.
func (g *Group) Members() []Member {
	out := make([]Member, len(g.members))
	copy(out, g.members)
	return out
}

// ConfirmedMembers returns the group's real members in insertion order.
func (g *Group) ConfirmedMembers() []*User {
	var out []*User
	for _, m := range g.members {
		if m.Status == MemberConfirmed {
			out = append(out, m.User)
		}
	}
	return out
}

// HasMember reports whether the user is a confirmed member of the group.
// Pending entries never match: they are copies, not members.
func (g *Group) HasMember(u *User) bool {
	for _, m := range g.members {
		if m.Status == MemberConfirmed && Equal(m.User, u) {
			return true
		}
	}
	return false
}

// PendingFor returns the pending entry (request or invite) recorded for the
// named user, if any. A user has at most one pending entry per group.
func (g *Group) PendingFor(name string) (Member, bool) {
	for _, m := range g.members {
		if m.Status != MemberConfirmed && m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// Requests returns the group's unresolved admission requests in order.
func (g *Group) Requests() []Member {
	return g.pendingByStatus(MemberRequested)
}

// Invites returns the group's unresolved invitations in order.
func (g *Group) Invites() []Member {
	return g.pendingByStatus(MemberInvited)
}

func (g *Group) pendingByStatus(status MemberStatus) []Member {
	var out []Member
	for _, m := range g.members {
		if m.Status == status {
			out = append(out, m)
		}
	}
	return out
}

// addConfirmed appends a confirmed member entry.
func (g *Group) addConfirmed(u *User) {
	g.members = append(g.members, Member{Status: MemberConfirmed, User: u})
}

// addPending appends a pending entry copying the user's name and email.
func (g *Group) addPending(status MemberStatus, u *User) {
	g.members = append(g.members, Member{Status: status, Name: u.Name(), Email: u.Email()})
}

// removeConfirmed drops a confirmed member entry.
func (g *Group) removeConfirmed(u *User) {
	for i, m := range g.members {
		if m.Status == MemberConfirmed && Equal(m.User, u) {
			g.members = append(g.members[:i], g.members[i+1:]...)
			return
		}
	}
}

// removePending drops the named user's pending entry, if present.
func (g *Group) removePending(name string) {
	for i, m := range g.members {
		if m.Status != MemberConfirmed && m.Name == name {
			g.members = append(g.members[:i], g.members[i+1:]...)
			return
		}
	}
}

// RestoreMember appends a roster entry as-is. It exists for loaders that
// materialize a previously persisted group and performs no workflow checks.
// Confirmed entries are linked on the user side as well, so a user's group
// list never needs separate persistence.
func (g *Group) RestoreMember(m Member) {
	g.members = append(g.members, m)
	if m.Status == MemberConfirmed {
		m.User.addGroup(g)
	}
}

// Equal reports structural equality with another group: same name and the
// same roster entries, statuses included, in the same order.
func (g *Group) Equal(other *Group) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.name != other.name || len(g.members) != len(other.members) {
		return false
	}
	for i, m := range g.members {
		o := other.members[i]
		if m.Status != o.Status {
			return false
		}
		if m.Status == MemberConfirmed {
			if m.User.Name() != o.User.Name() || m.User.Email() != o.User.Email() {
				return false
			}
			continue
		}
		if m.Name != o.Name || m.Email != o.Email {
			return false
		}
	}
	return true
}
