package owner

// User is an individual owner: a name, a contact email, and the ordered
// list of groups the user belongs to.
type User struct {
	name   string
	email  string
	groups []*Group
}

// NewUser creates a user with the given name and email address.
// Name validity (see ValidName) is the creating collaborator's concern.
func NewUser(name, email string) *User {
	return &User{name: name, email: email}
}

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Kind returns KindUser.
func (u *User) Kind() Kind { return KindUser }

// Email returns the user's contact email address.
func (u *User) Email() string { return u.email }

// SetEmail updates the user's contact email address.
func (u *User) SetEmail(email string) { u.email = email }

// Groups returns a copy of the list of groups the user belongs to, in
// join order.
func (u *User) Groups() []*Group {
	out := make([]*Group, len(u.groups))
	copy(out, u.groups)
	return out
}

// MemberOf reports whether the user belongs to the given group.
func (u *User) MemberOf(g *Group) bool {
	for _, joined := range u.groups {
		if Equal(joined, g) {
			return true
		}
	}
	return false
}

// addGroup appends a group to the user's membership list.
// Called by the membership workflow when a join is confirmed.
func (u *User) addGroup(g *Group) {
	u.groups = append(u.groups, g)
}

// removeGroup drops a group from the user's membership list.
func (u *User) removeGroup(g *Group) {
	for i, joined := range u.groups {
		if Equal(joined, g) {
			u.groups = append(u.groups[:i], u.groups[i+1:]...)
			return
		}
	}
}

// Equal reports structural equality with another user: same name, same
// email, and the same group memberships in the same order.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	if u.name != other.name || u.email != other.email {
		return false
	}
	if len(u.groups) != len(other.groups) {
		return false
	}
	for i := range u.groups {
		if u.groups[i].Name() != other.groups[i].Name() {
			return false
		}
	}
	return true
}
