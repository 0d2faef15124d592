package owner

import "strings"

// Kind identifies the concrete variant of an Owner.
type Kind string

const (
	// KindUser is an individual user.
	KindUser Kind = "user"

	// KindGroup is a group of users.
	KindGroup Kind = "group"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Name-suffix tags used by external text formats to mark pending entries
// inside a group's member list. They are reserved: no user name may end in
// either tag.
const (
	// TagRequest marks a pending admission request in serialized form.
	TagRequest = "<T>"

	// TagInvite marks a pending invitation in serialized form.
	TagInvite = "<I>"
)

// Owner is a polymorphic holder of a task: a User or a Group.
type Owner interface {
	// Name returns the owner's unique display name.
	Name() string

	// Kind returns the concrete variant of the owner.
	Kind() Kind
}

// Equal reports whether two owners are the same entity: same concrete
// variant and same name. A user and a group sharing a name are not equal.
func Equal(a, b Owner) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind() == b.Kind() && a.Name() == b.Name()
}

// ValidName reports whether a display name is usable for a new user or
// group. Names ending in a reserved pending tag would be indistinguishable
// from serialized pending entries, so they are rejected. Collaborators that
// create users are expected to call this before handing names to the engine.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.HasSuffix(name, TagRequest) && !strings.HasSuffix(name, TagInvite)
}
