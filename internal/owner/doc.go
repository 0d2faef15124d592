// Package owner models who can hold a task: an individual user or a group
// of users. The two variants form a closed set; equality is defined by
// concrete kind plus display name.
//
// A group's roster doubles as a mailbox for unresolved membership state.
// Besides confirmed members it can carry pending entries: admission requests
// filed by outside users and invitations extended to them. Pending entries
// hold a copy of the user's name and email and never count as membership.
//
// The Roster type is the directory of all users and groups in a session and
// hosts the membership workflow transitions (request, invite, accept,
// decline). Task-side consequences of membership changes, such as deleting
// a dissolved group's tasks, are the caller's concern.
package owner
