package session

import (
	"taredo/internal/owner"
)

// CreateGroup creates a new group with the actor as its sole confirmed
// member. The name must be free.
func (s *Session) CreateGroup(name string) (*owner.Group, error) {
	g, err := s.roster.CreateGroup(name, s.actor)
	if err != nil {
		return nil, err
	}
	s.log.WithOp("group-create").Info("group created", "group", name)
	return g, nil
}

// RequestMembership files the actor's admission request with the named
// group. The request stays pending until an existing member reviews it.
func (s *Session) RequestMembership(groupName string) error {
	g, err := s.roster.LookupGroup(groupName)
	if err != nil {
		return err
	}
	if err := s.roster.Request(s.actor, g); err != nil {
		return err
	}
	s.log.WithOp("group-request").Info("admission requested", "group", groupName)
	return nil
}

// InviteUser invites the named user into a group the actor belongs to.
func (s *Session) InviteUser(groupName, userName string) error {
	g, err := s.roster.LookupGroup(groupName)
	if err != nil {
		return err
	}
	invitee, err := s.roster.LookupUser(userName)
	if err != nil {
		return err
	}
	if err := s.roster.Invite(s.actor, invitee, g); err != nil {
		return err
	}
	s.log.WithOp("group-invite").Info("user invited", "group", groupName, "user", userName)
	return nil
}

// PendingRequests returns, per group the actor belongs to, the admission
// requests awaiting the actor's review.
func (s *Session) PendingRequests() map[string][]owner.Member {
	return s.roster.RequestsVisibleTo(s.actor)
}

// ReviewRequest settles an admission request in a group the actor belongs
// to. Declining leaves the requester free to request again.
func (s *Session) ReviewRequest(groupName, requester string, accept bool) error {
	g, err := s.roster.LookupGroup(groupName)
	if err != nil {
		return err
	}
	if err := s.roster.ResolveRequest(s.actor, g, requester, accept); err != nil {
		return err
	}
	s.log.WithOp("group-review").Info("request resolved", "group", groupName, "user", requester, "accepted", accept)
	return nil
}

// Invites returns the groups holding an unresolved invitation addressed
// to the actor.
func (s *Session) Invites() []*owner.Group {
	return s.roster.InvitesFor(s.actor)
}

// ReviewInvite settles an invitation addressed to the actor.
func (s *Session) ReviewInvite(groupName string, accept bool) error {
	g, err := s.roster.LookupGroup(groupName)
	if err != nil {
		return err
	}
	if err := s.roster.ResolveInvite(s.actor, g, accept); err != nil {
		return err
	}
	s.log.WithOp("group-review").Info("invite resolved", "group", groupName, "accepted", accept)
	return nil
}

// LeaveGroup removes the actor from a group. When the actor is the last
// confirmed member, the group dissolves: every task it owns is deleted,
// with dangling dependency references stripped from surviving tasks
// first, and the group disappears from the directory.
func (s *Session) LeaveGroup(groupName string) error {
	g, err := s.roster.LookupGroup(groupName)
	if err != nil {
		return err
	}
	last := len(g.ConfirmedMembers()) == 1 && g.HasMember(s.actor)
	if err := s.roster.Detach(s.actor, g); err != nil {
		return err
	}
	if !last {
		s.log.WithOp("group-leave").Info("left group", "group", groupName)
		return nil
	}

	// Dissolution. Strip references before deleting, so no surviving
	// task is left depending on a removed ID and no delete trips the
	// dependents guard.
	owned := s.pool.ForOwner(g)
	for _, t := range owned {
		s.pool.StripDependency(t.ID())
	}
	for _, t := range owned {
		if err := s.pool.Delete(t.ID()); err != nil {
			return err
		}
	}
	s.roster.RemoveGroup(g)
	s.log.WithOp("group-leave").Info("group dissolved", "group", groupName, "tasks_deleted", len(owned))
	return nil
}
