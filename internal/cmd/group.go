package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage groups and membership",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a group with the acting user as sole member",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupCreate,
}

var groupRequestCmd = &cobra.Command{
	Use:   "request <name>",
	Short: "Ask to join a group",
	Long: `File an admission request with a group. The request stays pending
until an existing member accepts or declines it; a declined request may
be filed again.`,
	Args: cobra.ExactArgs(1),
	RunE: runGroupRequest,
}

var groupInviteCmd = &cobra.Command{
	Use:   "invite <group> <user>",
	Short: "Invite a user into one of the acting user's groups",
	Args:  cobra.ExactArgs(2),
	RunE:  runGroupInvite,
}

var groupRequestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List admission requests awaiting the acting user's review",
	RunE:  runGroupRequests,
}

var groupReviewCmd = &cobra.Command{
	Use:   "review <group> <user>",
	Short: "Accept or decline an admission request",
	Args:  cobra.ExactArgs(2),
	RunE:  runGroupReview,
}

var groupInvitesCmd = &cobra.Command{
	Use:   "invites",
	Short: "List invitations addressed to the acting user",
	RunE:  runGroupInvites,
}

var groupAnswerCmd = &cobra.Command{
	Use:   "answer <group>",
	Short: "Accept or decline an invitation",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupAnswer,
}

var groupLeaveCmd = &cobra.Command{
	Use:   "leave <name>",
	Short: "Leave a group",
	Long: `Leave a group. When the acting user is the last member the group
dissolves: its tasks are deleted and dependency references to them are
stripped from surviving tasks.`,
	Args: cobra.ExactArgs(1),
	RunE: runGroupLeave,
}

var (
	reviewAccept  bool
	reviewDecline bool
	answerAccept  bool
	answerDecline bool
)

func init() {
	rootCmd.AddCommand(groupCmd)
	groupCmd.AddCommand(groupCreateCmd)
	groupCmd.AddCommand(groupRequestCmd)
	groupCmd.AddCommand(groupInviteCmd)
	groupCmd.AddCommand(groupRequestsCmd)
	groupCmd.AddCommand(groupReviewCmd)
	groupCmd.AddCommand(groupInvitesCmd)
	groupCmd.AddCommand(groupAnswerCmd)
	groupCmd.AddCommand(groupLeaveCmd)

	groupReviewCmd.Flags().BoolVar(&reviewAccept, "accept", false, "accept the request")
	groupReviewCmd.Flags().BoolVar(&reviewDecline, "decline", false, "decline the request")
	groupAnswerCmd.Flags().BoolVar(&answerAccept, "accept", false, "accept the invitation")
	groupAnswerCmd.Flags().BoolVar(&answerDecline, "decline", false, "decline the invitation")
}

func runGroupCreate(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if _, err := e.sess.CreateGroup(args[0]); err != nil {
		return report(err)
	}
	if err := e.save(); err != nil {
		return err
	}
	fmt.Printf("Group %s created.\n", args[0])
	return nil
}

func runGroupRequest(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.sess.RequestMembership(args[0]); err != nil {
		return report(err)
	}
	if err := e.save(); err != nil {
		return err
	}
	fmt.Printf("Admission to %s requested.\n", args[0])
	return nil
}

func runGroupInvite(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.sess.InviteUser(args[0], args[1]); err != nil {
		return report(err)
	}
	if err := e.save(); err != nil {
		return err
	}
	fmt.Printf("%s invited to %s.\n", args[1], args[0])
	return nil
}

func runGroupRequests(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	reqs := e.sess.PendingRequests()
	if len(reqs) == 0 {
		fmt.Println("No pending requests.")
		return nil
	}
	names := make([]string, 0, len(reqs))
	for g := range reqs {
		names = append(names, g)
	}
	sort.Strings(names)
	for _, g := range names {
		for _, m := range reqs[g] {
			fmt.Printf("%s: %s <%s>\n", g, m.DisplayName(), m.Email)
		}
	}
	return nil
}

func runGroupReview(cmd *cobra.Command, args []string) error {
	if reviewAccept == reviewDecline {
		return fmt.Errorf("pass exactly one of --accept or --decline")
	}
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.sess.ReviewRequest(args[0], args[1], reviewAccept); err != nil {
		return report(err)
	}
	if err := e.save(); err != nil {
		return err
	}
	if reviewAccept {
		fmt.Printf("%s is now a member of %s.\n", args[1], args[0])
	} else {
		fmt.Printf("Request from %s declined.\n", args[1])
	}
	return nil
}

func runGroupInvites(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	invites := e.sess.Invites()
	if len(invites) == 0 {
		fmt.Println("No pending invitations.")
		return nil
	}
	for _, g := range invites {
		fmt.Println(g.Name())
	}
	return nil
}

func runGroupAnswer(cmd *cobra.Command, args []string) error {
	if answerAccept == answerDecline {
		return fmt.Errorf("pass exactly one of --accept or --decline")
	}
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.sess.ReviewInvite(args[0], answerAccept); err != nil {
		return report(err)
	}
	if err := e.save(); err != nil {
		return err
	}
	if answerAccept {
		fmt.Printf("Joined %s.\n", args[0])
	} else {
		fmt.Printf("Invitation from %s declined.\n", args[0])
	}
	return nil
}

func runGroupLeave(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.sess.LeaveGroup(args[0]); err != nil {
		return report(err)
	}
	if err := e.save(); err != nil {
		return err
	}
	fmt.Printf("Left %s.\n", args[0])
	return nil
}
