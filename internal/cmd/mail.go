package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"taredo/internal/mail"
)

var mailCmd = &cobra.Command{
	Use:   "mail",
	Short: "Email reminders",
}

var mailPreviewCmd = &cobra.Command{
	Use:   "preview <id> [address]",
	Short: "Render the reminder email for a task",
	Long: `Render the reminder message that would be sent for a task. The
destination defaults to the acting user's own address. Delivery itself
is the transport's job; preview only shows the rendered message.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMailPreview,
}

var mailImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Create tasks from the inbox directory",
	Long: `Read the unread messages in the inbox directory and create one task
per message whose subject carries the submission marker. Messages for
other owners, and messages that fail to parse, are left unread.`,
	Args: cobra.NoArgs,
	RunE: runMailImport,
}

var mailImportDir string

func init() {
	rootCmd.AddCommand(mailCmd)
	mailCmd.AddCommand(mailPreviewCmd)
	mailCmd.AddCommand(mailImportCmd)

	mailImportCmd.Flags().StringVar(&mailImportDir, "maildir", "", "inbox directory (default {data dir}/mail)")
}

func runMailPreview(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	d, err := e.sess.View(id)
	if err != nil {
		return report(err)
	}

	to := e.sess.Actor().Email()
	if len(args) == 2 {
		to = args[1]
	}
	m := mail.Compose(e.cfg.Mail.From, to, e.cfg.Mail.ReminderPrefix, d.Task)

	fmt.Printf("From:    %s\n", m.From)
	fmt.Printf("To:      %s\n", m.To)
	fmt.Printf("Subject: %s\n", m.Subject)
	fmt.Println()
	fmt.Println(m.Body)
	return nil
}

func runMailImport(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	dir := mailImportDir
	if dir == "" {
		dir = filepath.Join(e.cfg.Data.ResolveDataDir(), "mail")
	}

	imp := mail.NewImporter(e.sess, mail.NewFileTransport(dir), e.cfg.Mail.InboundMarker, e.log)
	created, err := imp.Import()
	if err != nil {
		return report(err)
	}
	if created > 0 {
		if err := e.save(); err != nil {
			return err
		}
	}
	fmt.Printf("imported %d task(s) from %s\n", created, dir)
	return nil
}
