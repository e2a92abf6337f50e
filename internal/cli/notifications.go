package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/sundial-app/sundial/internal/daemon"
)

func init() {
	notificationsCmd.Flags().BoolVar(&notifUnread, "unread", false, "Show only unread notifications")
	notificationsCmd.AddCommand(notifReadCmd)
	notificationsCmd.AddCommand(notifDeleteCmd)
	rootCmd.AddCommand(notificationsCmd)
}

var notifUnread bool

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"inbox"},
	Short:   "List notifications",
	RunE:    runNotifications,
}

var notifReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotifRead,
}

var notifDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a notification",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotifDelete,
}

func runNotifications(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	notifs, err := d.Notifier.List(notifUnread, 50)
	if err != nil {
		return err
	}
	if len(notifs) == 0 {
		fmt.Println("No notifications.")
		return nil
	}

	for _, n := range notifs {
		mark := " "
		if !n.Read {
			mark = "•"
		}
		fmt.Printf("%s [%d] %s — %s (%s)\n", mark, n.ID, n.Title, n.Message,
			n.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runNotifRead(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid notification id %q", args[0])
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Notifier.MarkRead(id); err != nil {
		return err
	}
	fmt.Println("Marked as read.")
	return nil
}

func runNotifDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid notification id %q", args[0])
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Notifier.Delete(id); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}
