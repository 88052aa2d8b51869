package cmd

import (
	"github.com/spf13/cobra"
)

func RemindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Email every patient who has overdue reminders",
		Long:  "Email every patient who has overdue reminders. Meant to run from cron once a day.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			sent, err := a.ReminderNotifier.NotifyOverdue(cmd.Context())
			cmd.Printf("sent %d overdue reminder emails\n", sent)
			return err
		},
	}
}
