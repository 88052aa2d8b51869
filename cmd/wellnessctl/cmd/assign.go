package cmd

import (
	"github.com/spf13/cobra"
)

func AssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <provider-email> <patient-email>",
		Short: "Give a provider access to a patient",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			err = a.ProviderService.Assign(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			cmd.Printf("assigned %s to %s\n", args[1], args[0])
			return nil
		},
	}
}

func UnassignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <provider-email> <patient-email>",
		Short: "Revoke a provider's access to a patient",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			err = a.ProviderService.Unassign(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			cmd.Printf("unassigned %s from %s\n", args[1], args[0])
			return nil
		},
	}
}
