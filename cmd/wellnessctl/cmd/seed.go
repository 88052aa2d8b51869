package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wellpath/portal/internal/app"
	"github.com/wellpath/portal/internal/service"
)

var demoAccounts = []service.RegisterInput{
	{
		Name:         "Demo Provider",
		Email:        "provider@example.com",
		Password:     "Provider123!",
		Role:         "provider",
		ConsentGiven: true,
	},
	{
		Name:         "Demo Patient",
		Email:        "patient@example.com",
		Password:     "Patient123!",
		Role:         "patient",
		ConsentGiven: true,
		Allergies:    "None",
		Medications:  "Vitamin D",
	},
}

func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the demo provider and patient and assign them",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			return seed(cmd.Context(), a, cmd)
		},
	}
}

// seed is safe to rerun: existing demo accounts are left untouched.
func seed(ctx context.Context, a *app.App, cmd *cobra.Command) error {
	for _, in := range demoAccounts {
		_, err := a.AuthService.Register(ctx, in)
		if errors.Is(err, service.ErrConflict) {
			cmd.Printf("%s already exists\n", in.Email)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", in.Email, err)
		}
		cmd.Printf("created %s %s\n", in.Role, in.Email)
	}

	err := a.ProviderService.Assign(ctx, demoAccounts[0].Email, demoAccounts[1].Email)
	if err != nil {
		return err
	}
	cmd.Printf("assigned %s to %s\n", demoAccounts[1].Email, demoAccounts[0].Email)
	return nil
}
