package cli

import (
	"errors"

	"applock/internal/protect"

	"github.com/spf13/cobra"
)

func newPasswordCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Manage the protection password",
	}
	cmd.AddCommand(newPasswordSetCmd(app))
	cmd.AddCommand(newPasswordVerifyCmd(app))
	return cmd
}

func newPasswordSetCmd(app *App) *cobra.Command {
	var password, confirm string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the protection password (1-8 characters)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := loadController(app)
			if err != nil {
				return err
			}

			if confirm == "" {
				confirm = password
			}
			if err := ctrl.SetPassword(password, confirm); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"passwordSet": true,
				},
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "New password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "Confirmation (defaults to --password)")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newPasswordVerifyCmd(app *App) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a password against the stored one",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := loadController(app)
			if err != nil {
				return err
			}

			valid := true
			if err := ctrl.VerifyPassword(password); err != nil {
				var ae protect.AuthError
				if !errors.As(err, &ae) {
					return err
				}
				valid = false
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"valid": valid,
				},
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password to check")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
