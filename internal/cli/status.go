package cli

import (
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current protection record",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, s, err := loadController(app)
			if err != nil {
				return err
			}

			p := ctrl.Profile()
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":             s.Dir,
					"protectionState": p.ProtectionState,
					"theme":           p.Theme,
					"protectedApps":   len(p.ProtectedApps),
					"passwordSet":     p.Password != "",
					"clickCount":      ctrl.ClickCount(),
				},
			})
		},
	}
	return cmd
}
