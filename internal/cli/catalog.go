package cli

import (
	"applock/internal/catalog"

	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the candidate apps",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the fixed app catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{
				"data": catalog.Apps(),
			})
		},
	})
	return cmd
}
