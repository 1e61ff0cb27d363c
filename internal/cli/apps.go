package cli

import (
	"errors"

	"applock/internal/catalog"
	"applock/internal/model"

	"github.com/spf13/cobra"
)

func newAppsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "Manage the protected app set",
	}
	cmd.AddCommand(newAppsListCmd(app))
	cmd.AddCommand(newAppsAddCmd(app))
	cmd.AddCommand(newAppsRemoveCmd(app))
	return cmd
}

func newAppsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List protected apps in insertion order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := loadController(app)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{
				"data": ctrl.Apps(),
			})
		},
	}
}

func newAppsAddCmd(app *App) *cobra.Command {
	var name, icon string
	cmd := &cobra.Command{
		Use:   "add <package-name>",
		Short: "Protect an app (catalog package, or custom with --name/--icon)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := loadController(app)
			if err != nil {
				return err
			}

			pkg := args[0]
			var entry model.ProtectedApp
			if ca, ok := catalog.Find(pkg); ok {
				entry = ca.Protected()
			} else {
				if name == "" {
					return errors.New("package not in catalog; pass --name (and optionally --icon)")
				}
				if icon == "" {
					icon = "📱"
				}
				entry = model.ProtectedApp{Name: name, PackageName: pkg, Icon: icon}
			}
			// Flags may still override catalog values for custom labels.
			if name != "" {
				entry.Name = name
			}
			if icon != "" {
				entry.Icon = icon
			}

			if err := ctrl.AddApp(entry); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"added":         entry,
					"protectedApps": len(ctrl.Apps()),
				},
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name for a custom app")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon glyph for a custom app (default 📱)")
	return cmd
}

func newAppsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <package-name>",
		Short: "Remove an app from the protected set (no-op if absent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := loadController(app)
			if err != nil {
				return err
			}

			ctrl.RemoveApp(args[0])
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"protectedApps": len(ctrl.Apps()),
				},
			})
		},
	}
}
