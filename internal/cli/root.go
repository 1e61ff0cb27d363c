package cli

import (
	"strings"

	"applock/internal/config"
	"applock/internal/format"
	"applock/internal/logging"
	"applock/internal/protect"
	"applock/internal/store"
	"applock/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Debug      bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "applock",
		Short:        "App protection mock-up (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  applock

  # Scriptable commands
  applock status
  applock tap
  applock apps add com.whatsapp
  applock password set --password 1234
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Path to data dir (default: $APPLOCK_DIR or ~/.applock)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newTapCmd(app))
	cmd.AddCommand(newOffCmd(app))
	cmd.AddCommand(newStateCmd(app))
	cmd.AddCommand(newAppsCmd(app))
	cmd.AddCommand(newPasswordCmd(app))
	cmd.AddCommand(newCatalogCmd(app))

	return cmd
}

func runTUI(app *App) error {
	ctrl, s, err := loadController(app)
	if err != nil {
		return err
	}
	return tui.Run(ctrl, s)
}

// loadController resolves the data dir (flag > env > home), sets up the file
// logger and loads the persisted record into a controller.
func loadController(app *App) (*protect.Controller, store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, store.Store{}, err
	}
	dir, err := cfg.ResolveDir(app.Dir)
	if err != nil {
		return nil, store.Store{}, err
	}
	app.Dir = dir

	s := store.Store{Dir: dir}
	log := logging.New(cfg.ResolveLogFile(dir), app.Debug || cfg.Debug)
	ctrl, err := protect.New(s, log)
	if err != nil {
		return nil, s, err
	}
	return ctrl, s, nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}
