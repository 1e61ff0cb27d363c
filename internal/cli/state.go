package cli

import (
	"applock/internal/model"
	"applock/internal/protect"

	"github.com/spf13/cobra"
)

func tapOutcomeString(o protect.TapOutcome) string {
	switch o {
	case protect.TapSetup:
		return "setup"
	case protect.TapNeedPassword:
		return "need-password"
	case protect.TapBackground:
		return "background"
	case protect.TapActive:
		return "active"
	default:
		return "noop"
	}
}

func newTapCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tap",
		Short: "Tap the shield once and print the outcome",
		Long: `Tap the shield once and print the outcome.

The click count is not persisted; each invocation derives it from the
stored state (OFF=0, BACKGROUND=2, ACTIVE=3). Intermediate counts are
lost between invocations, so scripted setup sequences should use
"state set" instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := loadController(app)
			if err != nil {
				return err
			}

			outcome := ctrl.Tap()
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"outcome":         tapOutcomeString(outcome),
					"clickCount":      ctrl.ClickCount(),
					"protectionState": ctrl.State(),
					"theme":           ctrl.Theme(),
				},
			})
		},
	}
	return cmd
}

func newOffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "off",
		Short: "Turn protection fully off (any state)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := loadController(app)
			if err != nil {
				return err
			}

			ctrl.ForceOff()
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"protectionState": ctrl.State(),
					"theme":           ctrl.Theme(),
					"clickCount":      ctrl.ClickCount(),
				},
			})
		},
	}
	return cmd
}

func newStateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Manage the protection state directly",
	}

	var stateArg string
	set := &cobra.Command{
		Use:   "set",
		Short: "Write the protection state (OFF|BACKGROUND|ACTIVE)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := loadController(app)
			if err != nil {
				return err
			}

			if err := ctrl.SetState(model.ProtectionState(stateArg)); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"protectionState": ctrl.State(),
					"theme":           ctrl.Theme(),
				},
			})
		},
	}
	set.Flags().StringVar(&stateArg, "state", "", "Protection state (OFF|BACKGROUND|ACTIVE)")
	_ = set.MarkFlagRequired("state")

	cmd.AddCommand(set)
	return cmd
}
