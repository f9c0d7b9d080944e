package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/zizip/droid-cli/internal/output"
)

var launchCmd = &cobra.Command{
	Use:   "launch APP",
	Short: "Launch an app by package name or component",
	Long:  "Launch an app by package name (com.android.settings) or explicit component (com.app/.MainActivity).",
	Args:  cobra.ExactArgs(1),
	RunE:  runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	ok := app.launcher.Launch(cmd.Context(), args[0])
	result := output.StepResult{OK: ok, TS: time.Now().Unix()}
	if !ok {
		result.Detail = "launch failed, see logs"
	}
	return output.Print(result)
}
