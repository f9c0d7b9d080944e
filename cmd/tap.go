package cmd

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/zizip/droid-cli/internal/output"
)

var tapCmd = &cobra.Command{
	Use:   "tap X Y",
	Short: "Tap the primary display at the given coordinates",
	Args:  cobra.ExactArgs(2),
	RunE:  runTap,
}

func init() {
	rootCmd.AddCommand(tapCmd)
}

func runTap(cmd *cobra.Command, args []string) error {
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return err
	}

	ok := app.screen.Tap(cmd.Context(), x, y)
	result := output.StepResult{OK: ok, TS: time.Now().Unix()}
	if !ok {
		result.Detail = "tap failed, see logs"
	}
	return output.Print(result)
}
