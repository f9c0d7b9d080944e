package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zizip/droid-cli/internal/output"
)

var typeCmd = &cobra.Command{
	Use:   "type TEXT",
	Short: "Type text into the focused input field",
	Long:  "Type text through the input method broadcast channel. Unicode text is supported.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runType,
}

func init() {
	rootCmd.AddCommand(typeCmd)
}

func runType(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	ok := app.screen.InputText(cmd.Context(), text)
	result := output.StepResult{OK: ok, TS: time.Now().Unix()}
	if !ok {
		result.Detail = "text input failed, see logs"
	}
	return output.Print(result)
}
