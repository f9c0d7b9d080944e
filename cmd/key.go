package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/zizip/droid-cli/internal/display"
	"github.com/zizip/droid-cli/internal/output"
)

var keyCmd = &cobra.Command{
	Use:   "key CODE",
	Short: "Press a key on the primary display",
	Long:  "Press a key by Android key code or by name (back, home, enter).",
	Args:  cobra.ExactArgs(1),
	RunE:  runKey,
}

func init() {
	rootCmd.AddCommand(keyCmd)
}

var namedKeys = map[string]int{
	"home":  display.KeycodeHome,
	"back":  display.KeycodeBack,
	"enter": 66,
}

func runKey(cmd *cobra.Command, args []string) error {
	code, ok := namedKeys[args[0]]
	if !ok {
		var err error
		code, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("unknown key %q (use a key code or back, home, enter)", args[0])
		}
	}

	pressed := app.screen.Key(cmd.Context(), code)
	result := output.StepResult{OK: pressed, TS: time.Now().Unix()}
	if !pressed {
		result.Detail = "key press failed, see logs"
	}
	return output.Print(result)
}
