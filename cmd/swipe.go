package cmd

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/zizip/droid-cli/internal/output"
)

var swipeCmd = &cobra.Command{
	Use:   "swipe X1 Y1 X2 Y2",
	Short: "Swipe on the primary display between two points",
	Args:  cobra.ExactArgs(4),
	RunE:  runSwipe,
}

func init() {
	rootCmd.AddCommand(swipeCmd)
	swipeCmd.Flags().Int("duration", 300, "Gesture duration in milliseconds")
}

func runSwipe(cmd *cobra.Command, args []string) error {
	coords := make([]int, 4)
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return err
		}
		coords[i] = v
	}
	duration, _ := cmd.Flags().GetInt("duration")

	ok := app.screen.Swipe(cmd.Context(), coords[0], coords[1], coords[2], coords[3], duration)
	result := output.StepResult{OK: ok, TS: time.Now().Unix()}
	if !ok {
		result.Detail = "swipe failed, see logs"
	}
	return output.Print(result)
}
