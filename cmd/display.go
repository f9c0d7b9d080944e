package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/zizip/droid-cli/internal/display"
	"github.com/zizip/droid-cli/internal/output"
	"github.com/zizip/droid-cli/internal/wire"
)

var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Manage the virtual display session",
}

var displayCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a virtual display and print its identifier",
	RunE:  runDisplayCreate,
}

var displayRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a virtual display",
	Long:  "Remove the virtual display with the given --id, or the one found by session name when --id is omitted.",
	RunE:  runDisplayRemove,
}

var displayStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the virtual display session is registered",
	RunE:  runDisplayStatus,
}

func init() {
	rootCmd.AddCommand(displayCmd)
	displayCmd.AddCommand(displayCreateCmd, displayRemoveCmd, displayStatusCmd)

	displayCreateCmd.Flags().Int("width", 0, "Display width in pixels (default from config)")
	displayCreateCmd.Flags().Int("height", 0, "Display height in pixels (default from config)")
	displayCreateCmd.Flags().Int("dpi", 0, "Display density (default from config)")

	displayRemoveCmd.Flags().Int("id", 0, "Display identifier to remove")
}

func runDisplayCreate(cmd *cobra.Command, args []string) error {
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	dpi, _ := cmd.Flags().GetInt("dpi")
	if width == 0 {
		width = app.cfg.Display.Width
	}
	if height == 0 {
		height = app.cfg.Display.Height
	}
	if dpi == 0 {
		dpi = app.cfg.Display.DPI
	}

	ok := app.manager.Create(cmd.Context(), width, height, dpi)
	result := output.StepResult{OK: ok, TS: time.Now().Unix()}
	if ok {
		result.Display, _ = app.manager.ID()
	} else {
		result.Detail = "virtual display creation failed, see logs"
	}
	return output.Print(result)
}

func runDisplayRemove(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetInt("id")
	result := output.StepResult{TS: time.Now().Unix()}

	if id == 0 {
		// Find the session display by name first; each invocation is a
		// fresh process, so there is no in-memory handle to fall back on.
		res := app.runner.Run(cmd.Context(), wire.ListDisplays{}.Wire())
		if !res.Success {
			result.Detail = "display listing failed, pass --id explicitly"
			return output.Print(result)
		}
		found, matched := display.ResolveDisplayID(res.Output, app.cfg.Display.Name)
		if !matched {
			result.Detail = "no virtual display session found"
			return output.Print(result)
		}
		id = found
	}

	res := app.runner.Run(cmd.Context(), wire.RemoveDisplay{ID: id}.Wire())
	result.OK = res.Success
	result.Display = id
	if !res.Success {
		result.Detail = res.Err
	}
	return output.Print(result)
}

func runDisplayStatus(cmd *cobra.Command, args []string) error {
	status := output.DisplayStatus{TS: time.Now().Unix()}

	res := app.runner.Run(cmd.Context(), wire.ListDisplays{}.Wire())
	if res.Success {
		if id, matched := display.ResolveDisplayID(res.Output, app.cfg.Display.Name); matched {
			status.Active = true
			status.ID = id
		}
	}
	return output.Print(status)
}
