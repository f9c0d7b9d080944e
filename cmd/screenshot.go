package cmd

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zizip/droid-cli/internal/vision"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture a screenshot of the primary display",
	Long:  "Capture a screenshot for vision model consumption. Writes base64 PNG to stdout unless --output is given.",
	RunE:  runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().String("output", "", "Output file path (default: stdout as base64)")
	screenshotCmd.Flags().Bool("grid", false, "Overlay a labeled coordinate grid")
	screenshotCmd.Flags().Int("grid-spacing", vision.DefaultGridSpacing, "Grid line spacing in pixels")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("output")
	grid, _ := cmd.Flags().GetBool("grid")
	spacing, _ := cmd.Flags().GetInt("grid-spacing")

	path, ok := app.screen.Screenshot(cmd.Context())
	if !ok {
		return fmt.Errorf("screenshot capture failed")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read screenshot %s: %w", path, err)
	}

	if grid {
		data, err = vision.OverlayGrid(data, vision.GridOptions{Spacing: spacing})
		if err != nil {
			return err
		}
	}

	if outPath != "" {
		return os.WriteFile(outPath, data, 0644)
	}

	// Default: write to stdout as base64 for easy agent consumption
	encoder := base64.NewEncoder(base64.StdEncoding, os.Stdout)
	if _, err := encoder.Write(data); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	fmt.Println() // newline after base64
	return nil
}
