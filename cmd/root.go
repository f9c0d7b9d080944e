package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zizip/droid-cli/internal/config"
	"github.com/zizip/droid-cli/internal/dispatch"
	"github.com/zizip/droid-cli/internal/display"
	"github.com/zizip/droid-cli/internal/ime"
	"github.com/zizip/droid-cli/internal/observability"
	"github.com/zizip/droid-cli/internal/output"
	"github.com/zizip/droid-cli/internal/shell"
	"github.com/zizip/droid-cli/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "droid-cli",
	Short: "Drive Android devices and virtual displays from the command line",
	Long: "A CLI tool that lets AI agents automate Android devices: tap, swipe, type,\n" +
		"capture screenshots, and run actions on an isolated virtual display.",
}

// appContext is the wired automation stack for the current invocation. Built
// once in PersistentPreRunE; commands only read it.
type appContext struct {
	cfg      *config.Config
	log      *zap.Logger
	runner   shell.Runner
	manager  *display.Manager
	screen   *display.Screen
	launcher *dispatch.ShellLauncher
}

var app *appContext

func Execute() {
	err := rootCmd.Execute()
	if app != nil && app.log != nil {
		observability.Sync(app.log)
	}
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: $HOME/.droid-cli/config.yaml)")
	rootCmd.PersistentFlags().String("serial", "", "adb device serial (default: sole attached device)")
	rootCmd.PersistentFlags().Bool("local", false, "Run commands in a local shell instead of adb (on-device mode)")
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentPreRunE = buildApp
}

func buildApp(cmd *cobra.Command, args []string) error {
	flags := rootCmd.PersistentFlags()

	cfgPath, _ := flags.GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if flags.Changed("serial") {
		cfg.Device.Serial, _ = flags.GetString("serial")
	}
	if flags.Changed("local") {
		cfg.Device.UseLocal, _ = flags.GetBool("local")
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.Logger.Level = "debug"
	}

	format, _ := flags.GetString("format")
	switch format {
	case "yaml":
		output.OutputFormat = output.FormatYAML
	case "json":
		output.OutputFormat = output.FormatJSON
	default:
		return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
	}
	output.PrettyOutput, _ = flags.GetBool("pretty")

	log, err := observability.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	var runner shell.Runner
	if cfg.Device.UseLocal {
		runner = shell.NewLocalRunner(cfg.Shell.Timeout, log)
	} else {
		runner = shell.NewAdbRunner(cfg.Device.ADBPath, cfg.Device.Serial, cfg.Shell.Timeout, log)
	}

	keyboard := ime.NewBroadcastKeyboard(runner, log)
	app = &appContext{
		cfg:      cfg,
		log:      log,
		runner:   runner,
		screen:   display.NewScreen(runner, keyboard, cfg.Display.CaptureDir, log),
		launcher: dispatch.NewShellLauncher(runner, log),
		manager: display.NewManager(runner, display.Options{
			Name:         cfg.Display.Name,
			FallbackID:   cfg.Display.FallbackID,
			SettleDelay:  cfg.Display.SettleDelay,
			PollAttempts: cfg.Display.PollAttempts,
			PollInterval: cfg.Display.PollInterval,
			CaptureDir:   cfg.Display.CaptureDir,
		}, log),
	}
	return nil
}
