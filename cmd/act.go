package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zizip/droid-cli/internal/agent"
	"github.com/zizip/droid-cli/internal/dispatch"
	"github.com/zizip/droid-cli/internal/output"
)

var actCmd = &cobra.Command{
	Use:   "act",
	Short: "Execute agent actions against the device",
	Long: `Execute normalized agent actions. Two modes:

  --response '{"action": {...}}'   dispatch a single decision-maker response
  --goal "open settings"           run the keyword decision loop until done

With --virtual, actions run on an isolated virtual display that is created
for the run and removed afterwards.`,
	RunE: runAct,
}

func init() {
	rootCmd.AddCommand(actCmd)
	actCmd.Flags().String("response", "", "Single decision-maker response as JSON")
	actCmd.Flags().String("goal", "", "Goal for the built-in keyword decider loop")
	actCmd.Flags().Int("max-steps", 10, "Maximum decision loop steps")
	actCmd.Flags().Bool("virtual", false, "Run on a dedicated virtual display session")
}

// actStep is one printed step of the decision loop.
type actStep struct {
	Step      int              `yaml:"step"                json:"step"`
	Message   string           `yaml:"message,omitempty"   json:"message,omitempty"`
	Rationale string           `yaml:"rationale,omitempty" json:"rationale,omitempty"`
	Outcome   dispatch.Outcome `yaml:"outcome"             json:"outcome"`
}

func runAct(cmd *cobra.Command, args []string) error {
	response, _ := cmd.Flags().GetString("response")
	goal, _ := cmd.Flags().GetString("goal")
	maxSteps, _ := cmd.Flags().GetInt("max-steps")
	virtual, _ := cmd.Flags().GetBool("virtual")

	if (response == "") == (goal == "") {
		return fmt.Errorf("exactly one of --response or --goal is required")
	}

	ctx := cmd.Context()
	if virtual {
		cfg := app.cfg.Display
		if !app.manager.Create(ctx, cfg.Width, cfg.Height, cfg.DPI) {
			return fmt.Errorf("virtual display session could not be established")
		}
		defer app.manager.Remove(ctx)
	}

	dispatcher := dispatch.New(app.screen, app.manager, app.launcher, app.log)

	if response != "" {
		var resp agent.ModelResponse
		if err := json.Unmarshal([]byte(response), &resp); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
		return output.Print(dispatcher.Execute(ctx, resp))
	}

	observer := dispatch.NewObserver(app.runner, app.screen, app.manager, app.log)
	decider := agent.KeywordDecider{}

	for step := 1; step <= maxSteps; step++ {
		screen := observer.Observe(ctx)
		resp, err := decider.Decide(ctx, goal, screen)
		if err != nil {
			return err
		}

		outcome := dispatcher.Execute(ctx, resp)
		if err := output.Print(actStep{
			Step:      step,
			Message:   resp.Message,
			Rationale: resp.Rationale,
			Outcome:   outcome,
		}); err != nil {
			return err
		}

		if outcome.Done {
			return nil
		}
		if resp.NeedsConfirmation || resp.NeedsTakeover {
			app.log.Info("decision loop paused for the operator")
			return nil
		}
		if resp.Action == nil || resp.Action.Type == agent.ActionUnknown {
			return nil
		}
		time.Sleep(500 * time.Millisecond) // let the UI settle between steps
	}
	return nil
}
