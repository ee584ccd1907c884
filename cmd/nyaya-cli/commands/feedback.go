package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nyaya-engine/core/cmd/nyaya-cli/ui"
	"github.com/nyaya-engine/core/internal/feedback"
	"github.com/nyaya-engine/core/pkg/engine"
)

var feedbackSession string

var feedbackCmd = &cobra.Command{
	Use:   "feedback [event-id] [positive|negative]",
	Short: "Submit feedback on a prior analysis, adjusting its confidence",
	Args:  cobra.ExactArgs(2),
	RunE:  runFeedback,
}

func init() {
	feedbackCmd.Flags().StringVar(&feedbackSession, "session", "cli-session", "session id the event was recorded under")
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(cmd *cobra.Command, args []string) error {
	ui.Init(noColor, verbose)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	eng, err := engine.New(cfg)
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}
	defer eng.Close()

	var signal feedback.Signal
	switch args[1] {
	case "positive":
		signal = feedback.SignalPositive
	case "negative":
		signal = feedback.SignalNegative
	default:
		return fmt.Errorf("signal must be 'positive' or 'negative', got %q", args[1])
	}

	outcome, err := eng.SubmitFeedback(feedbackSession, args[0], signal)
	if err != nil {
		return fmt.Errorf("submit feedback: %w", err)
	}

	ui.Success("feedback recorded; new effective confidence: %.2f", outcome.NewEffectiveConfidence)
	return nil
}
