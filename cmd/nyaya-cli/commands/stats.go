package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nyaya-engine/core/cmd/nyaya-cli/ui"
	"github.com/nyaya-engine/core/pkg/engine"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus and event-log statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
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

	stats, err := eng.Stats()
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	ui.Section("Engine Statistics")
	ui.KeyValue("bns_sections", stats.BNSSectionCount)
	ui.KeyValue("ipc_sections", stats.IPCSectionCount)
	ui.KeyValue("crpc_sections", stats.CrPCSectionCount)
	ui.KeyValue("articles", stats.ArticleCount)
	ui.KeyValue("total_events", stats.TotalEvents)
	return nil
}
