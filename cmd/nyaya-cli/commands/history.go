package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nyaya-engine/core/cmd/nyaya-cli/ui"
	"github.com/nyaya-engine/core/internal/querystore"
	"github.com/nyaya-engine/core/pkg/engine"
)

var (
	historySession string
	historyLimit   int
	historySearch  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or search previously analyzed queries",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historySession, "session", "", "restrict listing to a session id (empty lists all sessions)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of events to list")
	historyCmd.Flags().StringVar(&historySearch, "search", "", "case-insensitive substring search over raw query and domain")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
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

	var events []querystore.Event
	if historySearch != "" {
		events, err = eng.SearchHistory(historySearch)
	} else {
		events, err = eng.ListHistory(historySession, historyLimit, 0)
	}
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	ui.Section("Query History")
	if len(events) == 0 {
		fmt.Println("(no events found)")
		return nil
	}
	for _, e := range events {
		fmt.Printf("%s  [%s]  %-40s  %s/%s  eff=%.2f\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.EventID[:8], truncate(e.RawQuery, 40), e.DomainID, e.SubdomainID, e.EffectiveConfidence)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
