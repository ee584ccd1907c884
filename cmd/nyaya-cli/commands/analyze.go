package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nyaya-engine/core/cmd/nyaya-cli/ui"
	"github.com/nyaya-engine/core/internal/corpus"
	"github.com/nyaya-engine/core/pkg/engine"
)

var (
	analyzeSession string
	analyzeTimeout time.Duration
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [query]",
	Short: "Classify a legal query and retrieve matching sections and articles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeSession, "session", "cli-session", "session id to attribute this query to")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 2*time.Second, "deadline for the analyze pipeline; expiry returns a partial result")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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

	query := strings.Join(args, " ")

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	sp := ui.NewSpinner("analyzing query")
	sp.Start()
	res, err := eng.Analyze(ctx, analyzeSession, query)
	sp.Stop()
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	ui.Section("Classification")
	ui.KeyValue("domain", fmt.Sprintf("%s (%s)", res.DomainDisplay, res.DomainID))
	ui.KeyValue("subdomain", fmt.Sprintf("%s (%s)", res.SubdomainDisplay, res.SubdomainID))
	ui.KeyValue("base_confidence", fmt.Sprintf("%.2f", res.BaseConfidence))
	ui.KeyValue("effective_confidence", fmt.Sprintf("%.2f", res.EffectiveConfidence))
	ui.KeyValue("event_id", res.EventID)

	ui.Section("Statutory Sections")
	printSections("BNS", res.Sections.BNS)
	printSections("IPC", res.Sections.IPC)
	printSections("CrPC", res.Sections.CrPC)

	ui.Section("Constitutional Articles")
	if len(res.Constitutional) == 0 {
		fmt.Println("(none matched)")
	}
	for _, c := range res.Constitutional {
		fmt.Printf("Article %s — %d%% — %s\n", c.Article.Number, c.Percent, c.Article.Title)
	}

	if !res.Persisted {
		ui.Error("query event could not be durably recorded; history lookups may miss this event")
	}
	if res.Partial {
		ui.Error(fmt.Sprintf("deadline of %s expired before every stage completed; result is partial", analyzeTimeout))
	}
	for stage := range res.Degraded {
		ui.Info("stage %q degraded; result is less precise than a healthy run", stage)
	}

	return nil
}

func printSections(code string, sections []corpus.Section) {
	if len(sections) == 0 {
		fmt.Printf("%s: (none matched)\n", code)
		return
	}
	for _, s := range sections {
		fmt.Printf("%s %s — %s\n", code, s.Number, s.Title)
	}
}
