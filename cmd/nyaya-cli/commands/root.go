package commands

import (
	"github.com/spf13/cobra"

	"github.com/nyaya-engine/core/internal/config"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "nyaya",
	Short: "Nyaya legal query analysis engine - CLI",
	Long: `Nyaya analyzes natural-language legal queries against Indian statutory
law (BNS/IPC/CrPC) and the Constitution: it classifies a query's legal
domain and subdomain, retrieves the relevant statutory sections and
constitutional articles, and records feedback to refine future confidence.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}
