package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cirf-research/cirf-cli/internal/config"
	"github.com/cirf-research/cirf-cli/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "cirf",
	Short: "Cultural Innovation Resilience Framework research tool",
	Long:  "Collects documented cultural enterprise failures, scores them against the 13-component CIRF rubric, and runs the statistical analysis behind the research reports.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// openStore opens the configured backend and applies migrations.
func openStore(cmd *cobra.Command) (store.Store, error) {
	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(cmd.Context()); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
