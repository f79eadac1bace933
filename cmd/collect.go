package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cirf-research/cirf-cli/internal/collect"
	"github.com/cirf-research/cirf-cli/internal/scorer"
)

var collectMaxQueries int

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Search sources and ingest new failure cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := scorer.ValidateConfig(cfg.Scorer); err != nil {
			return err
		}
		s := scorer.New(scorer.DefaultKeywordTable(), cfg.Scorer,
			cfg.Collect.GeographicModifiers, cfg.Collect.SectorModifiers)

		client := collect.NewClient(cfg.Collect)
		collector := collect.NewCollector(
			st,
			scorer.NewProcessor(s),
			client,
			[]collect.Source{collect.NewSemanticScholarSource(client)},
			cfg.Collect,
		)

		stats, err := collector.Run(ctx, collectMaxQueries)
		if err != nil {
			return err
		}

		fmt.Printf("Run %s: %d queries, %d collected, %d processed, %d failed, %d cases in database\n",
			stats.RunID, stats.Queries, stats.Collected, stats.Processed, stats.Failed, stats.TotalInDB)
		return nil
	},
}

func init() {
	collectCmd.Flags().IntVar(&collectMaxQueries, "max-queries", 0, "override configured query cap")
	rootCmd.AddCommand(collectCmd)
}
