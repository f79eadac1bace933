package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cirf-research/cirf-cli/internal/collect"
	"github.com/cirf-research/cirf-cli/internal/scorer"
	"github.com/cirf-research/cirf-cli/internal/store"
)

var fullMaxQueries int

var fullCmd = &cobra.Command{
	Use:   "full",
	Short: "Run the complete workflow: collect, analyze, report, export",
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
		runStats, err := collector.Run(ctx, fullMaxQueries)
		if err != nil {
			return err
		}
		fmt.Printf("Collection: %d queries, %d processed, %d failed\n",
			runStats.Queries, runStats.Processed, runStats.Failed)

		text, err := buildReport(cmd, st)
		if err != nil {
			return err
		}
		reportPath := exportPath("md")
		if err := os.WriteFile(reportPath, []byte(text), 0o644); err != nil {
			return eris.Wrapf(err, "write %s", reportPath)
		}
		fmt.Printf("Report written to %s\n", reportPath)

		cases, err := st.AllCases(ctx, store.CaseFilter{})
		if err != nil {
			return err
		}
		csvPath, err := runExport(cases, "csv", "")
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d cases to %s\n", len(cases), csvPath)
		return nil
	},
}

func init() {
	fullCmd.Flags().IntVar(&fullMaxQueries, "max-queries", 0, "override configured query cap")
	rootCmd.AddCommand(fullCmd)
}
