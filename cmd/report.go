package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cirf-research/cirf-cli/internal/report"
	"github.com/cirf-research/cirf-cli/internal/stats"
	"github.com/cirf-research/cirf-cli/internal/store"
)

var reportOut string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the research report",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		text, err := buildReport(cmd, st)
		if err != nil {
			return err
		}

		if reportOut != "" {
			if err := os.WriteFile(reportOut, []byte(text), 0o644); err != nil {
				return eris.Wrapf(err, "write %s", reportOut)
			}
			fmt.Printf("Report written to %s\n", reportOut)
			return nil
		}
		fmt.Print(text)
		return nil
	},
}

func buildReport(cmd *cobra.Command, st store.Store) (string, error) {
	cases, err := st.AllCases(cmd.Context(), store.CaseFilter{})
	if err != nil {
		return "", err
	}
	dbStats, err := st.Stats(cmd.Context())
	if err != nil {
		return "", err
	}
	analysis := stats.NewAggregator(cases).Comprehensive()
	return report.Format(analysis, dbStats, time.Now()), nil
}

func init() {
	reportCmd.Flags().StringVar(&reportOut, "out", "", "write the report to a file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}
