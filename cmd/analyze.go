package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cirf-research/cirf-cli/internal/stats"
	"github.com/cirf-research/cirf-cli/internal/store"
)

var analyzeOut string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full statistical analysis over stored cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		cases, err := st.AllCases(cmd.Context(), store.CaseFilter{})
		if err != nil {
			return err
		}

		analysis := stats.NewAggregator(cases).Comprehensive()
		out, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal analysis")
		}

		if analyzeOut != "" {
			if err := os.WriteFile(analyzeOut, out, 0o644); err != nil {
				return eris.Wrapf(err, "write %s", analyzeOut)
			}
			fmt.Printf("Analysis written to %s\n", analyzeOut)
			return nil
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "write analysis JSON to file instead of stdout")
	rootCmd.AddCommand(analyzeCmd)
}
