package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cirf-research/cirf-cli/internal/store"
)

var (
	casesCountry    string
	casesSector     string
	casesMinQuality int
	casesLimit      int
	casesJSON       bool
)

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "List stored failure cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		cases, err := st.AllCases(cmd.Context(), store.CaseFilter{
			Country:    casesCountry,
			Sector:     casesSector,
			MinQuality: casesMinQuality,
			Limit:      casesLimit,
		})
		if err != nil {
			return err
		}

		if casesJSON {
			out, err := json.MarshalIndent(cases, "", "  ")
			if err != nil {
				return eris.Wrap(err, "marshal cases")
			}
			fmt.Println(string(out))
			return nil
		}

		for i := range cases {
			c := &cases[i]
			score := "unscored"
			if c.Scores != nil {
				score = fmt.Sprintf("%.1f/13 (%.0f%%)", c.Scores.TotalScore, c.Scores.Percentage)
			}
			fmt.Printf("[%d] %s\n    %s | %s | evidence %d | %s\n",
				c.ID, c.Title, orDash(c.LocationCountry), orDash(c.Sector), c.EvidenceQuality, score)
		}
		fmt.Printf("\n%d cases\n", len(cases))
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	casesCmd.Flags().StringVar(&casesCountry, "country", "", "filter by country")
	casesCmd.Flags().StringVar(&casesSector, "sector", "", "filter by sector")
	casesCmd.Flags().IntVar(&casesMinQuality, "min-quality", 0, "minimum evidence quality (1-3)")
	casesCmd.Flags().IntVar(&casesLimit, "limit", 100, "maximum cases to list")
	casesCmd.Flags().BoolVar(&casesJSON, "json", false, "print full JSON records")
	rootCmd.AddCommand(casesCmd)
}
