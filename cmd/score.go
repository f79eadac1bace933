package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cirf-research/cirf-cli/internal/scorer"
)

var scoreFile string

var scoreCmd = &cobra.Command{
	Use:   "score [text]",
	Short: "Score a single text against the CIRF rubric",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if scoreFile != "" {
			data, err := os.ReadFile(scoreFile)
			if err != nil {
				return eris.Wrapf(err, "read %s", scoreFile)
			}
			text = string(data)
		}
		if strings.TrimSpace(text) == "" {
			return eris.New("no text given: pass it as arguments or via --file")
		}

		if err := scorer.ValidateConfig(cfg.Scorer); err != nil {
			return err
		}
		s := scorer.New(scorer.DefaultKeywordTable(), cfg.Scorer,
			cfg.Collect.GeographicModifiers, cfg.Collect.SectorModifiers)

		scores, info := s.AnalyzeText(text)
		out, err := json.MarshalIndent(map[string]any{
			"scores":   scores,
			"key_info": info,
		}, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal scores")
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreFile, "file", "", "read the text from a file")
	rootCmd.AddCommand(scoreCmd)
}
