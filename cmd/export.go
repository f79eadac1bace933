package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cirf-research/cirf-cli/internal/export"
	"github.com/cirf-research/cirf-cli/internal/model"
	"github.com/cirf-research/cirf-cli/internal/store"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the case table to CSV or XLSX",
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

		path, err := runExport(cases, exportFormat, exportOut)
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d cases to %s\n", len(cases), path)
		return nil
	},
}

// runExport writes cases in the requested format, generating a timestamped
// file name in the export directory when out is empty.
func runExport(cases []model.FailureCase, format, out string) (string, error) {
	switch format {
	case "csv":
		if out == "" {
			out = exportPath("csv")
		}
		return out, export.WriteCSV(out, cases)
	case "xlsx":
		if out == "" {
			out = exportPath("xlsx")
		}
		return out, export.WriteXLSX(out, cases)
	default:
		return "", eris.Errorf("unsupported export format %q (want csv or xlsx)", format)
	}
}

func exportPath(ext string) string {
	name := fmt.Sprintf("cirf_analysis_%s.%s", time.Now().Format("20060102_150405"), ext)
	return filepath.Join(cfg.Export.Dir, name)
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "export format: csv or xlsx")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path")
	rootCmd.AddCommand(exportCmd)
}
