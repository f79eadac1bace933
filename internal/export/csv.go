package export

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"

	"github.com/cirf-research/cirf-cli/internal/model"
)

// WriteCSV writes the cases to path as CSV with a header row.
func WriteCSV(path string, cases []model.FailureCase) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(Header()); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for i := range cases {
		if err := w.Write(Row(&cases[i])); err != nil {
			return eris.Wrapf(err, "export: write csv row %d", i)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return nil
}
