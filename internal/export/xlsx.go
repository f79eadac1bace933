package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/cirf-research/cirf-cli/internal/model"
)

// WriteXLSX writes the cases to path as a single-sheet workbook.
func WriteXLSX(path string, cases []model.FailureCase) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Failure Cases")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, name := range Header() {
		header.AddCell().SetString(name)
	}
	for i := range cases {
		row := sheet.AddRow()
		for _, cell := range Row(&cases[i]) {
			row.AddCell().SetString(cell)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}
