package report

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"coatlas/internal/colorscale"
	"coatlas/internal/dataset"
	"coatlas/internal/errors"
	"coatlas/internal/geo"
	"coatlas/internal/metrics"
)

// Builder writes year tables from the dataset store into XLSX workbooks. The
// same builder backs the dashboard's download endpoint and the offline
// export command.
type Builder struct {
	store *dataset.Store
	ramp  colorscale.RampSpec
}

// NewBuilder creates a report builder over a loaded dataset store.
func NewBuilder(store *dataset.Store, ramp colorscale.RampSpec) *Builder {
	return &Builder{store: store, ramp: ramp}
}

// YearWorkbook builds a single-sheet workbook for one year.
func (b *Builder) YearWorkbook(year int) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := b.addYearSheet(f, year, true); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// AllYearsWorkbook builds one sheet per dataset year.
func (b *Builder) AllYearsWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()
	for i, year := range geo.Years {
		if err := b.addYearSheet(f, year, i == 0); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// addYearSheet writes one year's table: every state with a value, descending,
// with its class index and class color, then the states with no reading, then
// summary rows. renameDefault folds the sheet onto excelize's initial Sheet1.
func (b *Builder) addYearSheet(f *excelize.File, year int, renameDefault bool) error {
	slice, err := b.store.Slice(year)
	if err != nil {
		return err
	}

	sheet := fmt.Sprintf("CO %d", year)
	if renameDefault {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return errors.Wrapf(err, "failed to rename sheet for %d", year)
		}
	} else {
		if _, err := f.NewSheet(sheet); err != nil {
			return errors.Wrapf(err, "failed to add sheet for %d", year)
		}
	}

	headers := []string{"State", "CO (mol/m²)", "Class", "Color"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return errors.Wrapf(err, "failed to write header on sheet %s", sheet)
		}
	}

	ranked := metrics.TopN(slice.Observations, len(slice.Observations))

	var classification *colorscale.Classification
	if len(ranked) > 0 {
		classification, err = colorscale.Classify(metrics.Values(slice.Observations), b.ramp)
		if err != nil {
			return err
		}
	}

	row := 2
	for _, rank := range ranked {
		setRow(f, sheet, row,
			rank.State,
			rank.Value,
			classification.ClassOf(rank.Value)+1,
			classification.ColorOf(rank.Value))
		row++
	}
	for _, obs := range slice.Observations {
		if obs.Value == nil {
			setRow(f, sheet, row, obs.State, "no data", "", "")
			row++
		}
	}

	row++ // blank spacer row
	mean := metrics.NationalMean(slice.Observations)
	if mean == nil {
		setRow(f, sheet, row, "National average", "no data", "", "")
	} else {
		vmin, vmax, _ := metrics.Extent(slice.Observations)
		color, err := colorscale.Colorize(colorscale.Normalize(*mean, vmin, vmax), b.ramp)
		if err != nil {
			return err
		}
		setRow(f, sheet, row, "National average", *mean, "", color)
	}

	log.Printf("[Report] Sheet %s written: %d ranked states", sheet, len(ranked))
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells ...interface{}) {
	for i, value := range cells {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, value)
	}
}
