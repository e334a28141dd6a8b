package report

import (
	"fmt"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/xuri/excelize/v2"
)

// resultSheet is the sheet name used for exported results.
const resultSheet = "Results"

// WriteXLSX writes the result sequence to an Excel workbook at path, using the
// same columns as the CSV export. Numeric fields are written as numbers so the
// sheet stays sortable; error rows leave them empty.
func WriteXLSX(path string, results []models.RouteResult) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(resultSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(resultSheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	headers := make([]interface{}, len(header))
	for i, h := range header {
		headers[i] = h
	}
	if err = sw.SetRow("A1", headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, res := range results {
		row := []interface{}{res.Address, nil, nil, string(res.Status)}
		if res.Leg != nil {
			row[1] = res.Leg.DurationMinutes
			row[2] = res.Leg.DistanceMiles
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err = sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row for %q: %w", res.Address, err)
		}
	}

	if err = sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush stream writer: %w", err)
	}

	f.SetActiveSheet(index)
	if err = f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}

	if err = f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}
