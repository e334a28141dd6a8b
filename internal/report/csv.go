package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/UnknownOlympus/hermes/internal/models"
)

// header is the exported column set, one row per candidate in input order.
var header = []string{"Address", "Drive Time (min)", "Distance (miles)", "Status"}

// WriteCSV writes the result sequence as CSV. Error rows keep their status but
// leave the numeric fields blank.
func WriteCSV(w io.Writer, results []models.RouteResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, res := range results {
		driveTime, distance := "", ""
		if res.Leg != nil {
			driveTime = fmt.Sprintf("%.1f", res.Leg.DurationMinutes)
			distance = fmt.Sprintf("%.1f", res.Leg.DistanceMiles)
		}

		record := []string{res.Address, driveTime, distance, string(res.Status)}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row for %q: %w", res.Address, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}

	return nil
}
