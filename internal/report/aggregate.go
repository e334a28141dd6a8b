// Package report shapes batch results into rows for display and export.
package report

import (
	"fmt"

	"github.com/UnknownOlympus/hermes/internal/models"
)

// notAvailable is rendered for numeric fields of unresolved candidates.
const notAvailable = "N/A"

// Row is one display row for a resolved candidate.
type Row struct {
	Address   string `json:"address"`
	DriveTime string `json:"drive_time"`
	Distance  string `json:"distance"`
	Status    string `json:"status"`
	Detail    string `json:"detail,omitempty"`
}

// Aggregate shapes an ordered result sequence into display rows and a summary.
// It is a pure function: the same input always yields the same rows and counts,
// and the counts always sum to the input length.
func Aggregate(results []models.RouteResult) ([]Row, models.Summary) {
	rows := make([]Row, 0, len(results))
	summary := models.Summary{Total: len(results)}

	for _, res := range results {
		row := Row{
			Address:   res.Address,
			DriveTime: notAvailable,
			Distance:  notAvailable,
			Status:    string(res.Status),
			Detail:    res.ErrorDetail,
		}

		if res.Leg != nil {
			row.DriveTime = fmt.Sprintf("%.1f", res.Leg.DurationMinutes)
			row.Distance = fmt.Sprintf("%.1f", res.Leg.DistanceMiles)
		}

		switch res.Status {
		case models.StatusWithinRange:
			summary.WithinRange++
		case models.StatusOutOfRange:
			summary.OutOfRange++
		default:
			summary.Errored++
		}

		rows = append(rows, row)
	}

	return rows, summary
}
