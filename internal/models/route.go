package models

// Leg holds the resolved driving metrics for one origin-to-destination pair.
type Leg struct {
	DurationMinutes float64 // DurationMinutes is the driving time in minutes.
	DistanceMiles   float64 // DistanceMiles is the driving distance in miles.
}

// Status classifies a route result against the drive-time threshold.
type Status string

const (
	// StatusWithinRange means the drive time is less than or equal to the threshold.
	StatusWithinRange Status = "Within range"
	// StatusOutOfRange means the drive time exceeds the threshold.
	StatusOutOfRange Status = "Out of range"
	// StatusError means the candidate could not be resolved.
	StatusError Status = "Error"
)

// RouteResult is the outcome of resolving a single candidate. Exactly one is
// produced per candidate; Leg is nil if and only if Status is StatusError.
type RouteResult struct {
	Address     string `json:"address"`
	Position    int    `json:"position"`
	Leg         *Leg   `json:"-"`
	Status      Status `json:"status"`
	ErrorDetail string `json:"error_detail,omitempty"`
}

// Summary holds the per-status counts for one batch run.
type Summary struct {
	Total       int `json:"total"`
	WithinRange int `json:"within_range"`
	OutOfRange  int `json:"out_of_range"`
	Errored     int `json:"errored"`
}
