// Package validate performs local address checks before anything is sent to a
// routing provider. Everything here is pure string work; no network calls.
package validate

import (
	"errors"
	"strings"

	"github.com/UnknownOlympus/hermes/internal/models"
)

// ErrEmptyAddress is returned when an address is blank after trimming.
var ErrEmptyAddress = errors.New("address is empty")

// Address normalizes a raw address by collapsing interior whitespace and
// trimming the ends. An address that is blank after normalization is rejected.
func Address(raw string) (string, error) {
	norm := strings.Join(strings.Fields(raw), " ")
	if norm == "" {
		return "", ErrEmptyAddress
	}

	return norm, nil
}

// NormalizeBatch normalizes each line, drops blank lines and removes exact
// duplicates while preserving first-seen order. It is idempotent.
func NormalizeBatch(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		norm, err := Address(line)
		if err != nil {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}

		seen[norm] = struct{}{}
		out = append(out, norm)
	}

	return out
}

// Candidates builds the ordered candidate list for one batch run. Lines are
// normalized and deduplicated, and any line equal to the reference address is
// dropped so the reference never appears among its own candidates.
func Candidates(reference string, lines []string) []models.Candidate {
	ref, _ := Address(reference)

	candidates := make([]models.Candidate, 0, len(lines))
	for _, addr := range NormalizeBatch(lines) {
		if ref != "" && addr == ref {
			continue
		}
		candidates = append(candidates, models.Candidate{Address: addr, Position: len(candidates)})
	}

	return candidates
}
