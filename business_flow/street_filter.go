package businessflow

import (
	"github.com/ssoogun/outlier.property/models"
)

// ApplyFilter returns the records satisfying every criterion of the filter.
// It is a pure function: the input slice is never mutated and the output
// preserves the relative order of the input. Absent criteria impose no
// constraint, all numeric ranges are inclusive on both ends, and criteria
// that exclude everything yield an empty result, never an error.
func ApplyFilter(records []models.StreetRecord, filter models.StreetFilter) []models.StreetRecord {
	out := make([]models.StreetRecord, 0, len(records))
	for _, rec := range records {
		if matchesFilter(rec, filter) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesFilter(rec models.StreetRecord, filter models.StreetFilter) bool {
	if len(filter.Districts) > 0 && !containsString(filter.Districts, rec.District) {
		return false
	}
	if rec.TransactionCount < filter.MinTransactions {
		return false
	}
	if rec.AvgPrice < filter.MinPrice || rec.AvgPrice > filter.MaxPrice {
		return false
	}
	if filter.MinPercentDiff != nil && rec.PercentDifference < *filter.MinPercentDiff {
		return false
	}
	if filter.MaxPercentDiff != nil && rec.PercentDifference > *filter.MaxPercentDiff {
		return false
	}
	return true
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
