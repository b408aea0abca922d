// Package models contains the domain entities for the street explorer
package models

// StreetRecord is one fully-validated row of the street price table.
// Records are constructed once at load time and never mutated afterwards;
// rows that failed coercion of a mandatory field never become records.
type StreetRecord struct {
	StreetKey         string  `json:"street_key"` // "<street name> | <postcode>"
	Postcode          string  `json:"postcode"`
	District          string  `json:"district"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	AvgPrice          float64 `json:"avg_price"`
	DistrictMedian    float64 `json:"district_median"`
	PercentDifference float64 `json:"percent_difference"`
	TransactionCount  int     `json:"transaction_count"`
}

// StreetFilter holds the criteria applied to the loaded dataset.
// Absent criteria impose no constraint: an empty district set matches
// every district and nil percent-difference bounds skip that predicate.
type StreetFilter struct {
	Districts       []string
	MinTransactions int
	MinPrice        float64
	MaxPrice        float64
	MinPercentDiff  *float64
	MaxPercentDiff  *float64
}
