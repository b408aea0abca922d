// Package testing provides test utilities and dataset fixtures for testing the street exploration service
package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ssoogun/outlier.property/models"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct{}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures() *TestFixtures {
	return &TestFixtures{}
}

// CreateTestStreet creates a street record with sensible defaults. The
// ordinal keeps generated streets distinct within one dataset.
func (tf *TestFixtures) CreateTestStreet(ordinal int) models.StreetRecord {
	postcode := fmt.Sprintf("SW%d 1AA", ordinal)
	street := fmt.Sprintf("Test Street %d", ordinal)
	return models.StreetRecord{
		StreetKey:         fmt.Sprintf("%s | %s", street, postcode),
		Postcode:          postcode,
		District:          fmt.Sprintf("SW%d", ordinal),
		Latitude:          51.49 + float64(ordinal)*0.01,
		Longitude:         -0.14 - float64(ordinal)*0.01,
		AvgPrice:          400000 + float64(ordinal)*25000,
		DistrictMedian:    500000 + float64(ordinal)*25000,
		PercentDifference: 20,
		TransactionCount:  3 + ordinal,
	}
}

// CreateTestStreets creates n distinct street records.
func (tf *TestFixtures) CreateTestStreets(n int) []models.StreetRecord {
	records := make([]models.StreetRecord, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, tf.CreateTestStreet(i))
	}
	return records
}

// DatasetHeader is the canonical column order used by WriteCSVDataset.
var DatasetHeader = []string{
	"street_key", "postcode", "district", "Latitude", "Longitude",
	"avg_price", "district_median", "% difference", "transaction_count",
}

// WriteCSVDataset writes the given rows as a CSV dataset file under dir and
// returns its path. Rows are raw cell values so tests can exercise the
// loader's coercion and drop behaviour directly.
func (tf *TestFixtures) WriteCSVDataset(dir string, rows [][]string) (string, error) {
	var b strings.Builder
	b.WriteString(strings.Join(DatasetHeader, ","))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}

	path := filepath.Join(dir, "streets.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write dataset fixture: %w", err)
	}
	return path, nil
}

// CSVRow renders a street record as raw CSV cells in DatasetHeader order.
func (tf *TestFixtures) CSVRow(rec models.StreetRecord) []string {
	return []string{
		rec.StreetKey,
		rec.Postcode,
		rec.District,
		fmt.Sprintf("%v", rec.Latitude),
		fmt.Sprintf("%v", rec.Longitude),
		fmt.Sprintf("%v", rec.AvgPrice),
		fmt.Sprintf("%v", rec.DistrictMedian),
		fmt.Sprintf("%v", rec.PercentDifference),
		fmt.Sprintf("%d", rec.TransactionCount),
	}
}
