// Package repository provides data access for the street price dataset
package repository

import (
	"context"

	"github.com/ssoogun/outlier.property/models"
)

// StreetRepository serves the loaded dataset. Implementations return fully
// validated records in the order of the source table; rows that failed
// coercion of a mandatory field are never visible through this interface.
type StreetRepository interface {
	// All returns every valid record of the current dataset.
	All(ctx context.Context) ([]models.StreetRecord, error)

	// Districts returns the distinct district values, sorted ascending.
	Districts(ctx context.Context) ([]string, error)

	// DroppedRows reports how many source rows the last load excluded.
	DroppedRows() int
}
