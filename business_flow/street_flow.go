// Package businessflow contains use cases for browsing the street dataset
package businessflow

import (
	"context"
	"math"

	"github.com/ssoogun/outlier.property/app/dto"
	"github.com/ssoogun/outlier.property/models"
	"github.com/ssoogun/outlier.property/repository"
)

// StreetFlow defines the all-results view and its supporting lookups
type StreetFlow interface {
	ListStreets(ctx context.Context, req *dto.ListStreetsRequest, store *FavouritesStore, metadata *ClientMetadata) (*dto.ListStreetsResponse, error)
	ListDistricts(ctx context.Context, metadata *ClientMetadata) (*dto.ListDistrictsResponse, error)
}

type StreetFlowImpl struct {
	streetRepo repository.StreetRepository
}

func NewStreetFlow(streetRepo repository.StreetRepository) StreetFlow {
	return &StreetFlowImpl{streetRepo: streetRepo}
}

// ListStreets applies the request criteria to the dataset and renders the
// all-results view with favourite toggles enabled.
func (f *StreetFlowImpl) ListStreets(ctx context.Context, req *dto.ListStreetsRequest, store *FavouritesStore, metadata *ClientMetadata) (*dto.ListStreetsResponse, error) {
	records, err := f.streetRepo.All(ctx)
	if err != nil {
		return nil, NewBusinessError("LIST_STREETS_FAILED", "Failed to load street dataset", err)
	}

	filtered := ApplyFilter(records, toStreetFilter(req))
	rows := buildStreetRows(filtered, models.ViewTagMain, store, true)

	res := &dto.ListStreetsResponse{
		Message: "Streets retrieved successfully",
		Total:   len(rows),
		Items:   rows,
	}
	if len(rows) == 0 {
		res.Notice = NoticeNoResults
	}
	return res, nil
}

// ListDistricts returns the distinct district values for the selector.
func (f *StreetFlowImpl) ListDistricts(ctx context.Context, metadata *ClientMetadata) (*dto.ListDistrictsResponse, error) {
	districts, err := f.streetRepo.Districts(ctx)
	if err != nil {
		return nil, NewBusinessError("LIST_DISTRICTS_FAILED", "Failed to list districts", err)
	}
	return &dto.ListDistrictsResponse{
		Message:   "Districts retrieved successfully",
		Districts: districts,
	}, nil
}

// toStreetFilter translates the request DTO into domain criteria. A zero
// MaxPrice means the simplified ceiling was not supplied, so the upper
// bound is left open.
func toStreetFilter(req *dto.ListStreetsRequest) models.StreetFilter {
	filter := models.StreetFilter{
		Districts:       req.Districts,
		MinTransactions: req.MinTransactions,
		MinPrice:        req.MinPrice,
		MaxPrice:        req.MaxPrice,
		MinPercentDiff:  req.MinPercentDiff,
		MaxPercentDiff:  req.MaxPercentDiff,
	}
	if filter.MaxPrice == 0 {
		filter.MaxPrice = math.MaxFloat64
	}
	return filter
}
