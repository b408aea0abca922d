// Package businessflow contains use cases for per-session favourite bookmarks
package businessflow

import (
	"context"

	"github.com/ssoogun/outlier.property/app/dto"
	"github.com/ssoogun/outlier.property/models"
	"github.com/ssoogun/outlier.property/repository"
)

// FavouritesFlow defines the favourite toggle and the favourites-only view.
// The store belongs to the caller's session and is passed in per request so
// concurrent sessions stay isolated.
type FavouritesFlow interface {
	ToggleFavourite(ctx context.Context, req *dto.ToggleFavouriteRequest, store *FavouritesStore, metadata *ClientMetadata) (*dto.ToggleFavouriteResponse, error)
	ListFavourites(ctx context.Context, store *FavouritesStore, metadata *ClientMetadata) (*dto.ListStreetsResponse, error)
}

type FavouritesFlowImpl struct {
	streetRepo repository.StreetRepository
}

func NewFavouritesFlow(streetRepo repository.StreetRepository) FavouritesFlow {
	return &FavouritesFlowImpl{streetRepo: streetRepo}
}

// ToggleFavourite flips the membership of the identified row and reports the
// resulting state. The favourites view is read-only: toggles may only
// originate from the main view.
func (f *FavouritesFlowImpl) ToggleFavourite(ctx context.Context, req *dto.ToggleFavouriteRequest, store *FavouritesStore, metadata *ClientMetadata) (*dto.ToggleFavouriteResponse, error) {
	if req.ViewTag == models.ViewTagFavourites {
		return nil, NewBusinessError("FAVOURITES_VIEW_READ_ONLY", "Favourites view does not allow toggling", ErrFavouriteViewReadOnly)
	}

	mark := models.FavouriteMark{
		Postcode:   req.Postcode,
		StreetKey:  req.StreetKey,
		RowOrdinal: req.RowOrdinal,
		ViewTag:    req.ViewTag,
	}
	favourited := store.Toggle(mark)

	return &dto.ToggleFavouriteResponse{
		Key:        mark.Key(),
		Favourited: favourited,
	}, nil
}

// ListFavourites resolves the stored marks against the full unfiltered
// dataset, so a favourited street stays visible here no matter what the
// main-view criteria currently exclude. Toggles are disabled in this view.
func (f *FavouritesFlowImpl) ListFavourites(ctx context.Context, store *FavouritesStore, metadata *ClientMetadata) (*dto.ListStreetsResponse, error) {
	records, err := f.streetRepo.All(ctx)
	if err != nil {
		return nil, NewBusinessError("LIST_FAVOURITES_FAILED", "Failed to load street dataset", err)
	}

	matched := store.MatchingRecords(records)
	rows := buildStreetRows(matched, models.ViewTagFavourites, store, false)

	res := &dto.ListStreetsResponse{
		Message: "Favourite streets retrieved successfully",
		Total:   len(rows),
		Items:   rows,
	}
	if len(rows) == 0 {
		res.Notice = NoticeNoFavourites
	}
	return res, nil
}
