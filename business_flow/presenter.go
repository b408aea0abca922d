package businessflow

import (
	"github.com/ssoogun/outlier.property/app/dto"
	"github.com/ssoogun/outlier.property/models"
	"github.com/ssoogun/outlier.property/utils"
)

// Empty-view notices. An empty table always renders one of these, never an error.
const (
	NoticeNoResults    = "No results found. Try adjusting your filters."
	NoticeNoFavourites = "You haven't favourited any streets yet."
)

// buildStreetRow renders one record for the given view. The favourite key is
// tagged with the view and row ordinal so keys from the two views never
// collide; the toggle control is offered only where the view permits it
// (the favourites view is read-only on purpose: unfavouriting happens from
// the main view).
func buildStreetRow(rec models.StreetRecord, ordinal int, viewTag string, store *FavouritesStore, allowToggle bool) dto.StreetRowDTO {
	mark := models.FavouriteMark{
		Postcode:   rec.Postcode,
		StreetKey:  rec.StreetKey,
		RowOrdinal: ordinal,
		ViewTag:    viewTag,
	}

	return dto.StreetRowDTO{
		StreetKey:                rec.StreetKey,
		Postcode:                 rec.Postcode,
		District:                 rec.District,
		AvgPrice:                 rec.AvgPrice,
		AvgPriceDisplay:          utils.FormatPounds(rec.AvgPrice),
		DistrictMedian:           rec.DistrictMedian,
		DistrictMedianDisplay:    utils.FormatPounds(rec.DistrictMedian),
		TransactionCount:         rec.TransactionCount,
		PercentDifference:        rec.PercentDifference,
		PercentDifferenceDisplay: utils.FormatPercent(rec.PercentDifference),
		Favourite: dto.FavouriteStateDTO{
			Key:        mark.Key(),
			Favourited: store.IsFavourited(rec),
			CanToggle:  allowToggle,
		},
		Map: dto.MapPointDTO{
			Latitude:  rec.Latitude,
			Longitude: rec.Longitude,
			Zoom:      utils.MapZoomLevel,
		},
		Links: dto.LookupLinksDTO{
			Schools:       utils.LookupURL(utils.LookupSchoolsURL, rec.Postcode),
			Hospitals:     utils.LookupURL(utils.LookupHospitalsURL, rec.Postcode),
			TrainStations: utils.LookupURL(utils.LookupTrainsURL, rec.Postcode),
			Developments:  utils.LookupURL(utils.LookupDevelopmentsURL, rec.Postcode),
			HMOLicensing:  utils.LookupURL(utils.LookupHMOLicensingURL, rec.Postcode),
		},
	}
}

// buildStreetRows renders a whole view in input order.
func buildStreetRows(records []models.StreetRecord, viewTag string, store *FavouritesStore, allowToggle bool) []dto.StreetRowDTO {
	rows := make([]dto.StreetRowDTO, 0, len(records))
	for i, rec := range records {
		rows = append(rows, buildStreetRow(rec, i, viewTag, store, allowToggle))
	}
	return rows
}
