package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/ssoogun/outlier.property/app/dto"
	businessflow "github.com/ssoogun/outlier.property/business_flow"
	"github.com/ssoogun/outlier.property/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStreetRepository serves a fixed record slice, or a fixed error, so the
// flows can be exercised without touching the filesystem.
type stubStreetRepository struct {
	records   []models.StreetRecord
	districts []string
	err       error
}

func (s *stubStreetRepository) All(ctx context.Context) ([]models.StreetRecord, error) {
	return s.records, s.err
}

func (s *stubStreetRepository) Districts(ctx context.Context) ([]string, error) {
	return s.districts, s.err
}

func (s *stubStreetRepository) DroppedRows() int { return 0 }

func testMetadata() *businessflow.ClientMetadata {
	return businessflow.NewClientMetadata("127.0.0.1", "test-agent")
}

func TestStreetFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("ListStreetsRendersFilteredRows", func(t *testing.T) {
		repo := &stubStreetRepository{records: undervaluedDataset()}
		flow := businessflow.NewStreetFlow(repo)
		store := businessflow.NewFavouritesStore()

		minPct := 25.0
		req := &dto.ListStreetsRequest{
			Districts:       []string{"SW9"},
			MinTransactions: 3,
			MinPercentDiff:  &minPct,
		}

		res, err := flow.ListStreets(ctx, req, store, testMetadata())
		require.NoError(t, err)
		require.Equal(t, 1, res.Total)
		require.Len(t, res.Items, 1)
		assert.Empty(t, res.Notice)

		row := res.Items[0]
		assert.Equal(t, "Bargain Row | SW9 1AA", row.StreetKey)
		assert.Equal(t, "£375,000", row.AvgPriceDisplay)
		assert.Equal(t, "£500,000", row.DistrictMedianDisplay)
		assert.Equal(t, "25.0%", row.PercentDifferenceDisplay)
		assert.True(t, row.Favourite.CanToggle)
		assert.False(t, row.Favourite.Favourited)
		assert.Equal(t, 12, row.Map.Zoom)
		assert.InDelta(t, 51.46, row.Map.Latitude, 0.001)
		assert.Contains(t, row.Links.Schools, "schools+near+SW9+1AA")
		assert.Contains(t, row.Links.HMOLicensing, "HMO+licensing+SW9+1AA")
	})

	t.Run("ZeroMaxPriceLeavesCeilingOpen", func(t *testing.T) {
		repo := &stubStreetRepository{records: undervaluedDataset()}
		flow := businessflow.NewStreetFlow(repo)
		store := businessflow.NewFavouritesStore()

		res, err := flow.ListStreets(ctx, &dto.ListStreetsRequest{MinTransactions: 1}, store, testMetadata())
		require.NoError(t, err)
		assert.Equal(t, 4, res.Total)
	})

	t.Run("EmptyResultCarriesNotice", func(t *testing.T) {
		repo := &stubStreetRepository{records: undervaluedDataset()}
		flow := businessflow.NewStreetFlow(repo)
		store := businessflow.NewFavouritesStore()

		req := &dto.ListStreetsRequest{Districts: []string{"NOWHERE"}, MinTransactions: 1}
		res, err := flow.ListStreets(ctx, req, store, testMetadata())
		require.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.Empty(t, res.Items)
		assert.Equal(t, businessflow.NoticeNoResults, res.Notice)
	})

	t.Run("EmptyDatasetRendersNoticesInBothViews", func(t *testing.T) {
		repo := &stubStreetRepository{}
		store := businessflow.NewFavouritesStore()

		mainRes, err := businessflow.NewStreetFlow(repo).ListStreets(ctx, &dto.ListStreetsRequest{MinTransactions: 1}, store, testMetadata())
		require.NoError(t, err)
		assert.Equal(t, businessflow.NoticeNoResults, mainRes.Notice)

		favRes, err := businessflow.NewFavouritesFlow(repo).ListFavourites(ctx, store, testMetadata())
		require.NoError(t, err)
		assert.Equal(t, businessflow.NoticeNoFavourites, favRes.Notice)
	})

	t.Run("RepositoryErrorBecomesBusinessError", func(t *testing.T) {
		repo := &stubStreetRepository{err: errors.New("disk gone")}
		flow := businessflow.NewStreetFlow(repo)
		store := businessflow.NewFavouritesStore()

		_, err := flow.ListStreets(ctx, &dto.ListStreetsRequest{MinTransactions: 1}, store, testMetadata())
		require.Error(t, err)
		var be *businessflow.BusinessError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, "LIST_STREETS_FAILED", be.Code)
	})

	t.Run("ListDistricts", func(t *testing.T) {
		repo := &stubStreetRepository{districts: []string{"E1", "N6", "SW9"}}
		flow := businessflow.NewStreetFlow(repo)

		res, err := flow.ListDistricts(ctx, testMetadata())
		require.NoError(t, err)
		assert.Equal(t, []string{"E1", "N6", "SW9"}, res.Districts)
	})
}

func TestFavouritesFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("ToggleThenListResolvesAgainstFullDataset", func(t *testing.T) {
		records := undervaluedDataset()
		repo := &stubStreetRepository{records: records}
		favFlow := businessflow.NewFavouritesFlow(repo)
		store := businessflow.NewFavouritesStore()

		toggled, err := favFlow.ToggleFavourite(ctx, &dto.ToggleFavouriteRequest{
			Postcode:   records[0].Postcode,
			StreetKey:  records[0].StreetKey,
			RowOrdinal: 0,
			ViewTag:    models.ViewTagMain,
		}, store, testMetadata())
		require.NoError(t, err)
		assert.True(t, toggled.Favourited)

		res, err := favFlow.ListFavourites(ctx, store, testMetadata())
		require.NoError(t, err)
		require.Equal(t, 1, res.Total)
		assert.Equal(t, records[0].StreetKey, res.Items[0].StreetKey)
		// The favourites view offers no toggle control.
		assert.False(t, res.Items[0].Favourite.CanToggle)
		assert.True(t, res.Items[0].Favourite.Favourited)
	})

	t.Run("FavouriteSurvivesMainViewFilters", func(t *testing.T) {
		records := undervaluedDataset()
		repo := &stubStreetRepository{records: records}
		streetFlow := businessflow.NewStreetFlow(repo)
		favFlow := businessflow.NewFavouritesFlow(repo)
		store := businessflow.NewFavouritesStore()

		_, err := favFlow.ToggleFavourite(ctx, &dto.ToggleFavouriteRequest{
			Postcode:  records[0].Postcode,
			StreetKey: records[0].StreetKey,
			ViewTag:   models.ViewTagMain,
		}, store, testMetadata())
		require.NoError(t, err)

		// Filter the favourited street out of the main view entirely.
		mainRes, err := streetFlow.ListStreets(ctx, &dto.ListStreetsRequest{
			Districts:       []string{"N6"},
			MinTransactions: 1,
		}, store, testMetadata())
		require.NoError(t, err)
		assert.Equal(t, 1, mainRes.Total)

		favRes, err := favFlow.ListFavourites(ctx, store, testMetadata())
		require.NoError(t, err)
		require.Equal(t, 1, favRes.Total)
		assert.Equal(t, records[0].StreetKey, favRes.Items[0].StreetKey)
	})

	t.Run("SecondToggleUnfavourites", func(t *testing.T) {
		records := undervaluedDataset()
		repo := &stubStreetRepository{records: records}
		favFlow := businessflow.NewFavouritesFlow(repo)
		store := businessflow.NewFavouritesStore()

		req := &dto.ToggleFavouriteRequest{
			Postcode:  records[1].Postcode,
			StreetKey: records[1].StreetKey,
			ViewTag:   models.ViewTagMain,
		}
		first, err := favFlow.ToggleFavourite(ctx, req, store, testMetadata())
		require.NoError(t, err)
		assert.True(t, first.Favourited)

		second, err := favFlow.ToggleFavourite(ctx, req, store, testMetadata())
		require.NoError(t, err)
		assert.False(t, second.Favourited)

		res, err := favFlow.ListFavourites(ctx, store, testMetadata())
		require.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.Equal(t, businessflow.NoticeNoFavourites, res.Notice)
	})

	t.Run("ToggleFromFavouritesViewIsRejected", func(t *testing.T) {
		repo := &stubStreetRepository{records: undervaluedDataset()}
		favFlow := businessflow.NewFavouritesFlow(repo)
		store := businessflow.NewFavouritesStore()

		_, err := favFlow.ToggleFavourite(ctx, &dto.ToggleFavouriteRequest{
			Postcode:  "SW9 1AA",
			StreetKey: "Bargain Row | SW9 1AA",
			ViewTag:   models.ViewTagFavourites,
		}, store, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsFavouriteViewReadOnly(err))
		assert.Equal(t, 0, store.Len())
	})
}
