// Package tests contains test cases for the dataset loader and business flows to avoid circular imports
package tests

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ssoogun/outlier.property/repository"
	testingutil "github.com/ssoogun/outlier.property/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStreetRepository(t *testing.T) {
	fixtures := testingutil.NewTestFixtures()
	ctx := context.Background()

	t.Run("LoadsWellFormedRows", func(t *testing.T) {
		recs := fixtures.CreateTestStreets(3)
		rows := [][]string{}
		for _, rec := range recs {
			rows = append(rows, fixtures.CSVRow(rec))
		}
		path, err := fixtures.WriteCSVDataset(t.TempDir(), rows)
		require.NoError(t, err)

		repo := repository.NewFileStreetRepository(path, false)
		require.NoError(t, repo.Load(ctx))

		loaded, err := repo.All(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 3)
		assert.Equal(t, 0, repo.DroppedRows())
		assert.Equal(t, recs[0].StreetKey, loaded[0].StreetKey)
		assert.Equal(t, recs[0].Postcode, loaded[0].Postcode)
		assert.InDelta(t, recs[0].AvgPrice, loaded[0].AvgPrice, 0.001)
		assert.Equal(t, recs[0].TransactionCount, loaded[0].TransactionCount)
	})

	t.Run("DropsRowsMissingEssentialNumericCells", func(t *testing.T) {
		rows := [][]string{
			{"Good Street | SW1 1AA", "SW1 1AA", "SW1", "51.5", "-0.14", "400000", "500000", "20", "5"},
			{"No Latitude | SW1 2AA", "SW1 2AA", "SW1", "", "-0.14", "400000", "500000", "20", "5"},
			{"No AvgPrice | SW1 3AA", "SW1 3AA", "SW1", "51.5", "-0.14", "n/a", "500000", "20", "5"},
			{"No Median | SW1 4AA", "SW1 4AA", "SW1", "51.5", "-0.14", "400000", "", "20", "5"},
		}
		path, err := fixtures.WriteCSVDataset(t.TempDir(), rows)
		require.NoError(t, err)

		repo := repository.NewFileStreetRepository(path, false)
		require.NoError(t, repo.Load(ctx))

		loaded, err := repo.All(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "Good Street | SW1 1AA", loaded[0].StreetKey)
		assert.Equal(t, 3, repo.DroppedRows())
	})

	t.Run("CoercesDecoratedNumericCells", func(t *testing.T) {
		rows := [][]string{
			{"Pretty Street | E1 1AA", "E1 1AA", "E1", "51.52", "-0.05", "£450000", "£600000", "25.0%", "7"},
		}
		path, err := fixtures.WriteCSVDataset(t.TempDir(), rows)
		require.NoError(t, err)

		repo := repository.NewFileStreetRepository(path, false)
		require.NoError(t, repo.Load(ctx))

		loaded, err := repo.All(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.InDelta(t, 450000, loaded[0].AvgPrice, 0.001)
		assert.InDelta(t, 600000, loaded[0].DistrictMedian, 0.001)
		assert.InDelta(t, 25.0, loaded[0].PercentDifference, 0.001)
	})

	t.Run("DerivesMissingFields", func(t *testing.T) {
		// Blank postcode comes back from the street key suffix; a blank
		// percent difference is recomputed from the two prices.
		rows := [][]string{
			{"Derived Street | N1 9GU", "", "N1", "51.53", "-0.11", "300000", "400000", "", "4"},
		}
		path, err := fixtures.WriteCSVDataset(t.TempDir(), rows)
		require.NoError(t, err)

		repo := repository.NewFileStreetRepository(path, false)
		require.NoError(t, repo.Load(ctx))

		loaded, err := repo.All(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "N1 9GU", loaded[0].Postcode)
		assert.InDelta(t, 25.0, loaded[0].PercentDifference, 0.001)
	})

	t.Run("MissingTransactionCountDefaultsToZero", func(t *testing.T) {
		rows := [][]string{
			{"Quiet Street | W1 1AA", "W1 1AA", "W1", "51.51", "-0.15", "800000", "900000", "11.1", ""},
		}
		path, err := fixtures.WriteCSVDataset(t.TempDir(), rows)
		require.NoError(t, err)

		repo := repository.NewFileStreetRepository(path, false)
		require.NoError(t, repo.Load(ctx))

		loaded, err := repo.All(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, 0, loaded[0].TransactionCount)
	})

	t.Run("DistrictsAreDistinctAndSorted", func(t *testing.T) {
		rows := [][]string{
			{"A Street | SW1 1AA", "SW1 1AA", "SW1", "51.5", "-0.14", "400000", "500000", "20", "5"},
			{"B Street | E1 1AA", "E1 1AA", "E1", "51.52", "-0.05", "350000", "450000", "22", "6"},
			{"C Street | SW1 2AA", "SW1 2AA", "SW1", "51.5", "-0.13", "420000", "500000", "16", "3"},
		}
		path, err := fixtures.WriteCSVDataset(t.TempDir(), rows)
		require.NoError(t, err)

		repo := repository.NewFileStreetRepository(path, false)
		require.NoError(t, repo.Load(ctx))

		districts, err := repo.Districts(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"E1", "SW1"}, districts)
	})

	t.Run("MissingColumnsFailLoad", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "broken.csv")
		require.NoError(t, os.WriteFile(path, []byte("street_key,postcode\nA Street | SW1 1AA,SW1 1AA\n"), 0o644))

		repo := repository.NewFileStreetRepository(path, false)
		err := repo.Load(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required columns")
		assert.Contains(t, err.Error(), "avg_price")
	})

	t.Run("MissingFileFailsLoad", func(t *testing.T) {
		repo := repository.NewFileStreetRepository(t.TempDir()+"/absent.csv", false)
		require.Error(t, repo.Load(ctx))
	})

	t.Run("ReloadPicksUpReplacedFile", func(t *testing.T) {
		dir := t.TempDir()
		recs := fixtures.CreateTestStreets(2)
		path, err := fixtures.WriteCSVDataset(dir, [][]string{fixtures.CSVRow(recs[0])})
		require.NoError(t, err)

		repo := repository.NewFileStreetRepository(path, true)
		require.NoError(t, repo.Load(ctx))
		loaded, err := repo.All(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)

		// Same path, different content and size: next access re-parses.
		_, err = fixtures.WriteCSVDataset(dir, [][]string{fixtures.CSVRow(recs[0]), fixtures.CSVRow(recs[1])})
		require.NoError(t, err)

		loaded, err = repo.All(ctx)
		require.NoError(t, err)
		assert.Len(t, loaded, 2)
	})
}
