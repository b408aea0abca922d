package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ssoogun/outlier.property/models"
	"github.com/xuri/excelize/v2"
)

// Canonical column names; headers are matched case-insensitively so both the
// "District" and "district" conventions of the upstream exports are accepted.
const (
	colDistrict       = "district"
	colPostcode       = "postcode"
	colStreetKey      = "street_key"
	colLatitude       = "latitude"
	colLongitude      = "longitude"
	colAvgPrice       = "avg_price"
	colDistrictMedian = "district_median"
	colPercentDiff    = "% difference"
	colPercentDiffAlt = "percent_difference"
	colTransactions   = "transaction_count"
)

// FileStreetRepository loads the street table from a CSV or XLSX file and
// caches the parsed records in memory. The cache is keyed by the file's
// mtime and size: an unchanged source is never re-parsed, a changed source
// is re-parsed on the next access when reload-on-change is enabled.
type FileStreetRepository struct {
	path           string
	reloadOnChange bool

	mu        sync.RWMutex
	loaded    bool
	records   []models.StreetRecord
	districts []string
	dropped   int
	srcMod    time.Time
	srcSize   int64
}

// NewFileStreetRepository creates a repository over the given dataset file.
// No I/O happens until Load or the first access.
func NewFileStreetRepository(path string, reloadOnChange bool) *FileStreetRepository {
	return &FileStreetRepository{path: path, reloadOnChange: reloadOnChange}
}

// Load eagerly parses the dataset. Startup calls this once so a missing or
// malformed file fails the process visibly instead of on the first request.
func (r *FileStreetRepository) Load(ctx context.Context) error {
	return r.ensureLoaded(ctx)
}

// All returns every valid record of the current dataset in source order.
// The returned slice is shared and must not be mutated by callers.
func (r *FileStreetRepository) All(ctx context.Context) ([]models.StreetRecord, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.records, nil
}

// Districts returns the distinct district values, sorted ascending.
func (r *FileStreetRepository) Districts(ctx context.Context) ([]string, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.districts, nil
}

// DroppedRows reports how many source rows the last load excluded.
func (r *FileStreetRepository) DroppedRows() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dropped
}

func (r *FileStreetRepository) ensureLoaded(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(r.path)
	if err != nil {
		return fmt.Errorf("failed to stat dataset file: %w", err)
	}

	r.mu.RLock()
	fresh := r.loaded && (!r.reloadOnChange || (info.ModTime().Equal(r.srcMod) && info.Size() == r.srcSize))
	r.mu.RUnlock()
	if fresh {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check under the write lock; another request may have loaded already.
	if r.loaded && (!r.reloadOnChange || (info.ModTime().Equal(r.srcMod) && info.Size() == r.srcSize)) {
		return nil
	}

	rows, err := r.readRows()
	if err != nil {
		return err
	}

	records, districts, dropped, err := normalizeRows(rows)
	if err != nil {
		return err
	}

	r.records = records
	r.districts = districts
	r.dropped = dropped
	r.srcMod = info.ModTime()
	r.srcSize = info.Size()
	r.loaded = true

	datasetRowsLoaded.Set(float64(len(records)))
	datasetRowsDropped.Set(float64(dropped))
	datasetLoadsTotal.Inc()
	log.Printf("Dataset loaded from %s: %d rows kept, %d rows dropped", r.path, len(records), dropped)

	return nil
}

// readRows reads the raw table including the header row.
func (r *FileStreetRepository) readRows() ([][]string, error) {
	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".xlsx":
		return readXLSXRows(r.path)
	default:
		return readCSVRows(r.path)
	}
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows are handled per-cell
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset CSV: %w", err)
	}
	return rows, nil
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// normalizeRows coerces the raw table into StreetRecords. Numeric cells are
// parsed leniently; a row missing any of latitude, longitude, avg_price or
// district_median is dropped entirely, never kept partially filled.
func normalizeRows(rows [][]string) ([]models.StreetRecord, []string, int, error) {
	if len(rows) == 0 {
		return nil, nil, 0, fmt.Errorf("dataset is empty: missing header row")
	}

	idx, err := resolveColumns(rows[0])
	if err != nil {
		return nil, nil, 0, err
	}

	records := make([]models.StreetRecord, 0, len(rows)-1)
	districtSet := make(map[string]struct{})
	dropped := 0

	for _, row := range rows[1:] {
		lat, latOK := parseNumericCell(cell(row, idx.latitude))
		lon, lonOK := parseNumericCell(cell(row, idx.longitude))
		avg, avgOK := parseNumericCell(cell(row, idx.avgPrice))
		median, medianOK := parseNumericCell(cell(row, idx.districtMedian))
		if !latOK || !lonOK || !avgOK || !medianOK {
			dropped++
			continue
		}

		streetKey := strings.TrimSpace(cell(row, idx.streetKey))
		postcode := strings.TrimSpace(cell(row, idx.postcode))
		if postcode == "" {
			// street keys follow the "<street> | <postcode>" convention
			if i := strings.LastIndex(streetKey, "|"); i >= 0 {
				postcode = strings.TrimSpace(streetKey[i+1:])
			}
		}

		pctDiff, pctOK := parseNumericCell(cell(row, idx.percentDiff))
		if !pctOK && median != 0 {
			// upstream occasionally omits the precomputed column; the value
			// is recoverable from the two prices it was derived from
			pctDiff = (median - avg) / median * 100
		}

		txns := 0
		if v, ok := parseNumericCell(cell(row, idx.transactions)); ok {
			txns = int(v)
		}

		district := strings.TrimSpace(cell(row, idx.district))
		if district != "" {
			districtSet[district] = struct{}{}
		}

		records = append(records, models.StreetRecord{
			StreetKey:         streetKey,
			Postcode:          postcode,
			District:          district,
			Latitude:          lat,
			Longitude:         lon,
			AvgPrice:          avg,
			DistrictMedian:    median,
			PercentDifference: pctDiff,
			TransactionCount:  txns,
		})
	}

	districts := make([]string, 0, len(districtSet))
	for d := range districtSet {
		districts = append(districts, d)
	}
	sort.Strings(districts)

	return records, districts, dropped, nil
}

type columnIndex struct {
	district       int
	postcode       int
	streetKey      int
	latitude       int
	longitude      int
	avgPrice       int
	districtMedian int
	percentDiff    int
	transactions   int
}

func resolveColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}

	find := func(names ...string) int {
		for _, n := range names {
			if i, ok := pos[n]; ok {
				return i
			}
		}
		return -1
	}

	idx := columnIndex{
		district:       find(colDistrict),
		postcode:       find(colPostcode),
		streetKey:      find(colStreetKey),
		latitude:       find(colLatitude),
		longitude:      find(colLongitude),
		avgPrice:       find(colAvgPrice),
		districtMedian: find(colDistrictMedian),
		percentDiff:    find(colPercentDiff, colPercentDiffAlt),
		transactions:   find(colTransactions),
	}

	var missing []string
	for name, i := range map[string]int{
		colDistrict:       idx.district,
		colPostcode:       idx.postcode,
		colStreetKey:      idx.streetKey,
		colLatitude:       idx.latitude,
		colLongitude:      idx.longitude,
		colAvgPrice:       idx.avgPrice,
		colDistrictMedian: idx.districtMedian,
		colPercentDiff:    idx.percentDiff,
		colTransactions:   idx.transactions,
	} {
		if i < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return columnIndex{}, fmt.Errorf("dataset is missing required columns: %s", strings.Join(missing, ", "))
	}

	return idx, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseNumericCell coerces one cell leniently: currency symbols, percent
// signs and thousands separators are stripped before parsing. A cell that
// still fails to parse is reported missing, never an error.
func parseNumericCell(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.NewReplacer("£", "", "%", "", ",", "", " ", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
