// Package dto contains Data Transfer Objects for API request and response structures
package dto

// ListStreetsRequest carries the filter criteria of the all-results view.
// It is rebuilt from the query string on every request and never persisted.
// An empty district set means no district restriction; the single-select
// "All" sentinel is folded into the empty set before this struct is built.
type ListStreetsRequest struct {
	Districts       []string `json:"districts" validate:"omitempty,dive,min=1"`
	MinTransactions int      `json:"min_transactions" validate:"gte=1"`
	MinPrice        float64  `json:"min_price" validate:"gte=0"`
	MaxPrice        float64  `json:"max_price" validate:"gte=0"`
	MinPercentDiff  *float64 `json:"min_percent_diff,omitempty" validate:"omitempty"`
	MaxPercentDiff  *float64 `json:"max_percent_diff,omitempty" validate:"omitempty"`
}

// FavouriteStateDTO is the per-row favourite control state
type FavouriteStateDTO struct {
	Key        string `json:"key"`
	Favourited bool   `json:"favourited"`
	CanToggle  bool   `json:"can_toggle"`
}

// MapPointDTO is the payload of the per-row map reveal action
type MapPointDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
}

// LookupLinksDTO holds the outbound lookup URLs derived from the postcode
type LookupLinksDTO struct {
	Schools       string `json:"schools"`
	Hospitals     string `json:"hospitals"`
	TrainStations string `json:"train_stations"`
	Developments  string `json:"developments"`
	HMOLicensing  string `json:"hmo_licensing"`
}

// StreetRowDTO is one rendered row of either view
type StreetRowDTO struct {
	StreetKey                string            `json:"street_key"`
	Postcode                 string            `json:"postcode"`
	District                 string            `json:"district"`
	AvgPrice                 float64           `json:"avg_price"`
	AvgPriceDisplay          string            `json:"avg_price_display"`
	DistrictMedian           float64           `json:"district_median"`
	DistrictMedianDisplay    string            `json:"district_median_display"`
	TransactionCount         int               `json:"transaction_count"`
	PercentDifference        float64           `json:"percent_difference"`
	PercentDifferenceDisplay string            `json:"percent_difference_display"`
	Favourite                FavouriteStateDTO `json:"favourite"`
	Map                      MapPointDTO       `json:"map"`
	Links                    LookupLinksDTO    `json:"links"`
}

// ListStreetsResponse is the rendered view: rows, count, and a notice when
// the view is empty instead of a bare empty table
type ListStreetsResponse struct {
	Message string         `json:"message"`
	Total   int            `json:"total"`
	Notice  string         `json:"notice,omitempty"`
	Items   []StreetRowDTO `json:"items"`
}

// ToggleFavouriteRequest identifies the row whose favourite state flips
type ToggleFavouriteRequest struct {
	Postcode   string `json:"postcode" validate:"required"`
	StreetKey  string `json:"street_key" validate:"required"`
	RowOrdinal int    `json:"row_ordinal" validate:"gte=0"`
	ViewTag    string `json:"view_tag" validate:"required,oneof=main fav"`
}

// ToggleFavouriteResponse reports the membership state after the toggle
type ToggleFavouriteResponse struct {
	Key        string `json:"key"`
	Favourited bool   `json:"favourited"`
}

// ListDistrictsResponse wraps the distinct district values for the selector
type ListDistrictsResponse struct {
	Message   string   `json:"message"`
	Districts []string `json:"districts"`
}
