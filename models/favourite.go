package models

import (
	"strconv"
	"strings"
)

// View tags distinguish favourite keys generated by the two views so that
// the same street bookmarked at different positions produces distinct keys.
const (
	ViewTagMain       = "main"
	ViewTagFavourites = "fav"
)

// FavouriteMark identifies one bookmarked row. The full key encodes the row
// ordinal and originating view because the same street shows up at different
// positions across filtered renders; resolution back to a record only uses
// the (postcode, normalized street) identity pair.
type FavouriteMark struct {
	Postcode   string `json:"postcode"`
	StreetKey  string `json:"street_key"`
	RowOrdinal int    `json:"row_ordinal"`
	ViewTag    string `json:"view_tag"`
}

// Key returns the composite favourite key, e.g. "SW1A 1AA|Downing_Street_|_SW1A_1AA|3|main".
func (m FavouriteMark) Key() string {
	return strings.Join([]string{
		m.Postcode,
		NormalizeStreetKey(m.StreetKey),
		strconv.Itoa(m.RowOrdinal),
		m.ViewTag,
	}, "|")
}

// IdentityPair returns the fragment shared by every render of the same
// street, regardless of row ordinal or view.
func (m FavouriteMark) IdentityPair() (postcode, street string) {
	return m.Postcode, NormalizeStreetKey(m.StreetKey)
}

// Matches reports whether the mark refers to the given record. Matching is a
// structured comparison of the (postcode, normalized street) pair, never a
// substring test, so one street key being a prefix of another cannot collide.
func (m FavouriteMark) Matches(rec StreetRecord) bool {
	p, s := m.IdentityPair()
	return p == rec.Postcode && s == NormalizeStreetKey(rec.StreetKey)
}

// NormalizeStreetKey removes the spaces from a street key so the composite
// favourite key has a stable, delimiter-safe street fragment.
func NormalizeStreetKey(streetKey string) string {
	return strings.ReplaceAll(streetKey, " ", "_")
}
