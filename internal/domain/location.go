package domain

import (
	"sort"
	"strings"
	"time"
)

// Location is one entry of the location vocabulary: a logistics center or
// customer site the driver has hauled to or from. Name is unique under
// trimming; Address and Memo are optional until the location is used in an
// SMS-confirmed trip, at which point Address becomes mandatory.
type Location struct {
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Memo      string    `json:"memo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HasAddress reports whether the location carries a usable address.
func (l Location) HasAddress() bool {
	return strings.TrimSpace(l.Address) != ""
}

// MatchingView returns the location names ordered longest first, the order the
// SMS extractor must probe them in so that "서울역" wins over "서울".
// The input slice is not modified.
func MatchingView(locations []Location) []string {
	names := make([]string, len(locations))
	for i, l := range locations {
		names[i] = l.Name
	}
	sort.SliceStable(names, func(i, j int) bool {
		return len([]rune(names[i])) > len([]rune(names[j]))
	})
	return names
}
