// Package geo is a deterministic stand-in for geocoding and navigation.
// It makes no network calls.
package geo

import (
	"strings"
	"unicode/utf16"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type knownAddress struct {
	fragment string
	point    Point
}

// known is checked in order; the first fragment found in the address wins.
var known = []knownAddress{
	{"אלנבי 1", Point{32.065, 34.768}},
	{"רוטשילד 10", Point{32.063, 34.770}},
	{"דיזנגוף 100", Point{32.078, 34.775}},
	{"אבן גבירול 50", Point{32.079, 34.781}},
	{"הרצל 15", Point{32.060, 34.767}},
	{"קינג ג'ורג' 30", Point{32.074, 34.773}},
	{"יהודה הלוי 40", Point{32.062, 34.773}},
	{"בן יהודה 200", Point{32.086, 34.774}},
	{"המסגר 58", Point{32.059, 34.781}},
	{"אחד העם 1", Point{32.062, 34.767}},
}

const (
	baseLat = 32.07
	baseLng = 34.77
)

// Geocode maps an address to a point. Blank input yields false. Known Tel Aviv
// addresses resolve to fixed points; anything else is placed by a hash of the
// lowercased text, so the same address always lands in the same spot.
func Geocode(address string) (Point, bool) {
	if strings.TrimSpace(address) == "" {
		return Point{}, false
	}
	lower := cases.Lower(language.Und).String(address)

	for _, k := range known {
		if strings.Contains(lower, k.fragment) {
			return k.point, true
		}
	}

	h := hash(lower)
	return Point{
		Lat: baseLat + float64(h%1000)/20000,
		Lng: baseLng + float64(h%2000)/20000,
	}, true
}

// hash folds UTF-16 code units with h = c + ((h << 5) - h), where the shift
// truncates h to 32 bits first and the subtraction does not.
func hash(s string) int64 {
	var h int64
	for _, c := range utf16.Encode([]rune(s)) {
		shifted := int64(int32(h) << 5)
		h = int64(c) + (shifted - h)
	}
	return h
}
