package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for distances.
const EarthRadiusKm = 6371.0

// Distance returns the great-circle distance between a and b in kilometres.
func Distance(a, b Point) float64 {
	const rad = math.Pi / 180
	lat1 := a.Lat * rad
	lat2 := b.Lat * rad
	sinDLat := math.Sin((b.Lat - a.Lat) * rad / 2)
	sinDLng := math.Sin((b.Lng - a.Lng) * rad / 2)
	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLng*sinDLng
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// Route is the intake map preview. Each end is set when its address resolves;
// DistanceKm is set only when both do.
type Route struct {
	Pickup     *Point   `json:"pickup,omitempty"`
	Dropoff    *Point   `json:"dropoff,omitempty"`
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

// Resolve geocodes both addresses and measures the straight line between them.
func Resolve(pickup, dropoff string) Route {
	var r Route
	if p, ok := Geocode(pickup); ok {
		r.Pickup = &p
	}
	if d, ok := Geocode(dropoff); ok {
		r.Dropoff = &d
	}
	if r.Pickup != nil && r.Dropoff != nil {
		km := Distance(*r.Pickup, *r.Dropoff)
		r.DistanceKm = &km
	}
	return r
}
