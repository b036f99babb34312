package directory

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"discount24/internal/domain"
)

const earthRadiusKm = 6371

// HaversineKm is the great-circle distance between a and b in kilometres.
func HaversineKm(a, b domain.Coordinate) float64 {
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Latitude*math.Pi/180)*math.Cos(b.Latitude*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Position resolves where a vendor is: explicit coordinates win, otherwise a
// location string of the form "lat,lon" is accepted.
func Position(v domain.Vendor) (domain.Coordinate, bool) {
	if v.Coordinates != nil {
		return *v.Coordinates, true
	}
	c, err := ParseCoordinate(v.Location)
	if err != nil {
		return domain.Coordinate{}, false
	}
	return c, true
}

// Distance returns the distance from ref to v, if v has a position.
func Distance(ref domain.Coordinate, v domain.Vendor) (float64, bool) {
	pos, ok := Position(v)
	if !ok {
		return 0, false
	}
	return HaversineKm(ref, pos), true
}

// ParseCoordinate parses "lat,lon" in decimal degrees.
func ParseCoordinate(s string) (domain.Coordinate, error) {
	latStr, lonStr, found := strings.Cut(s, ",")
	if !found {
		return domain.Coordinate{}, fmt.Errorf("coordinate %q: want \"lat,lon\"", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("coordinate %q: latitude: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("coordinate %q: longitude: %w", s, err)
	}
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return domain.Coordinate{}, fmt.Errorf("coordinate %q: out of range", s)
	}
	return domain.Coordinate{Latitude: lat, Longitude: lon}, nil
}
