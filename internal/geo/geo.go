// Package geo provides great-circle distance math for nearest-station lookup.
package geo

import (
	"math"

	"github.com/ynn22/citywind/internal/models"
)

const earthRadiusMeters = 6371000

// Match pairs a station with its distance from the query point.
type Match struct {
	Station        models.WindStation
	DistanceMeters float64
}

// Distance returns the haversine distance in meters between two coordinates
// given in degrees. NaN inputs propagate as NaN distances; callers are
// expected to pre-validate coordinates.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// NearestStation returns the station closest to the given point, or nil when
// the station list is empty. Ties are broken by scan order, so the first of
// two equidistant stations wins.
func NearestStation(lat, lng float64, stations []models.WindStation) *Match {
	var best *Match
	for _, station := range stations {
		d := Distance(lat, lng, station.Latitude, station.Longitude)
		if best == nil || d < best.DistanceMeters {
			best = &Match{Station: station, DistanceMeters: d}
		}
	}
	return best
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
