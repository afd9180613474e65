package geo

import (
	"math"

	"portugalRunning/internal/models"
)

const earthRadiusMeters = 6371000.0

// Distance computes the great-circle distance between two points in meters
// using the Haversine formula.
func Distance(from, to models.Coordinates) float64 {
	lat1 := degreesToRadians(from.Lat)
	lat2 := degreesToRadians(to.Lat)
	deltaLat := degreesToRadians(to.Lat - from.Lat)
	deltaLon := degreesToRadians(to.Lon - from.Lon)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
