package geo

import "math"

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between two
// points given in degrees, on a spherical Earth of radius 6371 km.
func Haversine(lon1, lat1, lon2, lat2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2) * math.Sin(dLat/2)
	b := math.Cos(lat1r) * math.Cos(lat2r) * math.Sin(dLon/2) * math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a+b))
}
