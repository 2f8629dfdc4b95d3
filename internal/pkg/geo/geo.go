package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by Distance
const EarthRadiusMeters = 6371000.0

// Distance returns the great-circle distance in meters between the office
// coordinates and a point, using the haversine formula on a spherical Earth.
// Inputs are not range checked; see ValidCoordinate.
func Distance(officeLat, officeLng, lat, lng float64) float64 {
	if officeLat == lat && officeLng == lng {
		return 0
	}

	phi1 := toRadians(officeLat)
	phi2 := toRadians(lat)
	dPhi := toRadians(lat - officeLat)
	dLambda := toRadians(lng - officeLng)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)

	// rounding can push a slightly outside [0,1] for antipodal points
	a = math.Min(1, math.Max(0, a))

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// WithinRadius reports whether distance falls inside the radius (inclusive)
func WithinRadius(distance, radius float64) bool {
	return distance <= radius
}

// ValidCoordinate checks that lat/lng are finite and inside their ranges
func ValidCoordinate(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
