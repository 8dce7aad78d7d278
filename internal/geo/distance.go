package geo

import (
	"fmt"
	"math"
)

// earthRadiusKm is the mean Earth radius used for every distance reported to
// users. Changing it changes which providers fall inside a radius filter.
const earthRadiusKm = 6371

// Unit is the unit a Distance is expressed in.
type Unit string

const (
	Meters     Unit = "m"
	Kilometers Unit = "km"
)

// UnavailableText is shown in place of a distance when the user's location
// is not known.
const UnavailableText = "Distancia no disponible"

// Distance is a great-circle distance expressed in the unit chosen for display.
type Distance struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Kilometers returns the distance normalized to kilometers.
func (d Distance) Kilometers() float64 {
	if d.Unit == Meters {
		return d.Value / 1000
	}
	return d.Value
}

// String formats the distance with one decimal, e.g. "850.0 m" or "2.3 km".
func (d Distance) String() string {
	return fmt.Sprintf("%.1f %s", d.Value, d.Unit)
}

// HaversineKm returns the great-circle distance between two points given in
// decimal degrees, in kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Between computes the distance between two points and picks its display
// unit. Results under one kilometer are rescaled to meters.
func Between(lat1, lon1, lat2, lon2 float64) Distance {
	return FromKilometers(HaversineKm(lat1, lon1, lat2, lon2))
}

// FromKilometers applies the unit policy to a kilometer value.
func FromKilometers(km float64) Distance {
	if km < 1 {
		return Distance{Value: km * 1000, Unit: Meters}
	}
	return Distance{Value: km, Unit: Kilometers}
}

// Text returns the display text for the distance from an optional user
// location to a point.
func Text(from *Point, lat, lng float64) string {
	if from == nil {
		return UnavailableText
	}
	return Between(from.Lat, from.Lng, lat, lng).String()
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
