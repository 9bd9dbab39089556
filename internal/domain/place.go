package domain

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a nearby-search hit from the places provider.
type Place struct {
	PlaceID        string  `json:"place_id"`
	Name           string  `json:"name"`
	Vicinity       string  `json:"vicinity,omitempty"`
	Location       Point   `json:"location"`
	DistanceMeters float64 `json:"distance_meters"`
}
