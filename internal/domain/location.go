package domain

// Location is an immutable geographic point.
type Location struct {
	Lat float64
	Lng float64
}

// Valid reports whether the coordinates fall inside the WGS84 ranges.
func (l Location) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// Equal reports whether two locations are the same point.
func (l Location) Equal(other Location) bool {
	return l.Lat == other.Lat && l.Lng == other.Lng
}
