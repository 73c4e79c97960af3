package domain

// FareQuote is an itemized fare for a trip. It is computed on demand
// and never persisted. TotalFare is the pre-surge amount; FinalFare
// has the surge multiplier applied.
type FareQuote struct {
	BaseFare        float64
	DistanceKm      float64
	PerKmRate       float64
	Seats           int
	SurgeMultiplier float64
	TotalFare       float64
	FinalFare       float64
}
