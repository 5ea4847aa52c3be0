package weather

import (
	"context"
	"time"
)

// GeoResolver maps free text to the best matching location.
type GeoResolver interface {
	Resolve(ctx context.Context, city string) (Location, error)
}

// Provider returns current conditions for a zero date, or the forecast
// entry for that calendar day.
type Provider interface {
	Fetch(ctx context.Context, loc Location, date time.Time) (Fact, error)
}
