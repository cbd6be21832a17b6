package service

import "log"

// FineScheme converts overstay hours into a fine amount. Implementations
// are pure; the set below is closed and selected by persisted name, bound
// to each session at entry time.
type FineScheme interface {
	Fine(overstayHours int) float64
	Name() string
}

const (
	SchemeFlat        = "flat"
	SchemeProgressive = "progressive"
	SchemeHourly      = "hourly"
)

// DefaultSchemeName is the documented fallback when a stored scheme name
// does not resolve.
const DefaultSchemeName = SchemeProgressive

type flatScheme struct{}

func (flatScheme) Name() string { return SchemeFlat }

func (flatScheme) Fine(overstayHours int) float64 {
	if overstayHours > 0 {
		return 50.0
	}
	return 0.0
}

type progressiveScheme struct{}

func (progressiveScheme) Name() string { return SchemeProgressive }

// Cumulative tiers: each bracket adds its increment on top of the lower
// ones, giving 50 / 150 / 300 / 500 at the 24 / 48 / 72 hour boundaries.
func (progressiveScheme) Fine(overstayHours int) float64 {
	if overstayHours <= 0 {
		return 0.0
	}

	fine := 50.0
	if overstayHours > 24 {
		fine += 100.0
	}
	if overstayHours > 48 {
		fine += 150.0
	}
	if overstayHours > 72 {
		fine += 200.0
	}
	return fine
}

type hourlyScheme struct{}

func (hourlyScheme) Name() string { return SchemeHourly }

func (hourlyScheme) Fine(overstayHours int) float64 {
	if overstayHours <= 0 {
		return 0.0
	}
	return float64(overstayHours) * 20.0
}

var schemes = map[string]FineScheme{
	SchemeFlat:        flatScheme{},
	SchemeProgressive: progressiveScheme{},
	SchemeHourly:      hourlyScheme{},
}

// SchemeByName resolves a stored scheme name. Unknown names fall back to
// the progressive scheme rather than dropping the fine; the fallback is
// logged so stale configuration gets noticed.
func SchemeByName(name string) FineScheme {
	if scheme, ok := schemes[name]; ok {
		return scheme
	}
	log.Printf("Unknown fine scheme '%s', falling back to '%s'", name, DefaultSchemeName)
	return schemes[DefaultSchemeName]
}

// KnownScheme reports whether name maps to a scheme, for validating
// operator input before it is persisted.
func KnownScheme(name string) bool {
	_, ok := schemes[name]
	return ok
}
