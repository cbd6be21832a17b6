package service

import (
	"math"
	"time"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/domain"
)

// Hourly rates per spot category, in RM.
const (
	RateCompact     = 2.0
	RateRegular     = 5.0
	RateHandicapped = 2.0
	RateReserved    = 10.0

	// Rate for handicap-card holders anywhere outside a handicapped spot.
	RateHandicapCardDiscount = 2.0
)

// BillableHours converts an entry/exit pair into whole billable hours:
// elapsed minutes divided by 60, rounded up, never less than 1.
func BillableHours(entry, exit time.Time) (int, error) {
	if exit.Before(entry) {
		return 0, ErrInvalidTimeRange
	}
	minutes := exit.Sub(entry).Minutes()
	hours := int(math.Ceil(minutes / 60.0))
	if hours < 1 {
		hours = 1
	}
	return hours, nil
}

// OverstayHours is how far past the 24-hour limit a stay ran, in whole
// billable hours. Zero when within the limit.
func OverstayHours(billableHours int) int {
	if billableHours <= 24 {
		return 0
	}
	return billableHours - 24
}

// HourlyRate resolves the rate for a spot/vehicle pairing. A valid
// handicap card overrides the category lookup: free inside a handicapped
// spot, the discounted 2.0 anywhere else, regardless of the spot's
// nominal rate.
func HourlyRate(category domain.SpotCategory, vehicle domain.Vehicle) float64 {
	if vehicle.HasHandicapCard {
		if category == domain.SpotHandicapped {
			return 0.0
		}
		return RateHandicapCardDiscount
	}

	switch category {
	case domain.SpotCompact:
		return RateCompact
	case domain.SpotHandicapped:
		return RateHandicapped
	case domain.SpotReserved:
		return RateReserved
	default:
		return RateRegular
	}
}
