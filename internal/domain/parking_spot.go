package domain

import (
	"strings"
	"time"

	"gopkg.in/guregu/null.v4"
)

type SpotCategory string

const (
	SpotCompact     SpotCategory = "compact"
	SpotRegular     SpotCategory = "regular"
	SpotHandicapped SpotCategory = "handicapped"
	SpotReserved    SpotCategory = "reserved"
)

func ParseSpotCategory(s string) (SpotCategory, bool) {
	switch SpotCategory(strings.ToLower(strings.TrimSpace(s))) {
	case SpotCompact:
		return SpotCompact, true
	case SpotRegular:
		return SpotRegular, true
	case SpotHandicapped:
		return SpotHandicapped, true
	case SpotReserved:
		return SpotReserved, true
	}
	return "", false
}

type SpotStatus string

const (
	SpotAvailable SpotStatus = "available"
	SpotOccupied  SpotStatus = "occupied"
)

// ParkingSpot is a single space in the facility. Status and CurrentPlate
// must stay consistent with the open session referencing this spot.
type ParkingSpot struct {
	SpotID       string       `json:"spot_id"`
	Category     SpotCategory `json:"category"`
	Status       SpotStatus   `json:"status"`
	CurrentPlate null.String  `json:"current_plate"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type CreateSpotDTO struct {
	SpotID   string `json:"spot_id" binding:"required"`
	Category string `json:"category" binding:"required"`
}
