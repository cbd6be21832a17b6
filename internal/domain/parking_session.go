package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

// ParkingSession is one vehicle's occupancy record from entry to exit.
// Rows are never deleted; closing a session only fills in the exit time,
// duration and parking fee. FineScheme is the scheme name bound at entry:
// a later change of the facility-wide setting must not retroactively
// alter fines for vehicles already parked.
type ParkingSession struct {
	TicketNo        string      `json:"ticket_no"`
	Plate           string      `json:"plate"`
	SpotID          string      `json:"spot_id"`
	VehicleCategory string      `json:"vehicle_category"`
	HasHandicapCard bool        `json:"has_handicap_card"`
	IsVIP           bool        `json:"is_vip"`
	EntryTime       time.Time   `json:"entry_time"`
	FineScheme      string      `json:"fine_scheme"`
	ExitTime        null.Time   `json:"exit_time"`
	DurationHours   null.Int    `json:"duration_hours"`
	ParkingFee      null.Float  `json:"parking_fee"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (s *ParkingSession) IsOpen() bool {
	return !s.ExitTime.Valid
}

// Vehicle reconstructs the vehicle attributes stored on the session.
func (s *ParkingSession) Vehicle() Vehicle {
	return Vehicle{
		Plate:           s.Plate,
		Category:        VehicleCategory(s.VehicleCategory),
		HasHandicapCard: s.HasHandicapCard,
		IsVIP:           s.IsVIP,
	}
}

type VehicleEntryDTO struct {
	Plate           string `json:"plate" binding:"required"`
	VehicleCategory string `json:"vehicle_category" binding:"required"`
	HasHandicapCard bool   `json:"has_handicap_card"`
	IsVIP           bool   `json:"is_vip"`
	SpotID          string `json:"spot_id" binding:"required"`
	// RFC 3339; defaults to the server clock when omitted.
	EntryTime string `json:"entry_time,omitempty"`
}

type ExitPreviewDTO struct {
	Plate    string `json:"plate" binding:"required"`
	ExitTime string `json:"exit_time,omitempty"`
}

type ExitConfirmDTO struct {
	Plate          string  `json:"plate" binding:"required"`
	ExitTime       string  `json:"exit_time,omitempty"`
	AmountTendered float64 `json:"amount_tendered"`
	Method         string  `json:"method" binding:"required"`
}
