package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type FineReason string

const (
	FineOverstay          FineReason = "overstay"
	FineReservedViolation FineReason = "reserved_violation"
)

// FineRecord is an outstanding or settled fine against a plate. Amount
// only ever decreases, through payments; Paid is true exactly when it
// has reached zero. At most one unpaid fine exists per (plate, reason).
type FineRecord struct {
	ID       int        `json:"id"`
	Plate    string     `json:"plate"`
	Reason   FineReason `json:"reason"`
	Amount   float64    `json:"amount"`
	IssuedAt time.Time  `json:"issued_at"`
	Paid     bool       `json:"paid"`
	PaidAt   null.Time  `json:"paid_at"`
}
