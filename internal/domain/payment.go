package domain

import (
	"strings"
	"time"
)

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCard    PaymentMethod = "card"
	PaymentEWallet PaymentMethod = "ewallet"
)

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentCash:
		return PaymentCash, true
	case PaymentCard:
		return PaymentCard, true
	case PaymentEWallet:
		return PaymentEWallet, true
	}
	return "", false
}

// PaymentRecord is the append-only receipt written once per successful
// settlement. TotalDue is what the settlement actually billed: the
// parking fee plus the fine portion the tendered amount covered, so
// Balance is never negative.
type PaymentRecord struct {
	ID            int           `json:"id"`
	TicketNo      string        `json:"ticket_no"`
	Plate         string        `json:"plate"`
	Method        PaymentMethod `json:"method"`
	PaidTime      time.Time     `json:"paid_time"`
	DurationHours int           `json:"duration_hours"`
	ParkingFee    float64       `json:"parking_fee"`
	FinePaid      float64       `json:"fine_paid"`
	TotalDue      float64       `json:"total_due"`
	AmountPaid    float64       `json:"amount_paid"`
	Balance       float64       `json:"balance"`
}

// SettlementQuote is the ephemeral preview of a would-be exit. Nothing in
// it is persisted; NewFines carries fines that confirm would materialize.
type SettlementQuote struct {
	TicketNo         string       `json:"ticket_no"`
	Plate            string       `json:"plate"`
	SpotID           string       `json:"spot_id"`
	ExitTime         time.Time    `json:"exit_time"`
	DurationHours    int          `json:"duration_hours"`
	OverstayHours    int          `json:"overstay_hours"`
	HourlyRate       float64      `json:"hourly_rate"`
	ParkingFee       float64      `json:"parking_fee"`
	NewFines         []FineRecord `json:"new_fines"`
	OutstandingFines []FineRecord `json:"outstanding_fines"`
	TotalFines       float64      `json:"total_fines"`
	TotalDue         float64      `json:"total_due"`
}
