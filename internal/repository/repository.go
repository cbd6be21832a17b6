package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/domain"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicateEntry = errors.New("record already exists")
var ErrNoOpenSession = errors.New("no open parking session for the given plate")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type ParkingSpotRepository interface {
	Create(ctx context.Context, spot *domain.ParkingSpot) (*domain.ParkingSpot, error)
	FindByID(ctx context.Context, spotID string) (*domain.ParkingSpot, error)
	FindAll(ctx context.Context) ([]domain.ParkingSpot, error)
	FindAvailableByCategory(ctx context.Context, category domain.SpotCategory) ([]domain.ParkingSpot, error)
	SetOccupied(ctx context.Context, spotID string, plate string) error
	SetAvailable(ctx context.Context, spotID string) error
}

type ParkingSessionRepository interface {
	Create(ctx context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error)
	FindByTicket(ctx context.Context, ticketNo string) (*domain.ParkingSession, error)
	// FindOpenByPlate returns the open session for a plate, or
	// ErrNoOpenSession when the vehicle is not inside.
	FindOpenByPlate(ctx context.Context, plate string) (*domain.ParkingSession, error)
	// FindLatestByPlate returns the most recent session for a plate, open
	// or closed. Closed-state checks use it to tell "already settled"
	// apart from "never entered".
	FindLatestByPlate(ctx context.Context, plate string) (*domain.ParkingSession, error)
	FindOpen(ctx context.Context) ([]domain.ParkingSession, error)
	// Close stamps exit time, duration and fee onto a still-open session.
	// It must only match rows whose exit_time is NULL so that a second
	// close of the same ticket reports ErrNotFound instead of rewriting
	// history.
	Close(ctx context.Context, ticketNo string, exitTime time.Time, durationHours int, parkingFee float64) error
}

type FineRepository interface {
	Create(ctx context.Context, fine *domain.FineRecord) (*domain.FineRecord, error)
	// FindUnpaidByPlate returns unpaid fines oldest-issued first; payment
	// application walks this order.
	FindUnpaidByPlate(ctx context.Context, plate string) ([]domain.FineRecord, error)
	FindUnpaidByPlateAndReason(ctx context.Context, plate string, reason domain.FineReason) (*domain.FineRecord, error)
	UpdateAmount(ctx context.Context, fineID int, amount float64) error
	// Reduce subtracts a payment from the fine, clamping at zero and
	// stamping paid/paid_at when the balance is cleared.
	Reduce(ctx context.Context, fineID int, amount float64, paidAt time.Time) error
	TotalUnpaidByPlate(ctx context.Context, plate string) (float64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.PaymentRecord) (*domain.PaymentRecord, error)
	FindByPlate(ctx context.Context, plate string) ([]domain.PaymentRecord, error)
}

// FacilitySettingsRepository stores facility-wide configuration. The
// active fine scheme name read here is bound to new sessions at entry;
// already-open sessions keep the name they were created with.
type FacilitySettingsRepository interface {
	GetActiveFineScheme(ctx context.Context) (string, error)
	SetActiveFineScheme(ctx context.Context, name string) error
}
