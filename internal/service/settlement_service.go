package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/domain"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/repository"
)

// SettlementService drives the exit state machine: Open -> Previewed
// (ephemeral) -> Closed. PreviewExit is read-only and may run any number
// of times; ConfirmExit commits fines, payment, session close and spot
// release as one per-plate critical section.
type SettlementService struct {
	sessionRepo repository.ParkingSessionRepository
	spotRepo    repository.ParkingSpotRepository
	paymentRepo repository.PaymentRepository
	fines       *FineService
	notifier    OccupancyNotifier

	// One mutex per plate: two terminals settling the same plate serialize
	// here, everything else proceeds in parallel.
	mu         sync.Mutex
	plateLocks map[string]*sync.Mutex
}

func NewSettlementService(
	sessionRepo repository.ParkingSessionRepository,
	spotRepo repository.ParkingSpotRepository,
	paymentRepo repository.PaymentRepository,
	fines *FineService,
	notifier OccupancyNotifier,
) *SettlementService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &SettlementService{
		sessionRepo: sessionRepo,
		spotRepo:    spotRepo,
		paymentRepo: paymentRepo,
		fines:       fines,
		notifier:    notifier,
		plateLocks:  make(map[string]*sync.Mutex),
	}
}

func (s *SettlementService) plateLock(plate string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.plateLocks[plate]
	if !ok {
		lock = &sync.Mutex{}
		s.plateLocks[plate] = lock
	}
	return lock
}

// PreviewExit computes what a vehicle would owe if it left at exitTime.
// Nothing is persisted: the would-be new fines live only in the returned
// quote, so the operator can edit the exit time and preview again freely.
func (s *SettlementService) PreviewExit(ctx context.Context, plate string, exitTime time.Time) (*domain.SettlementQuote, error) {
	plate = domain.NormalizePlate(plate)
	session, err := s.sessionRepo.FindOpenByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	return s.buildQuote(ctx, session, exitTime)
}

// ConfirmExit re-derives the preview quote and commits it. The parking
// fee is mandatory: when amountTendered falls short the call fails with
// ErrInsufficientPayment before any state is touched. The remainder after
// the fee is spread FIFO across the plate's outstanding fines; whatever
// they still owe survives the exit as a standing balance.
func (s *SettlementService) ConfirmExit(ctx context.Context, plate string, exitTime time.Time, amountTendered float64, method domain.PaymentMethod) (*domain.PaymentRecord, error) {
	if amountTendered < 0 {
		return nil, ErrNegativeAmount
	}
	plate = domain.NormalizePlate(plate)

	lock := s.plateLock(plate)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.sessionRepo.FindOpenByPlate(ctx, plate)
	if err != nil {
		if errors.Is(err, repository.ErrNoOpenSession) {
			// A settled plate has no open session left; report the closed
			// state rather than a missing one when the ticket exists.
			return nil, s.classifyMissingSession(ctx, plate)
		}
		return nil, err
	}

	quote, err := s.buildQuote(ctx, session, exitTime)
	if err != nil {
		return nil, err
	}

	if amountTendered < quote.ParkingFee {
		return nil, fmt.Errorf("%w: tendered %.2f, parking fee %.2f", ErrInsufficientPayment, amountTendered, quote.ParkingFee)
	}

	// Materialize the would-be fines. RecordFine merges into an existing
	// unpaid (plate, reason) row, so repeated settlement attempts never
	// stack the same violation.
	for _, fine := range quote.NewFines {
		if _, err := s.fines.RecordFine(ctx, plate, fine.Reason, fine.Amount, exitTime.UTC()); err != nil {
			return nil, err
		}
	}

	outstanding, err := s.fines.OutstandingFines(ctx, plate)
	if err != nil {
		return nil, fmt.Errorf("loading outstanding fines: %w", err)
	}

	feeCovered, allocations, leftover := allocatePayment(quote.ParkingFee, outstanding, amountTendered)
	if !feeCovered {
		return nil, fmt.Errorf("%w: tendered %.2f, parking fee %.2f", ErrInsufficientPayment, amountTendered, quote.ParkingFee)
	}

	finePaid := 0.0
	byID := make(map[int]*domain.FineRecord, len(outstanding))
	for i := range outstanding {
		byID[outstanding[i].ID] = &outstanding[i]
	}
	for _, alloc := range allocations {
		if err := s.fines.ApplyPayment(ctx, byID[alloc.FineID], alloc.Amount, exitTime.UTC()); err != nil {
			return nil, err
		}
		finePaid += alloc.Amount
	}

	// Close the session. The repository only matches still-open rows, so a
	// concurrent settlement that slipped past the lock surfaces here
	// instead of freeing the spot twice.
	if err := s.sessionRepo.Close(ctx, session.TicketNo, exitTime.UTC(), quote.DurationHours, quote.ParkingFee); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionAlreadyClosed
		}
		return nil, fmt.Errorf("closing session: %w", err)
	}

	if err := s.spotRepo.SetAvailable(ctx, session.SpotID); err != nil {
		log.Printf("Failed to release spot %s for ticket %s: %v", session.SpotID, session.TicketNo, err)
	}

	totalDue := quote.ParkingFee + finePaid
	payment := &domain.PaymentRecord{
		TicketNo:      session.TicketNo,
		Plate:         plate,
		Method:        method,
		PaidTime:      exitTime.UTC(),
		DurationHours: quote.DurationHours,
		ParkingFee:    quote.ParkingFee,
		FinePaid:      finePaid,
		TotalDue:      totalDue,
		AmountPaid:    amountTendered,
		Balance:       leftover,
	}
	record, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("recording payment: %w", err)
	}

	s.notifier.NotifySpotChange(domain.SpotNotification{
		SpotID:    session.SpotID,
		Status:    domain.SpotAvailable,
		TicketNo:  session.TicketNo,
		Timestamp: exitTime.UTC(),
	})

	log.Printf("Settled ticket %s: fee RM %.2f, fines paid RM %.2f, change RM %.2f",
		session.TicketNo, quote.ParkingFee, finePaid, leftover)
	return record, nil
}

// PaymentsByPlate returns the payment history for a plate.
func (s *SettlementService) PaymentsByPlate(ctx context.Context, plate string) ([]domain.PaymentRecord, error) {
	return s.paymentRepo.FindByPlate(ctx, domain.NormalizePlate(plate))
}

// buildQuote derives the full amounts-due picture for a session without
// touching storage. The fine scheme is the one bound at entry, never the
// current facility default.
func (s *SettlementService) buildQuote(ctx context.Context, session *domain.ParkingSession, exitTime time.Time) (*domain.SettlementQuote, error) {
	hours, err := BillableHours(session.EntryTime, exitTime)
	if err != nil {
		return nil, err
	}

	spot, err := s.spotRepo.FindByID(ctx, session.SpotID)
	if err != nil {
		return nil, fmt.Errorf("looking up spot '%s': %w", session.SpotID, err)
	}

	vehicle := session.Vehicle()
	rate := HourlyRate(spot.Category, vehicle)
	parkingFee := float64(hours) * rate

	overstay := OverstayHours(hours)
	var newFines []domain.FineRecord
	if overstay > 0 {
		scheme := SchemeByName(session.FineScheme)
		if amount := scheme.Fine(overstay); amount > 0 {
			newFines = append(newFines, domain.FineRecord{
				Plate:    session.Plate,
				Reason:   domain.FineOverstay,
				Amount:   amount,
				IssuedAt: exitTime.UTC(),
			})
		}
	}
	if spot.Category == domain.SpotReserved && !vehicle.IsVIP {
		newFines = append(newFines, domain.FineRecord{
			Plate:    session.Plate,
			Reason:   domain.FineReservedViolation,
			Amount:   100.0,
			IssuedAt: exitTime.UTC(),
		})
	}

	outstanding, err := s.fines.OutstandingFines(ctx, session.Plate)
	if err != nil {
		return nil, fmt.Errorf("loading outstanding fines: %w", err)
	}

	// An unpaid fine with the same reason as a new one will merge on
	// confirm rather than stack, so it is excluded here to keep the quote
	// equal to what confirm actually bills.
	newReasons := make(map[domain.FineReason]bool, len(newFines))
	for _, fine := range newFines {
		newReasons[fine.Reason] = true
	}
	carried := outstanding[:0:0]
	for _, fine := range outstanding {
		if !newReasons[fine.Reason] {
			carried = append(carried, fine)
		}
	}

	totalFines := 0.0
	for _, fine := range newFines {
		totalFines += fine.Amount
	}
	for _, fine := range carried {
		totalFines += fine.Amount
	}

	return &domain.SettlementQuote{
		TicketNo:         session.TicketNo,
		Plate:            session.Plate,
		SpotID:           session.SpotID,
		ExitTime:         exitTime.UTC(),
		DurationHours:    hours,
		OverstayHours:    overstay,
		HourlyRate:       rate,
		ParkingFee:       parkingFee,
		NewFines:         newFines,
		OutstandingFines: carried,
		TotalFines:       totalFines,
		TotalDue:         parkingFee + totalFines,
	}, nil
}

// classifyMissingSession distinguishes "never entered" from "already
// settled" when no open session exists for a plate. A second confirm on a
// settled session must fail with ErrSessionAlreadyClosed, not pretend the
// vehicle was never here.
func (s *SettlementService) classifyMissingSession(ctx context.Context, plate string) error {
	latest, err := s.sessionRepo.FindLatestByPlate(ctx, plate)
	if err == nil && !latest.IsOpen() {
		return ErrSessionAlreadyClosed
	}
	return repository.ErrNoOpenSession
}

// FineAllocation is one slice of a payment applied to a specific fine.
type FineAllocation struct {
	FineID int
	Amount float64
}

// allocatePayment is the pure settlement reducer: given the mandatory
// parking fee, the plate's outstanding fines in FIFO order and the amount
// tendered, it decides how the money lands without touching anything.
// The fee is all-or-nothing; the remainder flows oldest fine first,
// possibly covering the head fine partially and later ones not at all.
func allocatePayment(parkingFee float64, fines []domain.FineRecord, amountTendered float64) (feeCovered bool, allocations []FineAllocation, leftover float64) {
	if amountTendered < parkingFee {
		return false, nil, amountTendered
	}

	remaining := amountTendered - parkingFee
	for _, fine := range fines {
		if remaining <= 0 {
			break
		}
		applied := fine.Amount
		if remaining < applied {
			applied = remaining
		}
		if applied > 0 {
			allocations = append(allocations, FineAllocation{FineID: fine.ID, Amount: applied})
			remaining -= applied
		}
	}
	return true, allocations, remaining
}
