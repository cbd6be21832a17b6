package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gopkg.in/guregu/null.v4"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/domain"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/repository"
)

// In-memory repository fakes backing the service tests.

type fakeSpotRepo struct {
	mu    sync.Mutex
	spots map[string]*domain.ParkingSpot
}

func newFakeSpotRepo() *fakeSpotRepo {
	return &fakeSpotRepo{spots: make(map[string]*domain.ParkingSpot)}
}

func (r *fakeSpotRepo) Create(_ context.Context, spot *domain.ParkingSpot) (*domain.ParkingSpot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.spots[spot.SpotID]; ok {
		return nil, repository.ErrDuplicateEntry
	}
	stored := *spot
	if stored.Status == "" {
		stored.Status = domain.SpotAvailable
	}
	r.spots[spot.SpotID] = &stored
	out := stored
	return &out, nil
}

func (r *fakeSpotRepo) FindByID(_ context.Context, spotID string) (*domain.ParkingSpot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	spot, ok := r.spots[spotID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *spot
	return &out, nil
}

func (r *fakeSpotRepo) FindAll(_ context.Context) ([]domain.ParkingSpot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ParkingSpot
	for _, spot := range r.spots {
		out = append(out, *spot)
	}
	return out, nil
}

func (r *fakeSpotRepo) FindAvailableByCategory(_ context.Context, category domain.SpotCategory) ([]domain.ParkingSpot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ParkingSpot
	for _, spot := range r.spots {
		if spot.Category == category && spot.Status == domain.SpotAvailable {
			out = append(out, *spot)
		}
	}
	return out, nil
}

func (r *fakeSpotRepo) SetOccupied(_ context.Context, spotID string, plate string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	spot, ok := r.spots[spotID]
	if !ok {
		return repository.ErrNotFound
	}
	spot.Status = domain.SpotOccupied
	spot.CurrentPlate = null.StringFrom(plate)
	return nil
}

func (r *fakeSpotRepo) SetAvailable(_ context.Context, spotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	spot, ok := r.spots[spotID]
	if !ok {
		return repository.ErrNotFound
	}
	spot.Status = domain.SpotAvailable
	spot.CurrentPlate = null.String{}
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions []*domain.ParkingSession
}

func newFakeSessionRepo() *fakeSessionRepo { return &fakeSessionRepo{} }

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.TicketNo == session.TicketNo {
			return nil, repository.ErrDuplicateEntry
		}
		if s.Plate == session.Plate && s.IsOpen() {
			return nil, fmt.Errorf("%w: open session exists for plate %s", repository.ErrDuplicateEntry, session.Plate)
		}
	}
	stored := *session
	r.sessions = append(r.sessions, &stored)
	out := stored
	return &out, nil
}

func (r *fakeSessionRepo) FindByTicket(_ context.Context, ticketNo string) (*domain.ParkingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.TicketNo == ticketNo {
			out := *s
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSessionRepo) FindOpenByPlate(_ context.Context, plate string) (*domain.ParkingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.Plate == plate && s.IsOpen() {
			out := *s
			return &out, nil
		}
	}
	return nil, repository.ErrNoOpenSession
}

func (r *fakeSessionRepo) FindLatestByPlate(_ context.Context, plate string) (*domain.ParkingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.sessions) - 1; i >= 0; i-- {
		if r.sessions[i].Plate == plate {
			out := *r.sessions[i]
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSessionRepo) FindOpen(_ context.Context) ([]domain.ParkingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ParkingSession
	for _, s := range r.sessions {
		if s.IsOpen() {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Close(_ context.Context, ticketNo string, exitTime time.Time, durationHours int, parkingFee float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.TicketNo == ticketNo && s.IsOpen() {
			s.ExitTime = null.TimeFrom(exitTime)
			s.DurationHours = null.IntFrom(int64(durationHours))
			s.ParkingFee = null.FloatFrom(parkingFee)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeFineRepo struct {
	mu     sync.Mutex
	nextID int
	fines  []*domain.FineRecord
}

func newFakeFineRepo() *fakeFineRepo { return &fakeFineRepo{nextID: 1} }

func (r *fakeFineRepo) Create(_ context.Context, fine *domain.FineRecord) (*domain.FineRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *fine
	stored.ID = r.nextID
	r.nextID++
	r.fines = append(r.fines, &stored)
	out := stored
	return &out, nil
}

func (r *fakeFineRepo) FindUnpaidByPlate(_ context.Context, plate string) ([]domain.FineRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.FineRecord
	for _, fine := range r.fines {
		if fine.Plate == plate && !fine.Paid {
			out = append(out, *fine)
		}
	}
	return out, nil
}

func (r *fakeFineRepo) FindUnpaidByPlateAndReason(_ context.Context, plate string, reason domain.FineReason) (*domain.FineRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, fine := range r.fines {
		if fine.Plate == plate && fine.Reason == reason && !fine.Paid {
			out := *fine
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeFineRepo) UpdateAmount(_ context.Context, fineID int, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, fine := range r.fines {
		if fine.ID == fineID {
			fine.Amount = amount
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeFineRepo) Reduce(_ context.Context, fineID int, amount float64, paidAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, fine := range r.fines {
		if fine.ID == fineID {
			fine.Amount -= amount
			if fine.Amount <= 0 {
				fine.Amount = 0
				fine.Paid = true
				fine.PaidAt = null.TimeFrom(paidAt)
			}
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeFineRepo) TotalUnpaidByPlate(_ context.Context, plate string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0.0
	for _, fine := range r.fines {
		if fine.Plate == plate && !fine.Paid {
			total += fine.Amount
		}
	}
	return total, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	nextID   int
	payments []*domain.PaymentRecord
}

func newFakePaymentRepo() *fakePaymentRepo { return &fakePaymentRepo{nextID: 1} }

func (r *fakePaymentRepo) Create(_ context.Context, payment *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *payment
	stored.ID = r.nextID
	r.nextID++
	r.payments = append(r.payments, &stored)
	out := stored
	return &out, nil
}

func (r *fakePaymentRepo) FindByPlate(_ context.Context, plate string) ([]domain.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PaymentRecord
	for _, payment := range r.payments {
		if payment.Plate == plate {
			out = append(out, *payment)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	mu     sync.Mutex
	scheme string
}

func (r *fakeSettingsRepo) GetActiveFineScheme(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scheme == "" {
		return "", repository.ErrNotFound
	}
	return r.scheme, nil
}

func (r *fakeSettingsRepo) SetActiveFineScheme(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheme = name
	return nil
}

// recordingNotifier captures spot notifications for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.SpotNotification
}

func (n *recordingNotifier) NotifySpotChange(notification domain.SpotNotification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification)
}

func (n *recordingNotifier) Events() []domain.SpotNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.SpotNotification, len(n.events))
	copy(out, n.events)
	return out
}

// settlementFixture wires the full exit pipeline against in-memory fakes.
type settlementFixture struct {
	spots      *fakeSpotRepo
	sessions   *fakeSessionRepo
	fineRepo   *fakeFineRepo
	payments   *fakePaymentRepo
	fines      *FineService
	settlement *SettlementService
	notifier   *recordingNotifier
}

func newSettlementFixture() *settlementFixture {
	spots := newFakeSpotRepo()
	sessions := newFakeSessionRepo()
	fineRepo := newFakeFineRepo()
	payments := newFakePaymentRepo()
	fines := NewFineService(fineRepo)
	notifier := &recordingNotifier{}
	return &settlementFixture{
		spots:      spots,
		sessions:   sessions,
		fineRepo:   fineRepo,
		payments:   payments,
		fines:      fines,
		settlement: NewSettlementService(sessions, spots, payments, fines, notifier),
		notifier:   notifier,
	}
}

// seedOpenSession places a vehicle into a spot directly at the repository
// level, bypassing entry validation so tests can set up states the entry
// rules would refuse (a non-VIP in a reserved spot, for example).
func (f *settlementFixture) seedOpenSession(ticketNo string, vehicle domain.Vehicle, spotID string, spotCategory domain.SpotCategory, entryTime time.Time, scheme string) *domain.ParkingSession {
	ctx := context.Background()
	if _, err := f.spots.FindByID(ctx, spotID); err != nil {
		if _, err := f.spots.Create(ctx, &domain.ParkingSpot{SpotID: spotID, Category: spotCategory}); err != nil {
			panic(err)
		}
	}
	if err := f.spots.SetOccupied(ctx, spotID, vehicle.Plate); err != nil {
		panic(err)
	}
	session := &domain.ParkingSession{
		TicketNo:        ticketNo,
		Plate:           vehicle.Plate,
		SpotID:          spotID,
		VehicleCategory: string(vehicle.Category),
		HasHandicapCard: vehicle.HasHandicapCard,
		IsVIP:           vehicle.IsVIP,
		EntryTime:       entryTime,
		FineScheme:      scheme,
	}
	created, err := f.sessions.Create(ctx, session)
	if err != nil {
		panic(err)
	}
	return created
}
