package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/domain"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/repository"
)

// OccupancyNotifier receives spot transitions for the realtime feed.
// Implementations must not block.
type OccupancyNotifier interface {
	NotifySpotChange(notification domain.SpotNotification)
}

type noopNotifier struct{}

func (noopNotifier) NotifySpotChange(domain.SpotNotification) {}

// EntryService registers vehicles into the facility.
type EntryService struct {
	spotRepo     repository.ParkingSpotRepository
	sessionRepo  repository.ParkingSessionRepository
	settingsRepo repository.FacilitySettingsRepository
	notifier     OccupancyNotifier

	defaultFineScheme string
}

func NewEntryService(
	spotRepo repository.ParkingSpotRepository,
	sessionRepo repository.ParkingSessionRepository,
	settingsRepo repository.FacilitySettingsRepository,
	notifier OccupancyNotifier,
	defaultFineScheme string,
) *EntryService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if !KnownScheme(defaultFineScheme) {
		defaultFineScheme = DefaultSchemeName
	}
	return &EntryService{
		spotRepo:          spotRepo,
		sessionRepo:       sessionRepo,
		settingsRepo:      settingsRepo,
		notifier:          notifier,
		defaultFineScheme: defaultFineScheme,
	}
}

// RegisterEntry opens a parking session for a vehicle: validates the spot,
// checks suitability, binds the currently active fine scheme to the
// session and marks the spot occupied.
func (s *EntryService) RegisterEntry(ctx context.Context, vehicle domain.Vehicle, spotID string, entryTime time.Time) (*domain.ParkingSession, error) {
	plate := domain.NormalizePlate(vehicle.Plate)
	if plate == "" {
		return nil, fmt.Errorf("plate is required")
	}

	// 1. One open session per plate.
	existing, err := s.sessionRepo.FindOpenByPlate(ctx, plate)
	if err != nil && !errors.Is(err, repository.ErrNoOpenSession) {
		return nil, fmt.Errorf("checking open session: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: plate '%s' is already inside (ticket %s)", repository.ErrDuplicateEntry, plate, existing.TicketNo)
	}

	// 2. Spot must exist and be free.
	spot, err := s.spotRepo.FindByID(ctx, spotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: spot '%s' does not exist", repository.ErrNotFound, spotID)
		}
		return nil, fmt.Errorf("looking up spot: %w", err)
	}
	if spot.Status != domain.SpotAvailable {
		return nil, fmt.Errorf("%w: spot '%s'", ErrSpotOccupied, spotID)
	}

	// 3. Vehicle/spot suitability.
	if !spotSuitable(vehicle, spot.Category) {
		return nil, fmt.Errorf("%w: %s vehicle in %s spot '%s'", ErrSpotUnsuitable, vehicle.Category, spot.Category, spotID)
	}

	// 4. Bind the active fine scheme by name. The session stores the name,
	// not a live reference: later setting changes leave it untouched.
	schemeName, err := s.settingsRepo.GetActiveFineScheme(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("reading active fine scheme: %w", err)
		}
		schemeName = s.defaultFineScheme
	}
	if !KnownScheme(schemeName) {
		log.Printf("Stored fine scheme '%s' is unknown; binding '%s' instead", schemeName, s.defaultFineScheme)
		schemeName = s.defaultFineScheme
	}

	session := &domain.ParkingSession{
		TicketNo:        fmt.Sprintf("T-%s-%s", plate, entryTime.Format("200601021504")),
		Plate:           plate,
		SpotID:          spot.SpotID,
		VehicleCategory: string(vehicle.Category),
		HasHandicapCard: vehicle.HasHandicapCard,
		IsVIP:           vehicle.IsVIP,
		EntryTime:       entryTime.UTC(),
		FineScheme:      schemeName,
	}

	created, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	if err := s.spotRepo.SetOccupied(ctx, spot.SpotID, plate); err != nil {
		log.Printf("Failed to mark spot %s occupied for ticket %s: %v", spot.SpotID, created.TicketNo, err)
	}

	s.notifier.NotifySpotChange(domain.SpotNotification{
		SpotID:    spot.SpotID,
		Status:    domain.SpotOccupied,
		Plate:     plate,
		TicketNo:  created.TicketNo,
		Timestamp: entryTime.UTC(),
	})

	log.Printf("Vehicle %s entered spot %s on ticket %s (fine scheme: %s)", plate, spot.SpotID, created.TicketNo, schemeName)
	return created, nil
}

// OpenSessions lists the vehicles currently inside.
func (s *EntryService) OpenSessions(ctx context.Context) ([]domain.ParkingSession, error) {
	return s.sessionRepo.FindOpen(ctx)
}

func (s *EntryService) SessionByTicket(ctx context.Context, ticketNo string) (*domain.ParkingSession, error) {
	return s.sessionRepo.FindByTicket(ctx, ticketNo)
}

// spotSuitable applies the entry-time pairing rules. Handicapped vehicles
// may take any spot; handicapped spots take only handicapped vehicles;
// reserved spots take only VIPs.
func spotSuitable(vehicle domain.Vehicle, category domain.SpotCategory) bool {
	if vehicle.Category == domain.VehicleHandicapped {
		return true
	}

	switch category {
	case domain.SpotCompact:
		return vehicle.Category == domain.VehicleMotorcycle || vehicle.Category == domain.VehicleCar
	case domain.SpotRegular:
		return vehicle.Category == domain.VehicleCar || vehicle.Category == domain.VehicleSUVTruck
	case domain.SpotHandicapped:
		return false
	case domain.SpotReserved:
		return vehicle.IsVIP
	default:
		return false
	}
}
