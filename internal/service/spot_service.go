package service

import (
	"context"
	"fmt"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/domain"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/repository"
)

// SpotService administers the facility's spot inventory.
type SpotService struct {
	spotRepo repository.ParkingSpotRepository
}

func NewSpotService(spotRepo repository.ParkingSpotRepository) *SpotService {
	return &SpotService{spotRepo: spotRepo}
}

func (s *SpotService) CreateSpot(ctx context.Context, dto domain.CreateSpotDTO) (*domain.ParkingSpot, error) {
	category, ok := domain.ParseSpotCategory(dto.Category)
	if !ok {
		return nil, fmt.Errorf("invalid spot category: %s", dto.Category)
	}
	spot := &domain.ParkingSpot{
		SpotID:   dto.SpotID,
		Category: category,
	}
	return s.spotRepo.Create(ctx, spot)
}

func (s *SpotService) GetSpotByID(ctx context.Context, spotID string) (*domain.ParkingSpot, error) {
	return s.spotRepo.FindByID(ctx, spotID)
}

func (s *SpotService) GetAllSpots(ctx context.Context) ([]domain.ParkingSpot, error) {
	return s.spotRepo.FindAll(ctx)
}

func (s *SpotService) GetAvailableSpots(ctx context.Context, category string) ([]domain.ParkingSpot, error) {
	parsed, ok := domain.ParseSpotCategory(category)
	if !ok {
		return nil, fmt.Errorf("invalid spot category: %s", category)
	}
	return s.spotRepo.FindAvailableByCategory(ctx, parsed)
}
