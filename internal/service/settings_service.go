package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/repository"
)

// SettingsService exposes the facility-wide configuration. The active
// fine scheme set here applies to future entries only; sessions already
// open keep the scheme name bound at their entry.
type SettingsService struct {
	settingsRepo      repository.FacilitySettingsRepository
	defaultFineScheme string
}

func NewSettingsService(settingsRepo repository.FacilitySettingsRepository, defaultFineScheme string) *SettingsService {
	if !KnownScheme(defaultFineScheme) {
		defaultFineScheme = DefaultSchemeName
	}
	return &SettingsService{settingsRepo: settingsRepo, defaultFineScheme: defaultFineScheme}
}

func (s *SettingsService) ActiveFineScheme(ctx context.Context) (string, error) {
	name, err := s.settingsRepo.GetActiveFineScheme(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.defaultFineScheme, nil
		}
		return "", err
	}
	if !KnownScheme(name) {
		log.Printf("Stored fine scheme '%s' is unknown; reporting default '%s'", name, s.defaultFineScheme)
		return s.defaultFineScheme, nil
	}
	return name, nil
}

func (s *SettingsService) SetActiveFineScheme(ctx context.Context, name string) error {
	if !KnownScheme(name) {
		return fmt.Errorf("unknown fine scheme: %s", name)
	}
	if err := s.settingsRepo.SetActiveFineScheme(ctx, name); err != nil {
		return err
	}
	log.Printf("Active fine scheme set to '%s' (applies to future entries only)", name)
	return nil
}
