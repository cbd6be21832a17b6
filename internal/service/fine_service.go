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

// FineService is the ledger of outstanding fines per plate.
type FineService struct {
	fineRepo repository.FineRepository
}

func NewFineService(fineRepo repository.FineRepository) *FineService {
	return &FineService{fineRepo: fineRepo}
}

// OutstandingFines returns the unpaid fines for a plate, oldest issued
// first. Payment application walks this order.
func (s *FineService) OutstandingFines(ctx context.Context, plate string) ([]domain.FineRecord, error) {
	return s.fineRepo.FindUnpaidByPlate(ctx, plate)
}

func (s *FineService) TotalOutstanding(ctx context.Context, plate string) (float64, error) {
	return s.fineRepo.TotalUnpaidByPlate(ctx, plate)
}

// RecordFine materializes a fine against a plate. When an unpaid fine
// with the same (plate, reason) already exists the new cause merges into
// it: the amount is refreshed in place and no duplicate row is created.
// This is the dedup guard that keeps one settlement attempt from billing
// the same violation twice.
func (s *FineService) RecordFine(ctx context.Context, plate string, reason domain.FineReason, amount float64, issuedAt time.Time) (*domain.FineRecord, error) {
	if amount <= 0 {
		return nil, nil
	}

	existing, err := s.fineRepo.FindUnpaidByPlateAndReason(ctx, plate, reason)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking existing fine: %w", err)
	}
	if existing != nil {
		if existing.Amount != amount {
			log.Printf("Merging %s fine for plate %s: amount %.2f -> %.2f", reason, plate, existing.Amount, amount)
			if err := s.fineRepo.UpdateAmount(ctx, existing.ID, amount); err != nil {
				return nil, fmt.Errorf("merging fine: %w", err)
			}
			existing.Amount = amount
		}
		return existing, nil
	}

	fine := &domain.FineRecord{
		Plate:    plate,
		Reason:   reason,
		Amount:   amount,
		IssuedAt: issuedAt,
	}
	created, err := s.fineRepo.Create(ctx, fine)
	if err != nil {
		return nil, fmt.Errorf("recording fine: %w", err)
	}
	log.Printf("Issued %s fine of RM %.2f against plate %s", reason, amount, plate)
	return created, nil
}

// ApplyPayment reduces a fine by the given amount, clamped at zero. The
// fine flips to paid, with a paid timestamp, exactly when its balance
// clears.
func (s *FineService) ApplyPayment(ctx context.Context, fine *domain.FineRecord, amount float64, paidAt time.Time) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	if amount == 0 {
		return nil
	}
	if err := s.fineRepo.Reduce(ctx, fine.ID, amount, paidAt); err != nil {
		return fmt.Errorf("applying payment to fine %d: %w", fine.ID, err)
	}
	fine.Amount -= amount
	if fine.Amount <= 0 {
		fine.Amount = 0
		fine.Paid = true
	}
	return nil
}
