package service

import (
	"errors"
	"testing"
	"time"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/domain"
)

func TestBillableHours(t *testing.T) {
	entry := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		stay time.Duration
		want int
	}{
		{"instant exit still bills one hour", 0, 1},
		{"one minute", time.Minute, 1},
		{"fifty nine minutes", 59 * time.Minute, 1},
		{"exactly one hour", time.Hour, 1},
		{"sixty one minutes rounds up", 61 * time.Minute, 2},
		{"ninety minutes", 90 * time.Minute, 2},
		{"exactly one day", 24 * time.Hour, 24},
		{"one minute past a day", 24*time.Hour + time.Minute, 25},
		{"twenty five hours one minute", 25*time.Hour + time.Minute, 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BillableHours(entry, entry.Add(tt.stay))
			if err != nil {
				t.Fatalf("BillableHours returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("BillableHours(%v) = %d, want %d", tt.stay, got, tt.want)
			}
		})
	}
}

func TestBillableHoursRejectsExitBeforeEntry(t *testing.T) {
	entry := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	_, err := BillableHours(entry, entry.Add(-time.Minute))
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
}

func TestOverstayHours(t *testing.T) {
	tests := []struct {
		hours int
		want  int
	}{
		{1, 0},
		{23, 0},
		{24, 0},
		{25, 1},
		{26, 2},
		{48, 24},
		{100, 76},
	}
	for _, tt := range tests {
		if got := OverstayHours(tt.hours); got != tt.want {
			t.Errorf("OverstayHours(%d) = %d, want %d", tt.hours, got, tt.want)
		}
	}
}

func TestHourlyRate(t *testing.T) {
	car := domain.Vehicle{Plate: "WXY1234", Category: domain.VehicleCar}

	tests := []struct {
		name     string
		category domain.SpotCategory
		vehicle  domain.Vehicle
		want     float64
	}{
		{"compact", domain.SpotCompact, car, 2.0},
		{"regular", domain.SpotRegular, car, 5.0},
		{"handicapped spot without card", domain.SpotHandicapped, car, 2.0},
		{"reserved", domain.SpotReserved, car, 10.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HourlyRate(tt.category, tt.vehicle); got != tt.want {
				t.Errorf("HourlyRate(%s) = %.2f, want %.2f", tt.category, got, tt.want)
			}
		})
	}
}

func TestHourlyRateHandicapCardOverride(t *testing.T) {
	holder := domain.Vehicle{
		Plate:           "HND4321",
		Category:        domain.VehicleHandicapped,
		HasHandicapCard: true,
	}

	if got := HourlyRate(domain.SpotHandicapped, holder); got != 0.0 {
		t.Errorf("card holder in handicapped spot: rate = %.2f, want 0.00", got)
	}
	// The card beats the spot's nominal rate everywhere else, including the
	// expensive reserved category.
	for _, category := range []domain.SpotCategory{domain.SpotCompact, domain.SpotRegular, domain.SpotReserved} {
		if got := HourlyRate(category, holder); got != 2.0 {
			t.Errorf("card holder in %s spot: rate = %.2f, want 2.00", category, got)
		}
	}
}
