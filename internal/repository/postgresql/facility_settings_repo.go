package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/repository"
)

const activeFineSchemeKey = "active_fine_scheme"

type pgFacilitySettingsRepository struct {
	db *sql.DB
}

func NewPgFacilitySettingsRepository(db *sql.DB) repository.FacilitySettingsRepository {
	return &pgFacilitySettingsRepository{db: db}
}

func (r *pgFacilitySettingsRepository) GetActiveFineScheme(ctx context.Context) (string, error) {
	var value string
	query := `SELECT value FROM facility_settings WHERE key = $1`
	err := r.db.QueryRowContext(ctx, query, activeFineSchemeKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("FacilitySettingsRepository.GetActiveFineScheme: %w", err)
	}
	return value, nil
}

func (r *pgFacilitySettingsRepository) SetActiveFineScheme(ctx context.Context, name string) error {
	query := `INSERT INTO facility_settings (key, value)
	           VALUES ($1, $2)
	           ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := r.db.ExecContext(ctx, query, activeFineSchemeKey, name); err != nil {
		return fmt.Errorf("FacilitySettingsRepository.SetActiveFineScheme: %w", err)
	}
	return nil
}
