package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/domain"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/repository"

	"github.com/lib/pq"
)

type pgParkingSpotRepository struct {
	db *sql.DB
}

func NewPgParkingSpotRepository(db *sql.DB) repository.ParkingSpotRepository {
	return &pgParkingSpotRepository{db: db}
}

func (r *pgParkingSpotRepository) Create(ctx context.Context, spot *domain.ParkingSpot) (*domain.ParkingSpot, error) {
	query := `INSERT INTO parking_spots (spot_id, category, status, current_plate, created_at, updated_at)
	           VALUES ($1, $2, $3, NULL, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		spot.SpotID, spot.Category, domain.SpotAvailable,
	).Scan(&spot.CreatedAt, &spot.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: spot '%s' already exists", repository.ErrDuplicateEntry, spot.SpotID)
		}
		return nil, fmt.Errorf("ParkingSpotRepository.Create: %w", err)
	}
	spot.Status = domain.SpotAvailable
	spot.CreatedAt = spot.CreatedAt.In(time.UTC)
	spot.UpdatedAt = spot.UpdatedAt.In(time.UTC)
	return spot, nil
}

func (r *pgParkingSpotRepository) FindByID(ctx context.Context, spotID string) (*domain.ParkingSpot, error) {
	spot := &domain.ParkingSpot{}
	query := `SELECT spot_id, category, status, current_plate, created_at, updated_at
	           FROM parking_spots WHERE spot_id = $1`

	err := r.db.QueryRowContext(ctx, query, spotID).Scan(
		&spot.SpotID, &spot.Category, &spot.Status, &spot.CurrentPlate,
		&spot.CreatedAt, &spot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingSpotRepository.FindByID: %w", err)
	}
	spot.CreatedAt = spot.CreatedAt.In(time.UTC)
	spot.UpdatedAt = spot.UpdatedAt.In(time.UTC)
	return spot, nil
}

func (r *pgParkingSpotRepository) FindAll(ctx context.Context) ([]domain.ParkingSpot, error) {
	query := `SELECT spot_id, category, status, current_plate, created_at, updated_at
	           FROM parking_spots ORDER BY spot_id`
	return r.queryspots(ctx, query)
}

func (r *pgParkingSpotRepository) FindAvailableByCategory(ctx context.Context, category domain.SpotCategory) ([]domain.ParkingSpot, error) {
	query := `SELECT spot_id, category, status, current_plate, created_at, updated_at
	           FROM parking_spots
	           WHERE category = $1 AND status = $2
	           ORDER BY spot_id`
	return r.queryspots(ctx, query, category, domain.SpotAvailable)
}

func (r *pgParkingSpotRepository) queryspots(ctx context.Context, query string, args ...interface{}) ([]domain.ParkingSpot, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ParkingSpotRepository query: %w", err)
	}
	defer rows.Close()

	var spots []domain.ParkingSpot
	for rows.Next() {
		var spot domain.ParkingSpot
		if err := rows.Scan(
			&spot.SpotID, &spot.Category, &spot.Status, &spot.CurrentPlate,
			&spot.CreatedAt, &spot.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ParkingSpotRepository query (scanning row): %w", err)
		}
		spot.CreatedAt = spot.CreatedAt.In(time.UTC)
		spot.UpdatedAt = spot.UpdatedAt.In(time.UTC)
		spots = append(spots, spot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ParkingSpotRepository query (rows error): %w", err)
	}
	return spots, nil
}

func (r *pgParkingSpotRepository) SetOccupied(ctx context.Context, spotID string, plate string) error {
	query := `UPDATE parking_spots
	           SET status = $1, current_plate = $2, updated_at = CURRENT_TIMESTAMP
	           WHERE spot_id = $3`
	res, err := r.db.ExecContext(ctx, query, domain.SpotOccupied, plate, spotID)
	if err != nil {
		return fmt.Errorf("ParkingSpotRepository.SetOccupied: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgParkingSpotRepository) SetAvailable(ctx context.Context, spotID string) error {
	query := `UPDATE parking_spots
	           SET status = $1, current_plate = NULL, updated_at = CURRENT_TIMESTAMP
	           WHERE spot_id = $2`
	res, err := r.db.ExecContext(ctx, query, domain.SpotAvailable, spotID)
	if err != nil {
		return fmt.Errorf("ParkingSpotRepository.SetAvailable: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
