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

type pgParkingSessionRepository struct {
	db *sql.DB
}

func NewPgParkingSessionRepository(db *sql.DB) repository.ParkingSessionRepository {
	return &pgParkingSessionRepository{db: db}
}

const sessionColumns = `ticket_no, plate, spot_id, vehicle_category, has_handicap_card, is_vip,
	entry_time, fine_scheme, exit_time, duration_hours, parking_fee, created_at, updated_at`

func (r *pgParkingSessionRepository) Create(ctx context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error) {
	query := `INSERT INTO parking_sessions
	           (ticket_no, plate, spot_id, vehicle_category, has_handicap_card, is_vip,
	            entry_time, fine_scheme, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		session.TicketNo, session.Plate, session.SpotID, session.VehicleCategory,
		session.HasHandicapCard, session.IsVIP, session.EntryTime, session.FineScheme,
	).Scan(&session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			// parking_sessions_one_open_per_plate is a partial unique index
			// on (plate) WHERE exit_time IS NULL; it backs the one open
			// session per plate invariant at the storage layer.
			if pqErr.Constraint == "parking_sessions_one_open_per_plate" {
				return nil, fmt.Errorf("%w: plate '%s' already has an open session", repository.ErrDuplicateEntry, session.Plate)
			}
			return nil, fmt.Errorf("%w: ticket '%s' already exists", repository.ErrDuplicateEntry, session.TicketNo)
		}
		return nil, fmt.Errorf("ParkingSessionRepository.Create: %w", err)
	}
	session.CreatedAt = session.CreatedAt.In(time.UTC)
	session.UpdatedAt = session.UpdatedAt.In(time.UTC)
	return session, nil
}

func (r *pgParkingSessionRepository) FindByTicket(ctx context.Context, ticketNo string) (*domain.ParkingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM parking_sessions WHERE ticket_no = $1`
	session, err := r.scanOne(r.db.QueryRowContext(ctx, query, ticketNo))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingSessionRepository.FindByTicket: %w", err)
	}
	return session, nil
}

func (r *pgParkingSessionRepository) FindOpenByPlate(ctx context.Context, plate string) (*domain.ParkingSession, error) {
	query := `SELECT ` + sessionColumns + `
	           FROM parking_sessions
	           WHERE plate = $1 AND exit_time IS NULL
	           ORDER BY entry_time DESC LIMIT 1`
	session, err := r.scanOne(r.db.QueryRowContext(ctx, query, plate))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoOpenSession
		}
		return nil, fmt.Errorf("ParkingSessionRepository.FindOpenByPlate: %w", err)
	}
	return session, nil
}

func (r *pgParkingSessionRepository) FindLatestByPlate(ctx context.Context, plate string) (*domain.ParkingSession, error) {
	query := `SELECT ` + sessionColumns + `
	           FROM parking_sessions
	           WHERE plate = $1
	           ORDER BY entry_time DESC LIMIT 1`
	session, err := r.scanOne(r.db.QueryRowContext(ctx, query, plate))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingSessionRepository.FindLatestByPlate: %w", err)
	}
	return session, nil
}

func (r *pgParkingSessionRepository) FindOpen(ctx context.Context) ([]domain.ParkingSession, error) {
	query := `SELECT ` + sessionColumns + `
	           FROM parking_sessions
	           WHERE exit_time IS NULL
	           ORDER BY entry_time ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ParkingSessionRepository.FindOpen: %w", err)
	}
	defer rows.Close()

	var sessions []domain.ParkingSession
	for rows.Next() {
		session, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("ParkingSessionRepository.FindOpen (scanning row): %w", err)
		}
		sessions = append(sessions, *session)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ParkingSessionRepository.FindOpen (rows error): %w", err)
	}
	return sessions, nil
}

func (r *pgParkingSessionRepository) Close(ctx context.Context, ticketNo string, exitTime time.Time, durationHours int, parkingFee float64) error {
	// The exit_time IS NULL guard is the compare-and-swap: a session that
	// was already settled never matches, so the caller can distinguish a
	// double close from a successful one.
	query := `UPDATE parking_sessions
	           SET exit_time = $1, duration_hours = $2, parking_fee = $3, updated_at = CURRENT_TIMESTAMP
	           WHERE ticket_no = $4 AND exit_time IS NULL`
	res, err := r.db.ExecContext(ctx, query, exitTime, durationHours, parkingFee, ticketNo)
	if err != nil {
		return fmt.Errorf("ParkingSessionRepository.Close: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *pgParkingSessionRepository) scanOne(row rowScanner) (*domain.ParkingSession, error) {
	session := &domain.ParkingSession{}
	err := row.Scan(
		&session.TicketNo, &session.Plate, &session.SpotID, &session.VehicleCategory,
		&session.HasHandicapCard, &session.IsVIP, &session.EntryTime, &session.FineScheme,
		&session.ExitTime, &session.DurationHours, &session.ParkingFee,
		&session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	session.EntryTime = session.EntryTime.In(time.UTC)
	if session.ExitTime.Valid {
		session.ExitTime.Time = session.ExitTime.Time.In(time.UTC)
	}
	session.CreatedAt = session.CreatedAt.In(time.UTC)
	session.UpdatedAt = session.UpdatedAt.In(time.UTC)
	return session, nil
}
