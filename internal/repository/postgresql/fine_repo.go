package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/domain"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/repository"
)

type pgFineRepository struct {
	db *sql.DB
}

func NewPgFineRepository(db *sql.DB) repository.FineRepository {
	return &pgFineRepository{db: db}
}

func (r *pgFineRepository) Create(ctx context.Context, fine *domain.FineRecord) (*domain.FineRecord, error) {
	query := `INSERT INTO fines (plate, reason, amount, issued_at, paid)
	           VALUES ($1, $2, $3, $4, FALSE)
	           RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		fine.Plate, fine.Reason, fine.Amount, fine.IssuedAt,
	).Scan(&fine.ID)
	if err != nil {
		return nil, fmt.Errorf("FineRepository.Create: %w", err)
	}
	fine.Paid = false
	return fine, nil
}

func (r *pgFineRepository) FindUnpaidByPlate(ctx context.Context, plate string) ([]domain.FineRecord, error) {
	// Oldest first: payment allocation walks fines FIFO.
	query := `SELECT id, plate, reason, amount, issued_at, paid, paid_at
	           FROM fines
	           WHERE plate = $1 AND paid = FALSE
	           ORDER BY issued_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, plate)
	if err != nil {
		return nil, fmt.Errorf("FineRepository.FindUnpaidByPlate: %w", err)
	}
	defer rows.Close()

	var fines []domain.FineRecord
	for rows.Next() {
		var fine domain.FineRecord
		if err := rows.Scan(
			&fine.ID, &fine.Plate, &fine.Reason, &fine.Amount,
			&fine.IssuedAt, &fine.Paid, &fine.PaidAt,
		); err != nil {
			return nil, fmt.Errorf("FineRepository.FindUnpaidByPlate (scanning row): %w", err)
		}
		fine.IssuedAt = fine.IssuedAt.In(time.UTC)
		fines = append(fines, fine)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("FineRepository.FindUnpaidByPlate (rows error): %w", err)
	}
	return fines, nil
}

func (r *pgFineRepository) FindUnpaidByPlateAndReason(ctx context.Context, plate string, reason domain.FineReason) (*domain.FineRecord, error) {
	fine := &domain.FineRecord{}
	query := `SELECT id, plate, reason, amount, issued_at, paid, paid_at
	           FROM fines
	           WHERE plate = $1 AND reason = $2 AND paid = FALSE
	           ORDER BY issued_at ASC, id ASC LIMIT 1`

	err := r.db.QueryRowContext(ctx, query, plate, reason).Scan(
		&fine.ID, &fine.Plate, &fine.Reason, &fine.Amount,
		&fine.IssuedAt, &fine.Paid, &fine.PaidAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("FineRepository.FindUnpaidByPlateAndReason: %w", err)
	}
	fine.IssuedAt = fine.IssuedAt.In(time.UTC)
	return fine, nil
}

func (r *pgFineRepository) UpdateAmount(ctx context.Context, fineID int, amount float64) error {
	query := `UPDATE fines SET amount = $1 WHERE id = $2 AND paid = FALSE`
	res, err := r.db.ExecContext(ctx, query, amount, fineID)
	if err != nil {
		return fmt.Errorf("FineRepository.UpdateAmount: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgFineRepository) Reduce(ctx context.Context, fineID int, amount float64, paidAt time.Time) error {
	// GREATEST clamps the balance at zero; the paid flag and timestamp flip
	// in the same statement the moment the balance clears.
	query := `UPDATE fines
	           SET amount = GREATEST(amount - $1, 0),
	               paid = (amount - $1 <= 0),
	               paid_at = CASE WHEN amount - $1 <= 0 THEN $2 ELSE paid_at END
	           WHERE id = $3 AND paid = FALSE`
	res, err := r.db.ExecContext(ctx, query, amount, paidAt, fineID)
	if err != nil {
		return fmt.Errorf("FineRepository.Reduce: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgFineRepository) TotalUnpaidByPlate(ctx context.Context, plate string) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(amount), 0) FROM fines WHERE plate = $1 AND paid = FALSE`
	if err := r.db.QueryRowContext(ctx, query, plate).Scan(&total); err != nil {
		return 0, fmt.Errorf("FineRepository.TotalUnpaidByPlate: %w", err)
	}
	return total, nil
}
