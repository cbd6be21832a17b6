package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/domain"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/repository"
)

type pgPaymentRepository struct {
	db *sql.DB
}

func NewPgPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &pgPaymentRepository{db: db}
}

func (r *pgPaymentRepository) Create(ctx context.Context, payment *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	query := `INSERT INTO payments
	           (ticket_no, plate, method, paid_time, duration_hours, parking_fee, fine_paid, total_due, amount_paid, balance)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	           RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		payment.TicketNo, payment.Plate, payment.Method, payment.PaidTime,
		payment.DurationHours, payment.ParkingFee, payment.FinePaid,
		payment.TotalDue, payment.AmountPaid, payment.Balance,
	).Scan(&payment.ID)
	if err != nil {
		return nil, fmt.Errorf("PaymentRepository.Create: %w", err)
	}
	return payment, nil
}

func (r *pgPaymentRepository) FindByPlate(ctx context.Context, plate string) ([]domain.PaymentRecord, error) {
	query := `SELECT id, ticket_no, plate, method, paid_time, duration_hours, parking_fee, fine_paid, total_due, amount_paid, balance
	           FROM payments
	           WHERE plate = $1
	           ORDER BY paid_time DESC`

	rows, err := r.db.QueryContext(ctx, query, plate)
	if err != nil {
		return nil, fmt.Errorf("PaymentRepository.FindByPlate: %w", err)
	}
	defer rows.Close()

	var payments []domain.PaymentRecord
	for rows.Next() {
		var p domain.PaymentRecord
		if err := rows.Scan(
			&p.ID, &p.TicketNo, &p.Plate, &p.Method, &p.PaidTime,
			&p.DurationHours, &p.ParkingFee, &p.FinePaid,
			&p.TotalDue, &p.AmountPaid, &p.Balance,
		); err != nil {
			return nil, fmt.Errorf("PaymentRepository.FindByPlate (scanning row): %w", err)
		}
		p.PaidTime = p.PaidTime.In(time.UTC)
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("PaymentRepository.FindByPlate (rows error): %w", err)
	}
	return payments, nil
}
