package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/backoffice/internal/db"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/nikolayk812/backoffice/internal/port"
)

type paymentRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewPayment(pool *pgxpool.Pool) port.PaymentRepository {
	return &paymentRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewPaymentWithTx(tx pgx.Tx) port.PaymentRepository {
	return &paymentRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *paymentRepository) GetPayment(ctx context.Context, paymentID uuid.UUID) (domain.Payment, error) {
	dbPayment, err := r.q.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Payment{}, fmt.Errorf("q.GetPayment: %w", domain.ErrPaymentNotFound)
		}
		return domain.Payment{}, fmt.Errorf("q.GetPayment: %w", err)
	}

	return mapDBPaymentToDomain(dbPayment)
}

func (r *paymentRepository) GetPaymentForUpdate(ctx context.Context, paymentID uuid.UUID) (domain.Payment, error) {
	dbPayment, err := r.q.GetPaymentForUpdate(ctx, paymentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Payment{}, fmt.Errorf("q.GetPaymentForUpdate: %w", domain.ErrPaymentNotFound)
		}
		return domain.Payment{}, fmt.Errorf("q.GetPaymentForUpdate: %w", err)
	}

	return mapDBPaymentToDomain(dbPayment)
}

func (r *paymentRepository) ListOrderPayments(ctx context.Context, orderID uuid.UUID) ([]domain.Payment, error) {
	dbPayments, err := r.q.ListOrderPayments(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrderPayments: %w", err)
	}

	payments := make([]domain.Payment, 0, len(dbPayments))
	for _, dbPayment := range dbPayments {
		payment, err := mapDBPaymentToDomain(dbPayment)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	return payments, nil
}

func (r *paymentRepository) InsertPayment(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	if payment.OrderID == uuid.Nil {
		return payment, errors.New("orderID is empty")
	}

	row, err := r.q.InsertPayment(ctx, db.InsertPaymentParams{
		OrderID:       payment.OrderID,
		Status:        string(payment.Status),
		Method:        string(payment.Method),
		Amount:        payment.Amount.Amount,
		Currency:      payment.Amount.Currency.String(),
		PaidAt:        payment.PaidAt,
		TransactionID: payment.TransactionID,
		Notes:         payment.Notes,
	})
	if err != nil {
		return payment, fmt.Errorf("q.InsertPayment: %w", err)
	}

	payment.ID = row.ID
	payment.CreatedAt = row.CreatedAt
	payment.UpdatedAt = row.UpdatedAt

	return payment, nil
}

func (r *paymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	if payment.ID == uuid.Nil {
		return payment, errors.New("paymentID is empty")
	}

	updatedAt, err := r.q.UpdatePayment(ctx, db.UpdatePaymentParams{
		ID:            payment.ID,
		Status:        string(payment.Status),
		Method:        string(payment.Method),
		Amount:        payment.Amount.Amount,
		PaidAt:        payment.PaidAt,
		TransactionID: payment.TransactionID,
		Notes:         payment.Notes,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payment, fmt.Errorf("q.UpdatePayment: %w", domain.ErrPaymentNotFound)
		}
		return payment, fmt.Errorf("q.UpdatePayment: %w", err)
	}

	payment.UpdatedAt = updatedAt

	return payment, nil
}

func (r *paymentRepository) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	if paymentID == uuid.Nil {
		return errors.New("paymentID is empty")
	}

	cmdTag, err := r.q.DeletePayment(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("q.DeletePayment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.DeletePayment: %w", domain.ErrPaymentNotFound)
	}

	return nil
}

func mapDBPaymentToDomain(row db.Payment) (domain.Payment, error) {
	var p domain.Payment

	cur, err := domain.ParseCurrency(row.Currency)
	if err != nil {
		return p, err
	}

	status, err := domain.ToPaymentStatus(row.Status)
	if err != nil {
		return p, fmt.Errorf("domain.ToPaymentStatus: %w", err)
	}

	method, err := domain.ToPaymentMethod(row.Method)
	if err != nil {
		return p, fmt.Errorf("domain.ToPaymentMethod: %w", err)
	}

	return domain.Payment{
		ID:            row.ID,
		OrderID:       row.OrderID,
		Status:        status,
		Method:        method,
		Amount:        domain.Money{Amount: row.Amount, Currency: cur},
		PaidAt:        row.PaidAt,
		TransactionID: row.TransactionID,
		Notes:         row.Notes,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}
