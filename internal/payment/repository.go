package payment

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const paymentColumns = `id, customer_id, date, amount_cents, discount_percent, payment_method, paid_month, paid_year, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Payment) (*Payment, error) {
	query := `
		INSERT INTO payments (customer_id, date, amount_cents, discount_percent, payment_method, paid_month, paid_year)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + paymentColumns

	var created Payment
	err := r.db.QueryRowxContext(ctx, query,
		p.CustomerID, p.Date, p.AmountCents, p.DiscountPercent, p.PaymentMethod, p.PaidMonth, p.PaidYear,
	).StructScan(&created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) ListByCustomer(ctx context.Context, customerID, limit, offset int) ([]Payment, error) {
	if limit <= 0 {
		limit = 50
	}

	payments := []Payment{}
	err := r.db.SelectContext(ctx, &payments, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE customer_id = $1
		ORDER BY paid_year DESC, paid_month DESC, id DESC
		LIMIT $2 OFFSET $3
	`, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return payments, nil
}
