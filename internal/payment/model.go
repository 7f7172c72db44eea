package payment

import (
	"time"

	"fitnessmanager/internal/api"
)

// Payment records a monthly fee paid outside the system.
type Payment struct {
	ID              int       `db:"id" json:"id"`
	CustomerID      int       `db:"customer_id" json:"customer"`
	Date            *api.Date `db:"date" json:"date"`
	AmountCents     *int64    `db:"amount_cents" json:"amount_cents"`
	DiscountPercent *float64  `db:"discount_percent" json:"discount_percent"`
	PaymentMethod   *string   `db:"payment_method" json:"payment_method"`
	PaidMonth       int       `db:"paid_month" json:"paid_month"`
	PaidYear        int       `db:"paid_year" json:"paid_year"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type CreatePaymentRequest struct {
	CustomerID      int       `json:"customer" binding:"required,gt=0"`
	Date            *api.Date `json:"date"`
	AmountCents     *int64    `json:"amount_cents" binding:"omitempty,gte=0"`
	DiscountPercent *float64  `json:"discount_percent" binding:"omitempty,gte=0,lte=100"`
	PaymentMethod   *string   `json:"payment_method" binding:"omitempty,max=255"`
	PaidMonth       int       `json:"paid_month" binding:"required,min=1,max=12"`
	PaidYear        int       `json:"paid_year" binding:"required,min=2023,max=2042"`
}
