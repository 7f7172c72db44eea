package payment

import (
	"context"

	"fitnessmanager/internal/api"
	"fitnessmanager/internal/logger"
)

var ErrCustomerNotFound = api.NotFound("customer not found")

type CustomerChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type Service interface {
	Create(ctx context.Context, req CreatePaymentRequest) (*Payment, error)
	ListByCustomer(ctx context.Context, customerID, limit, offset int) ([]Payment, error)
}

type service struct {
	repo      Repository
	customers CustomerChecker
}

func NewService(repo Repository, customers CustomerChecker) Service {
	return &service{repo: repo, customers: customers}
}

func (s *service) Create(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	exists, err := s.customers.Exists(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCustomerNotFound
	}

	p, err := s.repo.Create(ctx, &Payment{
		CustomerID:      req.CustomerID,
		Date:            req.Date,
		AmountCents:     req.AmountCents,
		DiscountPercent: req.DiscountPercent,
		PaymentMethod:   req.PaymentMethod,
		PaidMonth:       req.PaidMonth,
		PaidYear:        req.PaidYear,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("payment recorded", "payment_id", p.ID, "customer_id", p.CustomerID, "period", p.PaidMonth, "year", p.PaidYear)
	return p, nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID, limit, offset int) ([]Payment, error) {
	exists, err := s.customers.Exists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCustomerNotFound
	}
	return s.repo.ListByCustomer(ctx, customerID, limit, offset)
}
