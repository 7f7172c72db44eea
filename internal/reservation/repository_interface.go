package reservation

import (
	"context"

	"fitnessmanager/internal/api"
	"fitnessmanager/internal/course"

	"github.com/google/uuid"
)

// Ledger reads and writes reservations while a schedule is locked.
type Ledger interface {
	CountActive(ctx context.Context, scheduleID uuid.UUID, date api.Date) (int, error)
	CustomerHasReservation(ctx context.Context, customerID int, scheduleID uuid.UUID, date api.Date) (bool, error)
	Create(ctx context.Context, customerID int, scheduleID uuid.UUID, date api.Date) (*Reservation, error)
}

type Repository interface {
	// WithScheduleLock loads the schedule and holds an exclusive lock on it
	// until fn returns. Writes made through the Ledger commit only when fn
	// returns nil.
	WithScheduleLock(ctx context.Context, scheduleID uuid.UUID, fn func(sched *course.Schedule, l Ledger) error) error

	GetByID(ctx context.Context, id uuid.UUID) (*ReservationWithDetails, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	ListByCustomer(ctx context.Context, customerID int) ([]ReservationWithDetails, error)
	ListBySchedule(ctx context.Context, scheduleID uuid.UUID, date *api.Date) ([]ReservationWithDetails, error)
}
