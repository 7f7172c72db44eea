package reservation

import (
	"context"
	"errors"
	"time"

	"fitnessmanager/internal/access"
	"fitnessmanager/internal/api"
	"fitnessmanager/internal/course"
	"fitnessmanager/internal/logger"
	"fitnessmanager/internal/metrics"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound  = api.NotFound("reservation not found")
	ErrPastDate             = api.NewError(api.KindInvalidDate, "reservation date cannot be in the past")
	ErrCapacityExceeded     = api.NewError(api.KindCapacityExceeded, "maximum number of participants reached for this course")
	ErrDuplicateReservation = api.Conflict("customer already holds a reservation for this course on this date")
	ErrOnBehalfForbidden    = api.Forbidden("only staff can reserve for another customer")
	ErrStaffOnly            = api.Forbidden("only staff can list reservations of a schedule")
	ErrCustomerNotFound     = api.NotFound("customer not found")
)

// ScheduleLookup reads a schedule outside the reservation lock.
type ScheduleLookup interface {
	GetScheduleByID(ctx context.Context, id uuid.UUID) (*course.Schedule, error)
}

type CustomerChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type Service interface {
	Reserve(ctx context.Context, caller access.Caller, req CreateReservationRequest) (*Reservation, error)
	Cancel(ctx context.Context, caller access.Caller, id uuid.UUID) error
	Get(ctx context.Context, caller access.Caller, id uuid.UUID) (*ReservationWithDetails, error)
	ListMine(ctx context.Context, caller access.Caller) ([]ReservationWithDetails, error)
	ListForSchedule(ctx context.Context, caller access.Caller, scheduleID uuid.UUID, date *api.Date) ([]ReservationWithDetails, error)
}

type service struct {
	repo      Repository
	scope     access.Scope
	schedules ScheduleLookup
	customers CustomerChecker
	now       func() time.Time
}

func NewService(repo Repository, scope access.Scope, schedules ScheduleLookup, customers CustomerChecker) Service {
	return &service{
		repo:      repo,
		scope:     scope,
		schedules: schedules,
		customers: customers,
		now:       time.Now,
	}
}

// Reserve books a customer onto one occurrence of a schedule. Checks run in
// order: past date, schedule visibility, occurrence, capacity, duplicate.
// Everything after the date check happens under the schedule lock, so
// concurrent callers cannot both take the last place.
func (s *service) Reserve(ctx context.Context, caller access.Caller, req CreateReservationRequest) (res *Reservation, err error) {
	defer func() { metrics.RecordReservation(outcome(err)) }()

	date := *req.Date
	if date.Before(api.DateOf(s.now())) {
		return nil, ErrPastDate
	}

	customerID := caller.CustomerID
	if req.CustomerID != nil && *req.CustomerID != caller.CustomerID {
		if !caller.IsStaff() {
			return nil, ErrOnBehalfForbidden
		}
		exists, err := s.customers.Exists(ctx, *req.CustomerID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrCustomerNotFound
		}
		customerID = *req.CustomerID
	}

	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithScheduleLock(ctx, req.ScheduleID, func(sched *course.Schedule, l Ledger) error {
		if !visible.Contains(sched.GymID) {
			return course.ErrScheduleNotFound
		}
		if !sched.OccursOn(date) {
			return course.ErrNotAnOccurrence
		}

		booked, err := l.CountActive(ctx, sched.ID, date)
		if err != nil {
			return err
		}
		if booked >= sched.MaxParticipants {
			return ErrCapacityExceeded
		}

		dup, err := l.CustomerHasReservation(ctx, customerID, sched.ID, date)
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicateReservation
		}

		res, err = l.Create(ctx, customerID, sched.ID, date)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("reservation created",
		"reservation_id", res.ID,
		"customer_id", customerID,
		"schedule_id", req.ScheduleID,
		"date", date.String(),
	)
	return res, nil
}

func (s *service) Cancel(ctx context.Context, caller access.Caller, id uuid.UUID) error {
	res, err := s.Get(ctx, caller, id)
	if err != nil {
		return err
	}
	if res.Status != StatusBooked {
		return ErrReservationNotFound
	}

	if err := s.repo.Cancel(ctx, id); err != nil {
		return err
	}

	metrics.RecordReservationCancellation()
	return nil
}

// Get returns a reservation to its owner or to staff of the reservation's
// gym. Anyone else gets ErrReservationNotFound.
func (s *service) Get(ctx context.Context, caller access.Caller, id uuid.UUID) (*ReservationWithDetails, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.CustomerID == caller.CustomerID {
		return res, nil
	}
	if !caller.IsStaff() {
		return nil, ErrReservationNotFound
	}

	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !visible.Contains(res.GymID) {
		return nil, ErrReservationNotFound
	}
	return res, nil
}

func (s *service) ListMine(ctx context.Context, caller access.Caller) ([]ReservationWithDetails, error) {
	return s.repo.ListByCustomer(ctx, caller.CustomerID)
}

func (s *service) ListForSchedule(ctx context.Context, caller access.Caller, scheduleID uuid.UUID, date *api.Date) ([]ReservationWithDetails, error) {
	if !caller.IsStaff() {
		return nil, ErrStaffOnly
	}

	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	sched, err := s.schedules.GetScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if !visible.Contains(sched.GymID) {
		return nil, course.ErrScheduleNotFound
	}

	return s.repo.ListBySchedule(ctx, scheduleID, date)
}

func outcome(err error) string {
	if err == nil {
		return metrics.OutcomeCreated
	}

	var e *api.Error
	if !errors.As(err, &e) {
		return metrics.OutcomeError
	}

	switch e.Kind {
	case api.KindInvalidDate:
		return metrics.OutcomeInvalidDate
	case api.KindInvalidSchedule:
		return metrics.OutcomeInvalidSchedule
	case api.KindCapacityExceeded:
		return metrics.OutcomeCapacityExceeded
	case api.KindConflict:
		return metrics.OutcomeDuplicate
	case api.KindNotFound:
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
