package reservation

import (
	"context"
	"sync"
	"time"

	"fitnessmanager/internal/api"
	"fitnessmanager/internal/course"

	"github.com/google/uuid"
)

// fakeRepo is an in-memory Repository with one mutex per schedule, standing
// in for the row lock taken by the SQL repository.
type fakeRepo struct {
	mu           sync.Mutex
	locks        map[uuid.UUID]*sync.Mutex
	schedules    map[uuid.UUID]course.Schedule
	reservations []*Reservation
}

func newFakeRepo(schedules ...course.Schedule) *fakeRepo {
	f := &fakeRepo{
		locks:     map[uuid.UUID]*sync.Mutex{},
		schedules: map[uuid.UUID]course.Schedule{},
	}
	for _, s := range schedules {
		f.schedules[s.ID] = s
		f.locks[s.ID] = &sync.Mutex{}
	}
	return f
}

func (f *fakeRepo) WithScheduleLock(_ context.Context, id uuid.UUID, fn func(*course.Schedule, Ledger) error) error {
	f.mu.Lock()
	sched, ok := f.schedules[id]
	lock := f.locks[id]
	f.mu.Unlock()
	if !ok {
		return course.ErrScheduleNotFound
	}

	lock.Lock()
	defer lock.Unlock()

	l := &fakeLedger{repo: f}
	if err := fn(&sched, l); err != nil {
		return err
	}

	f.mu.Lock()
	f.reservations = append(f.reservations, l.pending...)
	f.mu.Unlock()
	return nil
}

func (f *fakeRepo) details(r *Reservation) *ReservationWithDetails {
	sched := f.schedules[r.ScheduleID]
	return &ReservationWithDetails{
		Reservation: *r,
		GymID:       sched.GymID,
		StartTime:   sched.StartTime,
		EndTime:     sched.EndTime,
	}
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*ReservationWithDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.ID == id {
			return f.details(r), nil
		}
	}
	return nil, ErrReservationNotFound
}

func (f *fakeRepo) Cancel(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.ID == id && r.Status == StatusBooked {
			now := time.Now()
			r.Status = StatusCancelled
			r.CancelledAt = &now
			return nil
		}
	}
	return ErrReservationNotFound
}

func (f *fakeRepo) ListByCustomer(_ context.Context, customerID int) ([]ReservationWithDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []ReservationWithDetails{}
	for _, r := range f.reservations {
		if r.CustomerID == customerID {
			out = append(out, *f.details(r))
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBySchedule(_ context.Context, scheduleID uuid.UUID, date *api.Date) ([]ReservationWithDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []ReservationWithDetails{}
	for _, r := range f.reservations {
		if r.ScheduleID == scheduleID && (date == nil || r.Date.Equal(*date)) {
			out = append(out, *f.details(r))
		}
	}
	return out, nil
}

func (f *fakeRepo) GetScheduleByID(_ context.Context, id uuid.UUID) (*course.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sched, ok := f.schedules[id]
	if !ok {
		return nil, course.ErrScheduleNotFound
	}
	return &sched, nil
}

func (f *fakeRepo) booked() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.reservations {
		if r.Status == StatusBooked {
			n++
		}
	}
	return n
}

type fakeLedger struct {
	repo    *fakeRepo
	pending []*Reservation
}

func (l *fakeLedger) CountActive(_ context.Context, scheduleID uuid.UUID, date api.Date) (int, error) {
	l.repo.mu.Lock()
	defer l.repo.mu.Unlock()
	n := 0
	for _, r := range l.repo.reservations {
		if r.ScheduleID == scheduleID && r.Date.Equal(date) && r.Status == StatusBooked {
			n++
		}
	}
	return n, nil
}

func (l *fakeLedger) CustomerHasReservation(_ context.Context, customerID int, scheduleID uuid.UUID, date api.Date) (bool, error) {
	l.repo.mu.Lock()
	defer l.repo.mu.Unlock()
	for _, r := range l.repo.reservations {
		if r.CustomerID == customerID && r.ScheduleID == scheduleID && r.Date.Equal(date) && r.Status == StatusBooked {
			return true, nil
		}
	}
	return false, nil
}

func (l *fakeLedger) Create(_ context.Context, customerID int, scheduleID uuid.UUID, date api.Date) (*Reservation, error) {
	r := &Reservation{
		ID:         uuid.New(),
		CustomerID: customerID,
		ScheduleID: scheduleID,
		Date:       date,
		Status:     StatusBooked,
		CreatedAt:  time.Now(),
	}
	l.pending = append(l.pending, r)
	return r, nil
}

type customersStub map[int]bool

func (s customersStub) Exists(_ context.Context, id int) (bool, error) {
	return s[id], nil
}
