package reservation

import (
	"context"
	"errors"

	"fitnessmanager/internal/api"
	"fitnessmanager/internal/course"
	"fitnessmanager/internal/db"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const reservationColumns = `id, customer_id, schedule_id, date, status, created_at, cancelled_at`

const detailsSelect = `
	SELECT r.id, r.customer_id, r.schedule_id, r.date, r.status, r.created_at, r.cancelled_at,
	       c.name AS course_name, c.gym_id, s.start_time, s.end_time,
	       cu.first_name || ' ' || cu.last_name AS customer_name, cu.email AS customer_email
	FROM reservations r
	JOIN course_schedules s ON s.id = r.schedule_id
	JOIN courses c ON c.id = s.course_id
	JOIN customers cu ON cu.id = r.customer_id
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithScheduleLock(ctx context.Context, scheduleID uuid.UUID, fn func(sched *course.Schedule, l Ledger) error) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			SELECT s.id, s.course_id, s.day_of_week, s.start_time, s.end_time,
			       s.start_date, s.end_date, s.created_at, c.gym_id, c.max_participants
			FROM course_schedules s
			JOIN courses c ON c.id = s.course_id
			WHERE s.id = $1
			FOR UPDATE OF s
		`

		var sched course.Schedule
		if err := tx.GetContext(ctx, &sched, query, scheduleID); err != nil {
			if db.IsNoRows(err) {
				return course.ErrScheduleNotFound
			}
			return err
		}

		return fn(&sched, &txLedger{tx: tx})
	})
}

type txLedger struct {
	tx *sqlx.Tx
}

func (l *txLedger) CountActive(ctx context.Context, scheduleID uuid.UUID, date api.Date) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE schedule_id = $1 AND date = $2 AND status = 'booked'
	`

	var count int
	if err := l.tx.GetContext(ctx, &count, query, scheduleID, date); err != nil {
		return 0, err
	}
	return count, nil
}

func (l *txLedger) CustomerHasReservation(ctx context.Context, customerID int, scheduleID uuid.UUID, date api.Date) (bool, error) {
	return db.Exists(ctx, l.tx, `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE customer_id = $1 AND schedule_id = $2 AND date = $3 AND status = 'booked'
		)
	`, customerID, scheduleID, date)
}

func (l *txLedger) Create(ctx context.Context, customerID int, scheduleID uuid.UUID, date api.Date) (*Reservation, error) {
	query := `
		INSERT INTO reservations (customer_id, schedule_id, date, status)
		VALUES ($1, $2, $3, 'booked')
		RETURNING ` + reservationColumns

	var res Reservation
	if err := l.tx.GetContext(ctx, &res, query, customerID, scheduleID, date); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateReservation
		}
		return nil, err
	}
	return &res, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*ReservationWithDetails, error) {
	query := detailsSelect + ` WHERE r.id = $1`

	var res ReservationWithDetails
	if err := r.db.GetContext(ctx, &res, query, id); err != nil {
		if db.IsNoRows(err) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *repository) Cancel(ctx context.Context, id uuid.UUID) error {
	return db.ExecOne(ctx, r.db, ErrReservationNotFound, `
		UPDATE reservations
		SET status = 'cancelled', cancelled_at = NOW()
		WHERE id = $1 AND status = 'booked'
	`, id)
}

func (r *repository) ListByCustomer(ctx context.Context, customerID int) ([]ReservationWithDetails, error) {
	query := detailsSelect + `
		WHERE r.customer_id = $1
		ORDER BY r.date DESC, s.start_time
	`

	reservations := []ReservationWithDetails{}
	if err := r.db.SelectContext(ctx, &reservations, query, customerID); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *repository) ListBySchedule(ctx context.Context, scheduleID uuid.UUID, date *api.Date) ([]ReservationWithDetails, error) {
	query := detailsSelect + ` WHERE r.schedule_id = $1`
	args := []interface{}{scheduleID}

	if date != nil {
		query += " AND r.date = $2"
		args = append(args, *date)
	}

	query += " ORDER BY r.date, r.created_at"

	reservations := []ReservationWithDetails{}
	if err := r.db.SelectContext(ctx, &reservations, query, args...); err != nil {
		return nil, err
	}
	return reservations, nil
}
