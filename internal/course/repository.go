package course

import (
	"context"

	"fitnessmanager/internal/api"
	"fitnessmanager/internal/db"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const courseColumns = `id, name, description, duration, max_participants, gym_id, room_id, trainer_id, created_at`

const scheduleSelect = `
	SELECT s.id, s.course_id, s.day_of_week, s.start_time, s.end_time,
	       s.start_date, s.end_date, s.created_at, c.gym_id, c.max_participants
	FROM course_schedules s
	JOIN courses c ON c.id = s.course_id
`

const instanceColumns = `id, course_schedule_id, date, start_time, end_time, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCourse(ctx context.Context, c *Course) (*Course, error) {
	query := `
		INSERT INTO courses (name, description, duration, max_participants, gym_id, room_id, trainer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + courseColumns

	var created Course
	err := r.db.GetContext(ctx, &created, query,
		c.Name, c.Description, c.Duration, c.MaxParticipants, c.GymID, c.RoomID, c.TrainerID)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) UpdateCourse(ctx context.Context, c *Course) (*Course, error) {
	query := `
		UPDATE courses
		SET name = $2, description = $3, duration = $4, max_participants = $5,
		    gym_id = $6, room_id = $7, trainer_id = $8
		WHERE id = $1
		RETURNING ` + courseColumns

	var updated Course
	err := r.db.GetContext(ctx, &updated, query,
		c.ID, c.Name, c.Description, c.Duration, c.MaxParticipants, c.GymID, c.RoomID, c.TrainerID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *repository) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	return db.ExecOne(ctx, r.db, ErrCourseNotFound, `DELETE FROM courses WHERE id = $1`, id)
}

func (r *repository) GetCourseByID(ctx context.Context, id uuid.UUID) (*Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	var c Course
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if db.IsNoRows(err) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetCoursesByGyms(ctx context.Context, gymIDs []string) ([]Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE gym_id = ANY($1::uuid[])
		ORDER BY name
	`

	courses := []Course{}
	if err := r.db.SelectContext(ctx, &courses, query, pq.Array(gymIDs)); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *repository) CreateSchedule(ctx context.Context, s *Schedule) (*Schedule, error) {
	query := `
		WITH s AS (
			INSERT INTO course_schedules (course_id, day_of_week, start_time, end_time, start_date, end_date)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING *
		)
		SELECT s.id, s.course_id, s.day_of_week, s.start_time, s.end_time,
		       s.start_date, s.end_date, s.created_at, c.gym_id, c.max_participants
		FROM s
		JOIN courses c ON c.id = s.course_id
	`

	var created Schedule
	err := r.db.GetContext(ctx, &created, query,
		s.CourseID, s.DayOfWeek, s.StartTime, s.EndTime, s.StartDate, s.EndDate)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) GetScheduleByID(ctx context.Context, id uuid.UUID) (*Schedule, error) {
	query := scheduleSelect + ` WHERE s.id = $1`

	var s Schedule
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if db.IsNoRows(err) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) GetSchedulesByCourse(ctx context.Context, courseID uuid.UUID) ([]Schedule, error) {
	query := scheduleSelect + ` WHERE s.course_id = $1 ORDER BY s.day_of_week, s.start_time`

	schedules := []Schedule{}
	if err := r.db.SelectContext(ctx, &schedules, query, courseID); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *repository) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	return db.ExecOne(ctx, r.db, ErrScheduleNotFound, `DELETE FROM course_schedules WHERE id = $1`, id)
}

func (r *repository) BookedCounts(ctx context.Context, scheduleID uuid.UUID, from, to api.Date) (map[string]int, error) {
	query := `
		SELECT date, COUNT(*) AS booked
		FROM reservations
		WHERE schedule_id = $1 AND status = 'booked' AND date BETWEEN $2 AND $3
		GROUP BY date
	`

	var rows []struct {
		Date   api.Date `db:"date"`
		Booked int      `db:"booked"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, scheduleID, from, to); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Date.String()] = row.Booked
	}
	return counts, nil
}

func (r *repository) UpsertInstance(ctx context.Context, inst *Instance) (*Instance, error) {
	query := `
		INSERT INTO course_instances (course_schedule_id, date, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (course_schedule_id, date)
		DO UPDATE SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time
		RETURNING ` + instanceColumns

	var saved Instance
	err := r.db.GetContext(ctx, &saved, query, inst.ScheduleID, inst.Date, inst.StartTime, inst.EndTime)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *repository) GetInstancesBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]Instance, error) {
	query := `
		SELECT ` + instanceColumns + `
		FROM course_instances
		WHERE course_schedule_id = $1
		ORDER BY date
	`

	instances := []Instance{}
	if err := r.db.SelectContext(ctx, &instances, query, scheduleID); err != nil {
		return nil, err
	}
	return instances, nil
}
