package course

import (
	"context"

	"fitnessmanager/internal/api"

	"github.com/google/uuid"
)

type Repository interface {
	CreateCourse(ctx context.Context, c *Course) (*Course, error)
	UpdateCourse(ctx context.Context, c *Course) (*Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error
	GetCourseByID(ctx context.Context, id uuid.UUID) (*Course, error)
	GetCoursesByGyms(ctx context.Context, gymIDs []string) ([]Course, error)

	CreateSchedule(ctx context.Context, s *Schedule) (*Schedule, error)
	GetScheduleByID(ctx context.Context, id uuid.UUID) (*Schedule, error)
	GetSchedulesByCourse(ctx context.Context, courseID uuid.UUID) ([]Schedule, error)
	DeleteSchedule(ctx context.Context, id uuid.UUID) error
	BookedCounts(ctx context.Context, scheduleID uuid.UUID, from, to api.Date) (map[string]int, error)

	UpsertInstance(ctx context.Context, inst *Instance) (*Instance, error)
	GetInstancesBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]Instance, error)
}
