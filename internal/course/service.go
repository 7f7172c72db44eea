package course

import (
	"context"
	"strings"
	"time"

	"fitnessmanager/internal/access"
	"fitnessmanager/internal/api"
	"fitnessmanager/internal/gym"

	"github.com/google/uuid"
)

var (
	ErrCourseNotFound    = api.NotFound("course not found")
	ErrScheduleNotFound  = api.NotFound("course schedule not found")
	ErrGymRoomNotInGroup = api.NotFound("gym/room not found. Are you sure the gym/room exists within your group?")
	ErrInvalidCourse     = api.Validation("invalid course")
	ErrTrainerNotStaff   = api.Validation("selected trainer does not have the trainer role")
	ErrInvalidRule       = api.Validation("invalid course schedule")
	ErrInvalidRange      = api.Validation("invalid date range")
	ErrNotAnOccurrence   = api.NewError(api.KindInvalidSchedule, "date is not an occurrence of the course schedule")
)

// RoomLookup resolves the gym a room belongs to.
type RoomLookup interface {
	GetRoomByID(ctx context.Context, id uuid.UUID) (*gym.Room, error)
}

// TrainerChecker reports whether a customer holds the trainer capability.
type TrainerChecker interface {
	IsStaff(ctx context.Context, id int) (bool, error)
}

type Service interface {
	CreateCourse(ctx context.Context, caller access.Caller, req CreateCourseRequest) (*Course, error)
	UpdateCourse(ctx context.Context, caller access.Caller, id uuid.UUID, req UpdateCourseRequest) (*Course, error)
	DeleteCourse(ctx context.Context, caller access.Caller, id uuid.UUID) error
	GetCourse(ctx context.Context, caller access.Caller, id uuid.UUID) (*Course, error)
	ListCourses(ctx context.Context, caller access.Caller) ([]Course, error)

	CreateSchedule(ctx context.Context, caller access.Caller, req CreateScheduleRequest) (*Schedule, error)
	GetSchedule(ctx context.Context, caller access.Caller, id uuid.UUID) (*Schedule, error)
	ListSchedules(ctx context.Context, caller access.Caller, courseID uuid.UUID) ([]Schedule, error)
	DeleteSchedule(ctx context.Context, caller access.Caller, id uuid.UUID) error
	Occurrences(ctx context.Context, caller access.Caller, id uuid.UUID, from, to *api.Date) ([]Occurrence, error)

	MaterializeInstance(ctx context.Context, caller access.Caller, scheduleID uuid.UUID, date api.Date) (*Instance, error)
	ListInstances(ctx context.Context, caller access.Caller, scheduleID uuid.UUID) ([]Instance, error)
}

type service struct {
	repo     Repository
	scope    access.Scope
	rooms    RoomLookup
	trainers TrainerChecker
	now      func() time.Time
}

func NewService(repo Repository, scope access.Scope, rooms RoomLookup, trainers TrainerChecker) Service {
	return &service{
		repo:     repo,
		scope:    scope,
		rooms:    rooms,
		trainers: trainers,
		now:      time.Now,
	}
}

func (s *service) CreateCourse(ctx context.Context, caller access.Caller, req CreateCourseRequest) (*Course, error) {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}

	c := &Course{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Duration:        req.Duration,
		MaxParticipants: req.MaxParticipants,
		GymID:           req.GymID,
		RoomID:          req.RoomID,
		TrainerID:       req.TrainerID,
	}
	if err := s.checkCourse(ctx, visible, c); err != nil {
		return nil, err
	}

	return s.repo.CreateCourse(ctx, c)
}

func (s *service) UpdateCourse(ctx context.Context, caller access.Caller, id uuid.UUID, req UpdateCourseRequest) (*Course, error) {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	c, err := s.visibleCourse(ctx, visible, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Duration != nil {
		c.Duration = *req.Duration
	}
	if req.MaxParticipants != nil {
		c.MaxParticipants = *req.MaxParticipants
	}
	if req.GymID != nil {
		c.GymID = *req.GymID
	}
	if req.RoomID != nil {
		c.RoomID = req.RoomID
	}
	if req.TrainerID != nil {
		c.TrainerID = req.TrainerID
	}

	if err := s.checkCourse(ctx, visible, c); err != nil {
		return nil, err
	}

	return s.repo.UpdateCourse(ctx, c)
}

// checkCourse validates a course about to be written by a caller who sees
// visible.
func (s *service) checkCourse(ctx context.Context, visible access.GymSet, c *Course) error {
	switch {
	case c.Name == "":
		return ErrInvalidCourse.WithDetail("name must not be empty")
	case c.MaxParticipants <= 0:
		return ErrInvalidCourse.WithDetail("max_participants must be greater than 0")
	case c.Duration <= 0:
		return ErrInvalidCourse.WithDetail("duration must be greater than 0")
	}

	if !visible.Contains(c.GymID) {
		return ErrGymRoomNotInGroup
	}
	if c.RoomID != nil {
		room, err := s.rooms.GetRoomByID(ctx, *c.RoomID)
		if err != nil {
			if api.IsKind(err, api.KindNotFound) {
				return ErrGymRoomNotInGroup
			}
			return err
		}
		if room.GymID != c.GymID {
			return ErrGymRoomNotInGroup
		}
	}

	if c.TrainerID != nil {
		ok, err := s.trainers.IsStaff(ctx, *c.TrainerID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrTrainerNotStaff
		}
	}
	return nil
}

func (s *service) DeleteCourse(ctx context.Context, caller access.Caller, id uuid.UUID) error {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return err
	}
	if _, err := s.visibleCourse(ctx, visible, id); err != nil {
		return err
	}
	return s.repo.DeleteCourse(ctx, id)
}

func (s *service) GetCourse(ctx context.Context, caller access.Caller, id uuid.UUID) (*Course, error) {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.visibleCourse(ctx, visible, id)
}

func (s *service) ListCourses(ctx context.Context, caller access.Caller) ([]Course, error) {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return []Course{}, nil
	}
	return s.repo.GetCoursesByGyms(ctx, visible.Strings())
}

func (s *service) visibleCourse(ctx context.Context, visible access.GymSet, id uuid.UUID) (*Course, error) {
	c, err := s.repo.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visible.Contains(c.GymID) {
		return nil, ErrCourseNotFound
	}
	return c, nil
}

func (s *service) CreateSchedule(ctx context.Context, caller access.Caller, req CreateScheduleRequest) (*Schedule, error) {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	if _, err := s.visibleCourse(ctx, visible, req.CourseID); err != nil {
		return nil, err
	}

	if err := validateRule(*req.DayOfWeek, *req.StartTime, *req.EndTime, *req.StartDate, *req.EndDate); err != nil {
		return nil, err
	}

	return s.repo.CreateSchedule(ctx, &Schedule{
		CourseID:  req.CourseID,
		DayOfWeek: *req.DayOfWeek,
		StartTime: *req.StartTime,
		EndTime:   *req.EndTime,
		StartDate: *req.StartDate,
		EndDate:   *req.EndDate,
	})
}

func (s *service) GetSchedule(ctx context.Context, caller access.Caller, id uuid.UUID) (*Schedule, error) {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.visibleSchedule(ctx, visible, id)
}

func (s *service) ListSchedules(ctx context.Context, caller access.Caller, courseID uuid.UUID) ([]Schedule, error) {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	if _, err := s.visibleCourse(ctx, visible, courseID); err != nil {
		return nil, err
	}
	return s.repo.GetSchedulesByCourse(ctx, courseID)
}

func (s *service) DeleteSchedule(ctx context.Context, caller access.Caller, id uuid.UUID) error {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return err
	}
	if _, err := s.visibleSchedule(ctx, visible, id); err != nil {
		return err
	}
	return s.repo.DeleteSchedule(ctx, id)
}

// Occurrences expands the schedule over [from, to] with booking counts.
// from defaults to today and to to four weeks after from.
func (s *service) Occurrences(ctx context.Context, caller access.Caller, id uuid.UUID, from, to *api.Date) ([]Occurrence, error) {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	sched, err := s.visibleSchedule(ctx, visible, id)
	if err != nil {
		return nil, err
	}

	start := api.DateOf(s.now())
	if from != nil {
		start = *from
	}
	end := start.AddDays(27)
	if to != nil {
		end = *to
	}
	if end.Before(start) {
		return nil, ErrInvalidRange.WithDetail("to must not be before from")
	}
	if windowDays(start, end) > maxWindow {
		return nil, ErrInvalidRange.WithDetail("range must not exceed 366 days")
	}

	dates := sched.Occurrences(start, end)
	if len(dates) == 0 {
		return []Occurrence{}, nil
	}

	counts, err := s.repo.BookedCounts(ctx, sched.ID, dates[0], dates[len(dates)-1])
	if err != nil {
		return nil, err
	}

	out := make([]Occurrence, 0, len(dates))
	for _, d := range dates {
		booked := counts[d.String()]
		available := sched.MaxParticipants - booked
		if available < 0 {
			available = 0
		}
		out = append(out, Occurrence{
			Date:      d,
			StartTime: sched.StartTime,
			EndTime:   sched.EndTime,
			Booked:    booked,
			Available: available,
			IsFull:    available == 0,
		})
	}
	return out, nil
}

func (s *service) MaterializeInstance(ctx context.Context, caller access.Caller, scheduleID uuid.UUID, date api.Date) (*Instance, error) {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	sched, err := s.visibleSchedule(ctx, visible, scheduleID)
	if err != nil {
		return nil, err
	}
	if !sched.OccursOn(date) {
		return nil, ErrNotAnOccurrence
	}

	return s.repo.UpsertInstance(ctx, &Instance{
		ScheduleID: sched.ID,
		Date:       date,
		StartTime:  sched.StartTime,
		EndTime:    sched.EndTime,
	})
}

func (s *service) ListInstances(ctx context.Context, caller access.Caller, scheduleID uuid.UUID) ([]Instance, error) {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	if _, err := s.visibleSchedule(ctx, visible, scheduleID); err != nil {
		return nil, err
	}
	return s.repo.GetInstancesBySchedule(ctx, scheduleID)
}

func (s *service) visibleSchedule(ctx context.Context, visible access.GymSet, id uuid.UUID) (*Schedule, error) {
	sched, err := s.repo.GetScheduleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visible.Contains(sched.GymID) {
		return nil, ErrScheduleNotFound
	}
	return sched, nil
}
