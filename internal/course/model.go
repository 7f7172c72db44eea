package course

import (
	"time"

	"fitnessmanager/internal/api"

	"github.com/google/uuid"
)

type Course struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Description     string     `db:"description" json:"description"`
	Duration        int        `db:"duration" json:"duration"`
	MaxParticipants int        `db:"max_participants" json:"max_participants"`
	GymID           uuid.UUID  `db:"gym_id" json:"gym"`
	RoomID          *uuid.UUID `db:"room_id" json:"room"`
	TrainerID       *int       `db:"trainer_id" json:"trainer"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// Schedule is a weekly recurrence rule for a course. GymID and
// MaxParticipants are read through the owning course.
type Schedule struct {
	ID              uuid.UUID `db:"id" json:"id"`
	CourseID        uuid.UUID `db:"course_id" json:"course"`
	DayOfWeek       int       `db:"day_of_week" json:"day_of_week"`
	StartTime       Clock     `db:"start_time" json:"start_time"`
	EndTime         Clock     `db:"end_time" json:"end_time"`
	StartDate       api.Date  `db:"start_date" json:"start_date"`
	EndDate         api.Date  `db:"end_date" json:"end_date"`
	GymID           uuid.UUID `db:"gym_id" json:"gym"`
	MaxParticipants int       `db:"max_participants" json:"max_participants"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type Instance struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ScheduleID uuid.UUID `db:"course_schedule_id" json:"course_schedule"`
	Date       api.Date  `db:"date" json:"date"`
	StartTime  Clock     `db:"start_time" json:"start_time"`
	EndTime    Clock     `db:"end_time" json:"end_time"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type Occurrence struct {
	Date      api.Date `json:"date"`
	StartTime Clock    `json:"start_time"`
	EndTime   Clock    `json:"end_time"`
	Booked    int      `json:"booked"`
	Available int      `json:"available"`
	IsFull    bool     `json:"is_full"`
}

type CreateCourseRequest struct {
	Name            string     `json:"name" binding:"required"`
	Description     string     `json:"description"`
	Duration        int        `json:"duration" binding:"required"`
	MaxParticipants int        `json:"max_participants" binding:"required"`
	GymID           uuid.UUID  `json:"gym" binding:"required"`
	RoomID          *uuid.UUID `json:"room"`
	TrainerID       *int       `json:"trainer"`
}

// UpdateCourseRequest carries only the fields to change.
type UpdateCourseRequest struct {
	Name            *string    `json:"name"`
	Description     *string    `json:"description"`
	Duration        *int       `json:"duration"`
	MaxParticipants *int       `json:"max_participants"`
	GymID           *uuid.UUID `json:"gym"`
	RoomID          *uuid.UUID `json:"room"`
	TrainerID       *int       `json:"trainer"`
}

type CreateScheduleRequest struct {
	CourseID  uuid.UUID `json:"course" binding:"required"`
	DayOfWeek *int      `json:"day_of_week" binding:"required"`
	StartTime *Clock    `json:"start_time" binding:"required"`
	EndTime   *Clock    `json:"end_time" binding:"required"`
	StartDate *api.Date `json:"start_date" binding:"required"`
	EndDate   *api.Date `json:"end_date" binding:"required"`
}

type CreateInstanceRequest struct {
	Date *api.Date `json:"date" binding:"required"`
}
