package reservation

import (
	"time"

	"fitnessmanager/internal/api"
	"fitnessmanager/internal/course"

	"github.com/google/uuid"
)

const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
)

type Reservation struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	CustomerID  int        `db:"customer_id" json:"customer"`
	ScheduleID  uuid.UUID  `db:"schedule_id" json:"schedule"`
	Date        api.Date   `db:"date" json:"date"`
	Status      string     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	CancelledAt *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`
}

type ReservationWithDetails struct {
	Reservation
	CourseName    string       `db:"course_name" json:"course_name"`
	GymID         uuid.UUID    `db:"gym_id" json:"gym"`
	StartTime     course.Clock `db:"start_time" json:"start_time"`
	EndTime       course.Clock `db:"end_time" json:"end_time"`
	CustomerName  string       `db:"customer_name" json:"customer_name"`
	CustomerEmail string       `db:"customer_email" json:"customer_email"`
}

type CreateReservationRequest struct {
	ScheduleID uuid.UUID `json:"schedule" binding:"required"`
	Date       *api.Date `json:"date" binding:"required"`
	// CustomerID lets staff reserve on behalf of another customer.
	CustomerID *int `json:"customer"`
}
