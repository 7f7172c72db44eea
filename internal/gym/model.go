package gym

import (
	"time"

	"fitnessmanager/internal/api"

	"github.com/google/uuid"
)

type Gym struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	GroupID   int       `db:"group_id" json:"group"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Room struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	GymID     uuid.UUID `db:"gym_id" json:"gym"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Membership struct {
	ID         uuid.UUID `db:"id" json:"id"`
	CustomerID int       `db:"customer_id" json:"customer"`
	GymID      uuid.UUID `db:"gym_id" json:"gym"`
	StartDate  *api.Date `db:"start_date" json:"start_date"`
	EndDate    *api.Date `db:"end_date" json:"end_date"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type CreateGymRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	GroupID int    `json:"group" binding:"required"`
}

type UpdateGymRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	GroupID *int    `json:"group"`
}

type CreateRoomRequest struct {
	Name  string    `json:"name" binding:"required"`
	GymID uuid.UUID `json:"gym" binding:"required"`
}

type UpdateRoomRequest struct {
	Name  *string    `json:"name"`
	GymID *uuid.UUID `json:"gym"`
}

type CreateMembershipRequest struct {
	CustomerID int       `json:"customer" binding:"required"`
	GymID      uuid.UUID `json:"gym" binding:"required"`
	StartDate  *api.Date `json:"start_date"`
	EndDate    *api.Date `json:"end_date"`
	IsActive   *bool     `json:"is_active"`
}
