package gym

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateGym(ctx context.Context, name, address string, groupID int) (*Gym, error)
	UpdateGym(ctx context.Context, g *Gym) (*Gym, error)
	DeleteGym(ctx context.Context, id uuid.UUID) error
	GetGymByID(ctx context.Context, id uuid.UUID) (*Gym, error)
	GetAllGyms(ctx context.Context) ([]Gym, error)
	GetGymsByIDs(ctx context.Context, ids []string) ([]Gym, error)

	CreateRoom(ctx context.Context, name string, gymID uuid.UUID) (*Room, error)
	UpdateRoom(ctx context.Context, room *Room) (*Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
	GetRoomByID(ctx context.Context, id uuid.UUID) (*Room, error)
	GetRoomsByGyms(ctx context.Context, gymIDs []string) ([]Room, error)
	RoomHasCourses(ctx context.Context, id uuid.UUID) (bool, error)

	CreateMembership(ctx context.Context, m *Membership) (*Membership, error)
	GetMembershipsByCustomer(ctx context.Context, customerID int) ([]Membership, error)
	GetMembershipsByGym(ctx context.Context, gymID uuid.UUID) ([]Membership, error)
}
