package gym

import (
	"context"
	"strings"

	"fitnessmanager/internal/access"
	"fitnessmanager/internal/api"

	"github.com/google/uuid"
)

var (
	ErrGymNotFound        = api.NotFound("gym not found")
	ErrGymNotInGroup      = api.NotFound("gym not found. Are you sure the gym exists within your group?")
	ErrRoomNotFound       = api.NotFound("room not found")
	ErrInvalidGym         = api.Validation("gym name and address must not be empty")
	ErrInvalidRoom        = api.Validation("room name must not be empty")
	ErrRoomInUse          = api.Validation("room is assigned to courses and cannot move to another gym")
	ErrInvalidMembership  = api.Validation("membership end_date must not be before start_date")
	ErrMembershipCustomer = api.NotFound("customer not found")
)

type Service interface {
	CreateGym(ctx context.Context, req CreateGymRequest) (*Gym, error)
	UpdateGym(ctx context.Context, id uuid.UUID, req UpdateGymRequest) (*Gym, error)
	DeleteGym(ctx context.Context, id uuid.UUID) error
	ListAllGyms(ctx context.Context) ([]Gym, error)
	ListGyms(ctx context.Context, caller access.Caller) ([]Gym, error)
	GetGym(ctx context.Context, caller access.Caller, id uuid.UUID) (*Gym, error)

	CreateRoom(ctx context.Context, caller access.Caller, req CreateRoomRequest) (*Room, error)
	UpdateRoom(ctx context.Context, caller access.Caller, id uuid.UUID, req UpdateRoomRequest) (*Room, error)
	DeleteRoom(ctx context.Context, caller access.Caller, id uuid.UUID) error
	ListRooms(ctx context.Context, caller access.Caller) ([]Room, error)
	GetRoom(ctx context.Context, caller access.Caller, id uuid.UUID) (*Room, error)

	CreateMembership(ctx context.Context, req CreateMembershipRequest) (*Membership, error)
	ListMyMemberships(ctx context.Context, caller access.Caller) ([]Membership, error)
	ListGymMemberships(ctx context.Context, caller access.Caller, gymID uuid.UUID) ([]Membership, error)
}

// CustomerChecker is the slice of the customer store memberships need.
type CustomerChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type service struct {
	repo      Repository
	scope     access.Scope
	customers CustomerChecker
}

func NewService(repo Repository, scope access.Scope, customers CustomerChecker) Service {
	return &service{
		repo:      repo,
		scope:     scope,
		customers: customers,
	}
}

func (s *service) CreateGym(ctx context.Context, req CreateGymRequest) (*Gym, error) {
	name, address := strings.TrimSpace(req.Name), strings.TrimSpace(req.Address)
	if name == "" || address == "" {
		return nil, ErrInvalidGym
	}
	return s.repo.CreateGym(ctx, name, address, req.GroupID)
}

func (s *service) UpdateGym(ctx context.Context, id uuid.UUID, req UpdateGymRequest) (*Gym, error) {
	gym, err := s.repo.GetGymByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		gym.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		gym.Address = strings.TrimSpace(*req.Address)
	}
	if req.GroupID != nil {
		gym.GroupID = *req.GroupID
	}
	if gym.Name == "" || gym.Address == "" {
		return nil, ErrInvalidGym
	}

	return s.repo.UpdateGym(ctx, gym)
}

func (s *service) DeleteGym(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteGym(ctx, id)
}

func (s *service) ListAllGyms(ctx context.Context) ([]Gym, error) {
	return s.repo.GetAllGyms(ctx)
}

func (s *service) ListGyms(ctx context.Context, caller access.Caller) ([]Gym, error) {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return []Gym{}, nil
	}
	return s.repo.GetGymsByIDs(ctx, visible.Strings())
}

func (s *service) GetGym(ctx context.Context, caller access.Caller, id uuid.UUID) (*Gym, error) {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !visible.Contains(id) {
		return nil, ErrGymNotFound
	}
	return s.repo.GetGymByID(ctx, id)
}

func (s *service) CreateRoom(ctx context.Context, caller access.Caller, req CreateRoomRequest) (*Room, error) {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !visible.Contains(req.GymID) {
		return nil, ErrGymNotInGroup
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidRoom
	}
	return s.repo.CreateRoom(ctx, name, req.GymID)
}

func (s *service) UpdateRoom(ctx context.Context, caller access.Caller, id uuid.UUID, req UpdateRoomRequest) (*Room, error) {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	room, err := s.visibleRoom(ctx, visible, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		room.Name = strings.TrimSpace(*req.Name)
		if room.Name == "" {
			return nil, ErrInvalidRoom
		}
	}
	if req.GymID != nil {
		if !visible.Contains(*req.GymID) {
			return nil, ErrGymNotInGroup
		}
		if *req.GymID != room.GymID {
			inUse, err := s.repo.RoomHasCourses(ctx, id)
			if err != nil {
				return nil, err
			}
			if inUse {
				return nil, ErrRoomInUse
			}
		}
		room.GymID = *req.GymID
	}

	return s.repo.UpdateRoom(ctx, room)
}

func (s *service) DeleteRoom(ctx context.Context, caller access.Caller, id uuid.UUID) error {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return err
	}
	if _, err := s.visibleRoom(ctx, visible, id); err != nil {
		return err
	}
	return s.repo.DeleteRoom(ctx, id)
}

func (s *service) ListRooms(ctx context.Context, caller access.Caller) ([]Room, error) {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return []Room{}, nil
	}
	return s.repo.GetRoomsByGyms(ctx, visible.Strings())
}

func (s *service) GetRoom(ctx context.Context, caller access.Caller, id uuid.UUID) (*Room, error) {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.visibleRoom(ctx, visible, id)
}

// visibleRoom loads a room and hides it when its gym is outside visible.
func (s *service) visibleRoom(ctx context.Context, visible access.GymSet, id uuid.UUID) (*Room, error) {
	room, err := s.repo.GetRoomByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visible.Contains(room.GymID) {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (s *service) CreateMembership(ctx context.Context, req CreateMembershipRequest) (*Membership, error) {
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, ErrInvalidMembership
	}

	if _, err := s.repo.GetGymByID(ctx, req.GymID); err != nil {
		return nil, err
	}
	exists, err := s.customers.Exists(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrMembershipCustomer
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return s.repo.CreateMembership(ctx, &Membership{
		CustomerID: req.CustomerID,
		GymID:      req.GymID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		IsActive:   active,
	})
}

func (s *service) ListMyMemberships(ctx context.Context, caller access.Caller) ([]Membership, error) {
	return s.repo.GetMembershipsByCustomer(ctx, caller.CustomerID)
}

func (s *service) ListGymMemberships(ctx context.Context, caller access.Caller, gymID uuid.UUID) ([]Membership, error) {
	visible, err := s.scope.VisibleGyms(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !visible.Contains(gymID) {
		return nil, ErrGymNotFound
	}
	return s.repo.GetMembershipsByGym(ctx, gymID)
}
