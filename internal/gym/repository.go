package gym

import (
	"context"

	"fitnessmanager/internal/db"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateGym(ctx context.Context, name, address string, groupID int) (*Gym, error) {
	query := `
		INSERT INTO gyms (name, address, group_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, address, group_id, created_at
	`

	var gym Gym
	if err := r.db.GetContext(ctx, &gym, query, name, address, groupID); err != nil {
		return nil, err
	}
	return &gym, nil
}

func (r *repository) UpdateGym(ctx context.Context, g *Gym) (*Gym, error) {
	query := `
		UPDATE gyms
		SET name = $2, address = $3, group_id = $4
		WHERE id = $1
		RETURNING id, name, address, group_id, created_at
	`

	var gym Gym
	if err := r.db.GetContext(ctx, &gym, query, g.ID, g.Name, g.Address, g.GroupID); err != nil {
		if db.IsNoRows(err) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}
	return &gym, nil
}

func (r *repository) DeleteGym(ctx context.Context, id uuid.UUID) error {
	return db.ExecOne(ctx, r.db, ErrGymNotFound, `DELETE FROM gyms WHERE id = $1`, id)
}

func (r *repository) GetGymByID(ctx context.Context, id uuid.UUID) (*Gym, error) {
	query := `
		SELECT id, name, address, group_id, created_at
		FROM gyms
		WHERE id = $1
	`

	var gym Gym
	if err := r.db.GetContext(ctx, &gym, query, id); err != nil {
		if db.IsNoRows(err) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}
	return &gym, nil
}

func (r *repository) GetAllGyms(ctx context.Context) ([]Gym, error) {
	query := `
		SELECT id, name, address, group_id, created_at
		FROM gyms
		ORDER BY name
	`

	gyms := []Gym{}
	if err := r.db.SelectContext(ctx, &gyms, query); err != nil {
		return nil, err
	}
	return gyms, nil
}

func (r *repository) GetGymsByIDs(ctx context.Context, ids []string) ([]Gym, error) {
	query := `
		SELECT id, name, address, group_id, created_at
		FROM gyms
		WHERE id = ANY($1::uuid[])
		ORDER BY name
	`

	gyms := []Gym{}
	if err := r.db.SelectContext(ctx, &gyms, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	return gyms, nil
}

func (r *repository) CreateRoom(ctx context.Context, name string, gymID uuid.UUID) (*Room, error) {
	query := `
		INSERT INTO rooms (name, gym_id)
		VALUES ($1, $2)
		RETURNING id, name, gym_id, created_at
	`

	var room Room
	if err := r.db.GetContext(ctx, &room, query, name, gymID); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *repository) UpdateRoom(ctx context.Context, room *Room) (*Room, error) {
	query := `
		UPDATE rooms
		SET name = $2, gym_id = $3
		WHERE id = $1
		RETURNING id, name, gym_id, created_at
	`

	var updated Room
	if err := r.db.GetContext(ctx, &updated, query, room.ID, room.Name, room.GymID); err != nil {
		if db.IsNoRows(err) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *repository) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return db.ExecOne(ctx, r.db, ErrRoomNotFound, `DELETE FROM rooms WHERE id = $1`, id)
}

func (r *repository) RoomHasCourses(ctx context.Context, id uuid.UUID) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM courses WHERE room_id = $1)`, id)
}

func (r *repository) GetRoomByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	query := `
		SELECT id, name, gym_id, created_at
		FROM rooms
		WHERE id = $1
	`

	var room Room
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		if db.IsNoRows(err) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *repository) GetRoomsByGyms(ctx context.Context, gymIDs []string) ([]Room, error) {
	query := `
		SELECT id, name, gym_id, created_at
		FROM rooms
		WHERE gym_id = ANY($1::uuid[])
		ORDER BY name
	`

	rooms := []Room{}
	if err := r.db.SelectContext(ctx, &rooms, query, pq.Array(gymIDs)); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *repository) CreateMembership(ctx context.Context, m *Membership) (*Membership, error) {
	query := `
		INSERT INTO gym_memberships (customer_id, gym_id, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, customer_id, gym_id, start_date, end_date, is_active, created_at
	`

	var created Membership
	err := r.db.GetContext(ctx, &created, query, m.CustomerID, m.GymID, m.StartDate, m.EndDate, m.IsActive)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) GetMembershipsByCustomer(ctx context.Context, customerID int) ([]Membership, error) {
	query := `
		SELECT id, customer_id, gym_id, start_date, end_date, is_active, created_at
		FROM gym_memberships
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`

	memberships := []Membership{}
	if err := r.db.SelectContext(ctx, &memberships, query, customerID); err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *repository) GetMembershipsByGym(ctx context.Context, gymID uuid.UUID) ([]Membership, error) {
	query := `
		SELECT id, customer_id, gym_id, start_date, end_date, is_active, created_at
		FROM gym_memberships
		WHERE gym_id = $1
		ORDER BY created_at DESC
	`

	memberships := []Membership{}
	if err := r.db.SelectContext(ctx, &memberships, query, gymID); err != nil {
		return nil, err
	}
	return memberships, nil
}
