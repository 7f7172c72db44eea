// Package access decides which gyms a caller may see. Every facility,
// catalog and reservation query goes through VisibleGyms first.
package access

import (
	"context"
	"sort"

	"fitnessmanager/internal/auth"

	"github.com/google/uuid"
)

// Caller is the authenticated identity a request acts for.
type Caller struct {
	CustomerID int
	Role       string
	Groups     []int
}

// IsStaff reports whether the caller holds the staff/trainer capability.
func (c Caller) IsStaff() bool {
	return c.Role == auth.RoleStaff || c.Role == auth.RoleAdmin
}

type GymSet map[uuid.UUID]struct{}

func NewGymSet(ids ...uuid.UUID) GymSet {
	s := make(GymSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s GymSet) Contains(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members in a stable order.
func (s GymSet) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// Strings returns IDs formatted for a uuid[] query parameter.
func (s GymSet) Strings() []string {
	ids := s.IDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

type Repository interface {
	GroupsForCustomer(ctx context.Context, customerID int) ([]int, error)
	GymsInGroups(ctx context.Context, groupIDs []int) ([]uuid.UUID, error)
}

type Scope interface {
	VisibleGyms(ctx context.Context, caller Caller) (GymSet, error)
}

type scope struct {
	repo Repository
}

func NewScope(repo Repository) Scope {
	return &scope{repo: repo}
}

// VisibleGyms returns the gyms whose access group is one of the caller's
// groups. A caller without groups sees nothing.
func (s *scope) VisibleGyms(ctx context.Context, caller Caller) (GymSet, error) {
	if len(caller.Groups) == 0 {
		return GymSet{}, nil
	}
	ids, err := s.repo.GymsInGroups(ctx, caller.Groups)
	if err != nil {
		return nil, err
	}
	return NewGymSet(ids...), nil
}

type fixedScope GymSet

// Fixed returns a Scope that reports set for every caller.
func Fixed(set GymSet) Scope {
	return fixedScope(set)
}

func (f fixedScope) VisibleGyms(context.Context, Caller) (GymSet, error) {
	return GymSet(f), nil
}
