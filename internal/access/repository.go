package access

import (
	"context"

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

func (r *repository) GroupsForCustomer(ctx context.Context, customerID int) ([]int, error) {
	groups := []int{}
	err := r.db.SelectContext(ctx, &groups, `
		SELECT group_id
		FROM customer_groups
		WHERE customer_id = $1
		ORDER BY group_id
	`, customerID)
	return groups, err
}

func (r *repository) GymsInGroups(ctx context.Context, groupIDs []int) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := r.db.SelectContext(ctx, &ids, `
		SELECT id
		FROM gyms
		WHERE group_id = ANY($1)
	`, pq.Array(groupIDs))
	return ids, err
}
