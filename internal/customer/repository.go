package customer

import (
	"context"

	"fitnessmanager/internal/db"

	"github.com/jmoiron/sqlx"
)

const customerColumns = `id, email, first_name, last_name, password_hash, is_staff, is_superuser,
	date_of_birth, address, phone_number, registration_date, active_membership,
	membership_start_date, membership_end_date, notes, passport_number, weight, height`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, email, firstName, lastName, passwordHash string) (*Customer, error) {
	query := `
		INSERT INTO customers (email, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + customerColumns

	var c Customer
	if err := r.db.GetContext(ctx, &c, query, email, firstName, lastName, passwordHash); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`

	var c Customer
	if err := r.db.GetContext(ctx, &c, query, email); err != nil {
		if db.IsNoRows(err) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	var c Customer
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if db.IsNoRows(err) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1)`, email)
}

func (r *repository) List(ctx context.Context) ([]Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY last_name, first_name`

	customers := []Customer{}
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repository) Exists(ctx context.Context, id int) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, id)
}

func (r *repository) IsStaff(ctx context.Context, id int) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1 AND (is_staff OR is_superuser))`, id)
}

func (r *repository) GroupExists(ctx context.Context, groupID int) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM access_groups WHERE id = $1)`, groupID)
}

func (r *repository) AddToGroup(ctx context.Context, customerID, groupID int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customer_groups (customer_id, group_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, customerID, groupID)
	return err
}
