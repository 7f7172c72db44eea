package customer

import "context"

type Repository interface {
	Create(ctx context.Context, email, firstName, lastName, passwordHash string) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	FindByID(ctx context.Context, id int) (*Customer, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Exists(ctx context.Context, id int) (bool, error)
	List(ctx context.Context) ([]Customer, error)
	IsStaff(ctx context.Context, id int) (bool, error)
	GroupExists(ctx context.Context, groupID int) (bool, error)
	AddToGroup(ctx context.Context, customerID, groupID int) error
}
