package customer

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

var customerRowColumns = []string{
	"id", "email", "first_name", "last_name", "password_hash", "is_staff", "is_superuser",
	"date_of_birth", "address", "phone_number", "registration_date", "active_membership",
	"membership_start_date", "membership_end_date", "notes", "passport_number", "weight", "height",
}

func customerRow(id int, email string, staff bool) *sqlmock.Rows {
	return sqlmock.NewRows(customerRowColumns).AddRow(
		id, email, "Ana", "Ruiz", "hash", staff, false,
		nil, nil, nil, time.Now(), false,
		nil, nil, nil, nil, []byte("61.50"), nil,
	)
}

func TestCreateAndFind(t *testing.T) {
	repo, mock := setupMock(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers (email, first_name, last_name, password_hash)")).
		WithArgs("ana@example.com", "Ana", "Ruiz", "hash").
		WillReturnRows(customerRow(1, "ana@example.com", false))

	c, err := repo.Create(ctx, "ana@example.com", "Ana", "Ruiz", "hash")
	require.NoError(t, err)
	assert.Equal(t, 1, c.ID)
	require.NotNil(t, c.Weight)
	assert.Equal(t, 61.5, *c.Weight)

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE email = $1")).
		WithArgs("ana@example.com").
		WillReturnRows(customerRow(1, "ana@example.com", false))

	found, err := repo.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", found.FirstName)

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE id = $1")).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(customerRowColumns))

	_, err = repo.FindByID(ctx, 42)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsStaffAndGroups(t *testing.T) {
	repo, mock := setupMock(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1 AND (is_staff OR is_superuser))")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.IsStaff(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO customer_groups (customer_id, group_id)")).
		WithArgs(7, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AddToGroup(ctx, 7, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
