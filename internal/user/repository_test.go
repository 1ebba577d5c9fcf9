package user

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"kinetica/internal/auth"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "gym_id", "email", "password_hash", "name", "role", "phone", "is_active", "created_at"}

const selectUser = "SELECT id, gym_id, email, password_hash, name, role, phone, is_active, created_at FROM users"

func setupMock(t *testing.T) (*sqlx.DB, Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dbx := sqlx.NewDb(db, "sqlmock")
	return dbx, NewRepository(dbx), mock
}

func TestRepository_Create(t *testing.T) {
	dbx, repo, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (gym_id, email, password_hash, name, role, phone) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, gym_id, email, password_hash, name, role, phone, is_active, created_at")).
		WithArgs(3, "owner@example.com", "hash", "Owner", auth.RoleOwner, nil).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(9, 3, "owner@example.com", "hash", "Owner", "owner", nil, true, time.Now()))

	u, err := repo.Create(context.Background(), dbx, &User{
		GymID: 3, Email: "owner@example.com", PasswordHash: "hash", Name: "Owner", Role: auth.RoleOwner,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, u.ID)
	assert.Equal(t, auth.RoleOwner, u.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateDuplicateEmail(t *testing.T) {
	_, repo, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), nil, &User{GymID: 3, Email: "dup@example.com", Role: auth.RoleTrainer})
	assert.Equal(t, ErrEmailTaken, err)
}

func TestRepository_FindByEmail(t *testing.T) {
	_, repo, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUser + " WHERE email = $1")).
		WithArgs("t@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(2, 3, "t@example.com", "hash", "Trainer", "trainer", "555", true, time.Now()))

	u, err := repo.FindByEmail(context.Background(), "t@example.com")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleTrainer, u.Role)
	require.NotNil(t, u.Phone)
	assert.Equal(t, "555", *u.Phone)
}

func TestRepository_FindInGymNotFound(t *testing.T) {
	_, repo, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUser + " WHERE id = $1 AND gym_id = $2")).
		WithArgs(2, 4).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindInGym(context.Background(), 4, 2)
	assert.Equal(t, ErrUserNotFound, err)
}

func TestRepository_EmailExists(t *testing.T) {
	_, repo, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepository_ListTrainers(t *testing.T) {
	_, repo, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUser + " WHERE gym_id = $1 AND role = 'trainer' AND is_active = TRUE ORDER BY name")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(2, 3, "a@example.com", "h", "Alice", "trainer", nil, true, time.Now()).
			AddRow(4, 3, "b@example.com", "h", "Bob", "trainer", nil, true, time.Now()))

	trainers, err := repo.ListTrainers(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, trainers, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	_, repo, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET name = COALESCE($1, name), phone = COALESCE($2, phone), is_active = COALESCE($3, is_active) WHERE id = $4 AND gym_id = $5 RETURNING id, gym_id, email, password_hash, name, role, phone, is_active, created_at")).
		WithArgs(nil, nil, false, 2, 3).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(2, 3, "a@example.com", "h", "Alice", "trainer", "555-0101", false, time.Now()))

	inactive := false
	u, err := repo.Update(context.Background(), 3, 2, UpdateTrainerRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, u.IsActive)
	assert.Equal(t, "Alice", u.Name)
	require.NotNil(t, u.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}
