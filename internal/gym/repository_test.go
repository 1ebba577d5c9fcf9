package gym

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gymRowColumns = []string{"id", "name", "type", "address", "phone", "is_active", "created_at"}

func setupMock(t *testing.T) (*sqlx.DB, Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dbx := sqlx.NewDb(db, "sqlmock")
	return dbx, NewRepository(dbx), mock
}

func TestCreate(t *testing.T) {
	dbx, repo, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO gyms (name, type) VALUES ($1, $2) RETURNING id, name, type, address, phone, is_active, created_at")).
		WithArgs("Iron Temple", TypeGym).
		WillReturnRows(sqlmock.NewRows(gymRowColumns).
			AddRow(1, "Iron Temple", TypeGym, nil, nil, true, time.Now()))

	gym, err := repo.Create(context.Background(), dbx, "Iron Temple", TypeGym)
	require.NoError(t, err)
	assert.Equal(t, 1, gym.ID)
	assert.Equal(t, "Iron Temple", gym.Name)
	assert.True(t, gym.IsActive)
	assert.Nil(t, gym.Address)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	_, repo, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, type, address, phone, is_active, created_at FROM gyms WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(gymRowColumns).
			AddRow(1, "Studio", TypePersonalStudio, "Main st 1", "555", true, time.Now()))

	gym, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, TypePersonalStudio, gym.Type)
	require.NotNil(t, gym.Address)
	assert.Equal(t, "Main st 1", *gym.Address)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	_, repo, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, type, address, phone, is_active, created_at FROM gyms WHERE id = $1")).
		WithArgs(2).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 2)
	assert.Equal(t, ErrGymNotFound, err)
}

func TestUpdate(t *testing.T) {
	_, repo, mock := setupMock(t)

	query := regexp.QuoteMeta("UPDATE gyms SET name = COALESCE($1, name), type = COALESCE($2, type), address = COALESCE($3, address), phone = COALESCE($4, phone) WHERE id = $5 RETURNING id, name, type, address, phone, is_active, created_at")

	name, phone := "Renamed", "555-0100"
	mock.ExpectQuery(query).
		WithArgs(&name, nil, nil, &phone, 1).
		WillReturnRows(sqlmock.NewRows(gymRowColumns).
			AddRow(1, "Renamed", TypeGym, "Main st 1", phone, true, time.Now()))
	mock.ExpectQuery(query).
		WithArgs(&name, nil, nil, nil, 2).
		WillReturnError(sql.ErrNoRows)

	gym, err := repo.Update(context.Background(), 1, UpdateGymRequest{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", gym.Name)
	assert.Equal(t, TypeGym, gym.Type)
	require.NotNil(t, gym.Address)
	assert.Equal(t, "Main st 1", *gym.Address)

	_, err = repo.Update(context.Background(), 2, UpdateGymRequest{Name: &name})
	assert.Equal(t, ErrGymNotFound, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
