package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmrconsultoria/portal-os/internal/domain"
	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
	"github.com/mmrconsultoria/portal-os/internal/infrastructure/postgres"
)

var userCols = []string{"id", "company_code", "username", "password_hash", "role", "status", "created_at", "updated_at"}

func sampleUser() *entity.User {
	now := time.Date(2024, 3, 4, 11, 0, 0, 0, time.UTC)
	return &entity.User{
		ID: "u1", CompanyCode: "MMR", Username: "ana", PasswordHash: "$2a$10$hash",
		Role: entity.RoleBasic, Status: "active", CreatedAt: now, UpdatedAt: now,
	}
}

func TestUserRepo_Create(t *testing.T) {
	mock := newMock(t)
	u := sampleUser()
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(u.ID, u.CompanyCode, u.Username, u.PasswordHash, u.Role, u.Status, u.CreatedAt, u.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, postgres.NewUserRepository(mock).Create(context.Background(), u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_CreateExistente(t *testing.T) {
	mock := newMock(t)
	u := sampleUser()
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(u.ID, u.CompanyCode, u.Username, u.PasswordHash, u.Role, u.Status, u.CreatedAt, u.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := postgres.NewUserRepository(mock).Create(context.Background(), u)
	assert.ErrorIs(t, err, domain.ErrUserExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByLogin(t *testing.T) {
	mock := newMock(t)
	u := sampleUser()
	mock.ExpectQuery(`WHERE company_code = \$1 AND username = \$2`).
		WithArgs("MMR", "ana").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(u.ID, u.CompanyCode, u.Username, u.PasswordHash,
			u.Role, u.Status, u.CreatedAt, u.UpdatedAt))

	got, err := postgres.NewUserRepository(mock).GetByLogin(context.Background(), "MMR", "ana")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *u, *got)
}

func TestUserRepo_GetByIDNoExiste(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`WHERE id = \$1`).WithArgs("nope").WillReturnError(pgx.ErrNoRows)

	got, err := postgres.NewUserRepository(mock).GetByID(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}
