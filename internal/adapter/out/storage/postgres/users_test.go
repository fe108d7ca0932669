package postgres

import (
	"context"
	"testing"
	"time"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"yatube/internal/model"
	"yatube/internal/service"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestUserStorage_CreateUser(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name    string
		setup   func(m pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "success",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery("INSERT INTO users").
					WithArgs("auth", "hash").
					WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
						AddRow(int64(1), "auth", "hash", now))
			},
		},
		{
			name: "username taken",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery("INSERT INTO users").
					WithArgs("auth", "hash").
					WillReturnError(&pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "users_username_key"})
			},
			wantErr: service.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			tt.setup(mock)

			st := NewUserStorage(mock, trmpgx.DefaultCtxGetter)
			got, err := st.CreateUser(context.Background(), model.User{Username: "auth", PasswordHash: "hash"})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, model.User{ID: 1, Username: "auth", PasswordHash: "hash", CreatedAt: now}, got)
		})
	}
}

func TestUserStorage_GetUserByUsername_NotFound(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE username = \\$1").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	st := NewUserStorage(mock, trmpgx.DefaultCtxGetter)
	_, err := st.GetUserByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestUserStorage_GetUserByID(t *testing.T) {
	t.Parallel()

	now := time.Now()
	mock := newMockPool(t)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(int64(3), "reader", "hash", now))

	st := NewUserStorage(mock, trmpgx.DefaultCtxGetter)
	got, err := st.GetUserByID(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "reader", got.Username)
}
