package postgres

import (
	"context"
	"errors"
	"testing"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"yatube/internal/model"
	"yatube/internal/service"
)

func TestGroupStorage_CreateGroup(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery("INSERT INTO post_groups").
			WithArgs("Test group", "testslug", "d").
			WillReturnRows(pgxmock.NewRows([]string{"id", "title", "slug", "description"}).
				AddRow(int64(1), "Test group", "testslug", "d"))

		st := NewGroupStorage(mock, trmpgx.DefaultCtxGetter)
		got, err := st.CreateGroup(context.Background(), model.Group{Title: "Test group", Slug: "testslug", Description: "d"})
		require.NoError(t, err)
		require.Equal(t, int64(1), got.ID)
	})

	t.Run("slug taken", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery("INSERT INTO post_groups").
			WithArgs("Test group", "testslug", "").
			WillReturnError(&pgconn.PgError{Code: codeUniqueViolation})

		st := NewGroupStorage(mock, trmpgx.DefaultCtxGetter)
		_, err := st.CreateGroup(context.Background(), model.Group{Title: "Test group", Slug: "testslug"})
		require.ErrorIs(t, err, service.ErrSlugTaken)
	})
}

func TestGroupStorage_GetGroupBySlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(m pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "found",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery("SELECT (.+) FROM post_groups WHERE slug = \\$1").
					WithArgs("testslug").
					WillReturnRows(pgxmock.NewRows([]string{"id", "title", "slug", "description"}).
						AddRow(int64(2), "Test group", "testslug", ""))
			},
		},
		{
			name: "not found",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery("SELECT (.+) FROM post_groups").
					WithArgs("testslug").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: service.ErrNotFound,
		},
		{
			name: "db error",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery("SELECT (.+) FROM post_groups").
					WithArgs("testslug").
					WillReturnError(errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			tt.setup(mock)

			st := NewGroupStorage(mock, trmpgx.DefaultCtxGetter)
			got, err := st.GetGroupBySlug(context.Background(), "testslug")
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, service.ErrNotFound) {
					require.ErrorIs(t, err, service.ErrNotFound)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(2), got.ID)
		})
	}
}

func TestGroupStorage_ListGroups(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	mock.ExpectQuery("SELECT (.+) FROM post_groups ORDER BY title, id").
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "slug", "description"}).
			AddRow(int64(2), "A", "a", "").
			AddRow(int64(1), "B", "b", ""))

	st := NewGroupStorage(mock, trmpgx.DefaultCtxGetter)
	got, err := st.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].Slug)
}
