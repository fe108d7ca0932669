package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"

	"yatube/internal/model"
	"yatube/internal/service"
	"yatube/pkg/tableinfo"
)

var userColumns = []string{
	tableinfo.UserIDColumn,
	tableinfo.UserUsernameColumn,
	tableinfo.UserPasswordHashColumn,
	tableinfo.UserCreatedAtColumn,
}

type UserStorage struct {
	db     trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewUserStorage(db trmpgx.Tr, getter *trmpgx.CtxGetter) *UserStorage {
	return &UserStorage{db: db, getter: getter}
}

func (s *UserStorage) CreateUser(ctx context.Context, in model.User) (model.User, error) {
	var out model.User

	query, args, err := sq.
		Insert(tableinfo.UsersTableName).
		Columns(tableinfo.UserUsernameColumn, tableinfo.UserPasswordHashColumn).
		Values(in.Username, in.PasswordHash).
		Suffix("RETURNING " + joinColumns(userColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.Username,
		&out.PasswordHash,
		&out.CreatedAt,
	); err != nil {
		if code, _ := pgCode(err); code == codeUniqueViolation {
			return out, service.ErrUsernameTaken
		}
		return out, fmt.Errorf("exec insert user: %w", err)
	}

	return out, nil
}

func (s *UserStorage) GetUserByID(ctx context.Context, userID int64) (model.User, error) {
	return s.getUser(ctx, sq.Eq{tableinfo.UserIDColumn: userID})
}

func (s *UserStorage) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return s.getUser(ctx, sq.Eq{tableinfo.UserUsernameColumn: username})
}

func (s *UserStorage) getUser(ctx context.Context, where sq.Eq) (model.User, error) {
	var out model.User

	query, args, err := sq.
		Select(userColumns...).
		From(tableinfo.UsersTableName).
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.Username,
		&out.PasswordHash,
		&out.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return out, service.ErrNotFound
		}
		return out, fmt.Errorf("exec select user: %w", err)
	}

	return out, nil
}
