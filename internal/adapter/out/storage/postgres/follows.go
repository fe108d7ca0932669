package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"

	"yatube/internal/service"
	"yatube/pkg/tableinfo"
)

type FollowStorage struct {
	db     trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewFollowStorage(db trmpgx.Tr, getter *trmpgx.CtxGetter) *FollowStorage {
	return &FollowStorage{db: db, getter: getter}
}

// CreateFollow relies on the (user_id, author_id) unique constraint, a
// repeated follow inserts nothing.
func (s *FollowStorage) CreateFollow(ctx context.Context, userID, authorID int64) error {
	query, args, err := sq.
		Insert(tableinfo.FollowsTableName).
		Columns(tableinfo.FollowUserIDColumn, tableinfo.FollowAuthorIDColumn).
		Values(userID, authorID).
		Suffix(fmt.Sprintf("ON CONFLICT (%s, %s) DO NOTHING",
			tableinfo.FollowUserIDColumn,
			tableinfo.FollowAuthorIDColumn,
		)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if _, err := tr.Exec(ctx, query, args...); err != nil {
		switch code, _ := pgCode(err); code {
		case codeCheckViolation:
			return service.ErrSelfFollow
		case codeForeignKeyViolation:
			return service.ErrNotFound
		}
		return fmt.Errorf("exec insert follow: %w", err)
	}
	return nil
}

func (s *FollowStorage) DeleteFollow(ctx context.Context, userID, authorID int64) error {
	query, args, err := sq.
		Delete(tableinfo.FollowsTableName).
		Where(sq.Eq{
			tableinfo.FollowUserIDColumn:   userID,
			tableinfo.FollowAuthorIDColumn: authorID,
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if _, err := tr.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("exec delete follow: %w", err)
	}
	return nil
}

func (s *FollowStorage) IsFollowing(ctx context.Context, userID, authorID int64) (bool, error) {
	query, args, err := sq.
		Select("1").
		From(tableinfo.FollowsTableName).
		Where(sq.Eq{
			tableinfo.FollowUserIDColumn:   userID,
			tableinfo.FollowAuthorIDColumn: authorID,
		}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)

	var ok bool
	if err := tr.QueryRow(ctx, query, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("exec select follow: %w", err)
	}
	return ok, nil
}
