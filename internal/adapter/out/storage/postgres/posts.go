package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"

	"yatube/internal/adapter/out/storage"
	"yatube/internal/model"
	"yatube/internal/service"
	"yatube/pkg/tableinfo"
)

const (
	postAlias = "p"
	userAlias = "u"
)

var postColumns = []string{
	tableinfo.PostIDColumn,
	tableinfo.PostTextColumn,
	tableinfo.PostAuthorIDColumn,
	tableinfo.PostGroupIDColumn,
	tableinfo.PostImageColumn,
	tableinfo.PostCreatedAtColumn,
}

type PostStorage struct {
	db     trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewPostStorage(db trmpgx.Tr, getter *trmpgx.CtxGetter) *PostStorage {
	return &PostStorage{db: db, getter: getter}
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

// selectPosts reads posts joined with their author's username.
func selectPosts() sq.SelectBuilder {
	return sq.
		Select(
			tableinfo.Qualified(postAlias, tableinfo.PostIDColumn),
			tableinfo.Qualified(postAlias, tableinfo.PostTextColumn),
			tableinfo.Qualified(postAlias, tableinfo.PostAuthorIDColumn),
			tableinfo.Qualified(userAlias, tableinfo.UserUsernameColumn),
			tableinfo.Qualified(postAlias, tableinfo.PostGroupIDColumn),
			tableinfo.Qualified(postAlias, tableinfo.PostImageColumn),
			tableinfo.Qualified(postAlias, tableinfo.PostCreatedAtColumn),
		).
		From(tableinfo.PostsTableName + " " + postAlias).
		Join(fmt.Sprintf("%s %s ON %s = %s",
			tableinfo.UsersTableName, userAlias,
			tableinfo.Qualified(userAlias, tableinfo.UserIDColumn),
			tableinfo.Qualified(postAlias, tableinfo.PostAuthorIDColumn),
		)).
		PlaceholderFormat(sq.Dollar)
}

// postFilterCond translates a feed filter into a WHERE condition over
// posts aliased as p.
func postFilterCond(filter storage.PostFilter) (sq.Sqlizer, error) {
	switch filter.Scope {
	case storage.ScopeAll:
		return sq.Expr("TRUE"), nil
	case storage.ScopeGroup:
		return sq.Eq{tableinfo.Qualified(postAlias, tableinfo.PostGroupIDColumn): filter.ID}, nil
	case storage.ScopeAuthor:
		return sq.Eq{tableinfo.Qualified(postAlias, tableinfo.PostAuthorIDColumn): filter.ID}, nil
	case storage.ScopeFollower:
		return sq.Expr(
			fmt.Sprintf("%s IN (SELECT %s FROM %s WHERE %s = ?)",
				tableinfo.Qualified(postAlias, tableinfo.PostAuthorIDColumn),
				tableinfo.FollowAuthorIDColumn,
				tableinfo.FollowsTableName,
				tableinfo.FollowUserIDColumn,
			),
			filter.ID,
		), nil
	default:
		return nil, errors.Join(service.ErrInvalidRequest, storage.ErrScopeUnset)
	}
}

func listPostsQueryBuilder(params storage.ListPostsParams) (sq.SelectBuilder, error) {
	cond, err := postFilterCond(params.Filter)
	if err != nil {
		return sq.SelectBuilder{}, err
	}

	qb := selectPosts().
		Where(cond).
		OrderBy(
			tableinfo.Qualified(postAlias, tableinfo.PostCreatedAtColumn)+" DESC",
			tableinfo.Qualified(postAlias, tableinfo.PostIDColumn)+" ASC",
		)
	if params.Limit > 0 {
		qb = qb.Limit(uint64(params.Limit))
	}
	if params.Offset > 0 {
		qb = qb.Offset(uint64(params.Offset))
	}
	return qb, nil
}

func (s *PostStorage) CreatePost(ctx context.Context, in model.Post) (model.Post, error) {
	var out model.Post

	columns := []string{
		tableinfo.PostTextColumn,
		tableinfo.PostAuthorIDColumn,
		tableinfo.PostGroupIDColumn,
		tableinfo.PostImageColumn,
	}
	values := []any{in.Text, in.AuthorID, in.GroupID, in.Image}
	if !in.CreatedAt.IsZero() {
		columns = append(columns, tableinfo.PostCreatedAtColumn)
		values = append(values, in.CreatedAt)
	}

	query, args, err := sq.
		Insert(tableinfo.PostsTableName).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING " + joinColumns(postColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.Text,
		&out.AuthorID,
		&out.GroupID,
		&out.Image,
		&out.CreatedAt,
	); err != nil {
		if code, _ := pgCode(err); code == codeForeignKeyViolation {
			return out, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err)
		}
		return out, fmt.Errorf("exec insert post: %w", err)
	}

	return out, nil
}

func (s *PostStorage) GetPostByID(ctx context.Context, postID int64) (model.Post, error) {
	var out model.Post

	query, args, err := selectPosts().
		Where(sq.Eq{tableinfo.Qualified(postAlias, tableinfo.PostIDColumn): postID}).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.Text,
		&out.AuthorID,
		&out.Author,
		&out.GroupID,
		&out.Image,
		&out.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return out, service.ErrNotFound
		}
		return out, fmt.Errorf("exec select post by id: %w", err)
	}

	return out, nil
}

// UpdatePost writes text, group and image. Author and creation time are
// never touched.
func (s *PostStorage) UpdatePost(ctx context.Context, in model.Post) (model.Post, error) {
	var out model.Post

	query, args, err := sq.
		Update(tableinfo.PostsTableName).
		Set(tableinfo.PostTextColumn, in.Text).
		Set(tableinfo.PostGroupIDColumn, in.GroupID).
		Set(tableinfo.PostImageColumn, in.Image).
		Where(sq.Eq{tableinfo.PostIDColumn: in.ID}).
		Suffix("RETURNING " + joinColumns(postColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.Text,
		&out.AuthorID,
		&out.GroupID,
		&out.Image,
		&out.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return out, service.ErrNotFound
		}
		return out, fmt.Errorf("exec update post: %w", err)
	}

	return out, nil
}

func (s *PostStorage) DeletePost(ctx context.Context, postID int64) error {
	query, args, err := sq.
		Delete(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	tag, err := tr.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (s *PostStorage) CountPosts(ctx context.Context, filter storage.PostFilter) (int, error) {
	cond, err := postFilterCond(filter)
	if err != nil {
		return 0, err
	}

	query, args, err := sq.
		Select("COUNT(*)").
		From(tableinfo.PostsTableName + " " + postAlias).
		Where(cond).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)

	var n int
	if err := tr.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("exec count posts: %w", err)
	}
	return n, nil
}

func (s *PostStorage) ListPosts(ctx context.Context, params storage.ListPostsParams) ([]model.Post, error) {
	qb, err := listPostsQueryBuilder(params)
	if err != nil {
		return nil, err
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec select posts: %w", err)
	}
	defer rows.Close()

	out := make([]model.Post, 0, max(params.Limit, 0))
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(
			&p.ID,
			&p.Text,
			&p.AuthorID,
			&p.Author,
			&p.GroupID,
			&p.Image,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return out, nil
}
