package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"

	"yatube/internal/model"
	"yatube/internal/service"
	"yatube/pkg/tableinfo"
)

const commentAlias = "c"

type CommentStorage struct {
	db     trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewCommentStorage(db trmpgx.Tr, getter *trmpgx.CtxGetter) *CommentStorage {
	return &CommentStorage{db: db, getter: getter}
}

func (s *CommentStorage) CreateComment(ctx context.Context, in model.Comment) (model.Comment, error) {
	var out model.Comment

	query, args, err := sq.
		Insert(tableinfo.CommentsTableName).
		Columns(
			tableinfo.CommentPostIDColumn,
			tableinfo.CommentAuthorIDColumn,
			tableinfo.CommentTextColumn,
		).
		Values(in.PostID, in.AuthorID, in.Text).
		Suffix(fmt.Sprintf("RETURNING %s, %s, %s, %s, %s",
			tableinfo.CommentIDColumn,
			tableinfo.CommentPostIDColumn,
			tableinfo.CommentAuthorIDColumn,
			tableinfo.CommentTextColumn,
			tableinfo.CommentCreatedAtColumn,
		)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.PostID,
		&out.AuthorID,
		&out.Text,
		&out.CreatedAt,
	); err != nil {
		// the post was deleted between the lookup and the insert
		if code, constraint := pgCode(err); code == codeForeignKeyViolation && constraint == "comments_post_id_fkey" {
			return out, service.ErrNotFound
		}
		return out, fmt.Errorf("exec insert comment: %w", err)
	}

	return out, nil
}

// GetCommentsByPost returns comments oldest first.
func (s *CommentStorage) GetCommentsByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	query, args, err := sq.
		Select(
			tableinfo.Qualified(commentAlias, tableinfo.CommentIDColumn),
			tableinfo.Qualified(commentAlias, tableinfo.CommentPostIDColumn),
			tableinfo.Qualified(commentAlias, tableinfo.CommentAuthorIDColumn),
			tableinfo.Qualified(userAlias, tableinfo.UserUsernameColumn),
			tableinfo.Qualified(commentAlias, tableinfo.CommentTextColumn),
			tableinfo.Qualified(commentAlias, tableinfo.CommentCreatedAtColumn),
		).
		From(tableinfo.CommentsTableName + " " + commentAlias).
		Join(fmt.Sprintf("%s %s ON %s = %s",
			tableinfo.UsersTableName, userAlias,
			tableinfo.Qualified(userAlias, tableinfo.UserIDColumn),
			tableinfo.Qualified(commentAlias, tableinfo.CommentAuthorIDColumn),
		)).
		Where(sq.Eq{tableinfo.Qualified(commentAlias, tableinfo.CommentPostIDColumn): postID}).
		OrderBy(
			tableinfo.Qualified(commentAlias, tableinfo.CommentCreatedAtColumn)+" ASC",
			tableinfo.Qualified(commentAlias, tableinfo.CommentIDColumn)+" ASC",
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec select comments: %w", err)
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(
			&c.ID,
			&c.PostID,
			&c.AuthorID,
			&c.Author,
			&c.Text,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return out, nil
}

func (s *CommentStorage) DeleteCommentsByPost(ctx context.Context, postID int64) error {
	query, args, err := sq.
		Delete(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentPostIDColumn: postID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if _, err := tr.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("exec delete comments: %w", err)
	}
	return nil
}
