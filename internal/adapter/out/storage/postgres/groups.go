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

var groupColumns = []string{
	tableinfo.GroupIDColumn,
	tableinfo.GroupTitleColumn,
	tableinfo.GroupSlugColumn,
	tableinfo.GroupDescriptionColumn,
}

type GroupStorage struct {
	db     trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewGroupStorage(db trmpgx.Tr, getter *trmpgx.CtxGetter) *GroupStorage {
	return &GroupStorage{db: db, getter: getter}
}

func (s *GroupStorage) CreateGroup(ctx context.Context, in model.Group) (model.Group, error) {
	var out model.Group

	query, args, err := sq.
		Insert(tableinfo.GroupsTableName).
		Columns(tableinfo.GroupTitleColumn, tableinfo.GroupSlugColumn, tableinfo.GroupDescriptionColumn).
		Values(in.Title, in.Slug, in.Description).
		Suffix("RETURNING " + joinColumns(groupColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.Title,
		&out.Slug,
		&out.Description,
	); err != nil {
		if code, _ := pgCode(err); code == codeUniqueViolation {
			return out, service.ErrSlugTaken
		}
		return out, fmt.Errorf("exec insert group: %w", err)
	}

	return out, nil
}

func (s *GroupStorage) GetGroupByID(ctx context.Context, groupID int64) (model.Group, error) {
	return s.getGroup(ctx, sq.Eq{tableinfo.GroupIDColumn: groupID})
}

func (s *GroupStorage) GetGroupBySlug(ctx context.Context, slug string) (model.Group, error) {
	return s.getGroup(ctx, sq.Eq{tableinfo.GroupSlugColumn: slug})
}

func (s *GroupStorage) getGroup(ctx context.Context, where sq.Eq) (model.Group, error) {
	var out model.Group

	query, args, err := sq.
		Select(groupColumns...).
		From(tableinfo.GroupsTableName).
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.Title,
		&out.Slug,
		&out.Description,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return out, service.ErrNotFound
		}
		return out, fmt.Errorf("exec select group: %w", err)
	}

	return out, nil
}

func (s *GroupStorage) ListGroups(ctx context.Context) ([]model.Group, error) {
	query, args, err := sq.
		Select(groupColumns...).
		From(tableinfo.GroupsTableName).
		OrderBy(tableinfo.GroupTitleColumn, tableinfo.GroupIDColumn).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec select groups: %w", err)
	}
	defer rows.Close()

	var out []model.Group
	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return out, nil
}
