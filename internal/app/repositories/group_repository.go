package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/inkwell/internal/app/models"
	"github.com/emre/inkwell/internal/pkg/apperrors"
	"github.com/emre/inkwell/internal/pkg/dberrors"
	"github.com/emre/inkwell/internal/pkg/logger"
)

// IGroupRepository defines the interface for group-related database operations
type IGroupRepository interface {
	Create(ctx context.Context, group *models.Group) (int64, error)
	GetAll(ctx context.Context) ([]models.Group, error)
	GetByID(ctx context.Context, id int64) (*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	// Delete removes the group; posts that referenced it keep existing with a
	// null group reference.
	Delete(ctx context.Context, id int64) error
}

// GroupRepository handles group database operations
type GroupRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new group row
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) (int64, error) {
	sql, args, err := r.sb.Insert("groups").
		Columns("title", "slug", "description").
		Values(group.Title, group.Slug, group.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create group query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "groups_slug_key") {
			return 0, apperrors.ErrSlugExists
		}
		return 0, fmt.Errorf("error executing create group query: %w", err)
	}

	group.ID = id
	return id, nil
}

// GetAll retrieves the group directory ordered by title
func (r *GroupRepository) GetAll(ctx context.Context) ([]models.Group, error) {
	sql, args, err := r.sb.Select("id", "title", "slug", "description").
		From("groups").
		OrderBy("title ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list groups query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing list groups query: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(&group.ID, &group.Title, &group.Slug, &group.Description); err != nil {
			return nil, fmt.Errorf("error scanning group row: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", err)
	}

	return groups, nil
}

// GetByID retrieves a group by its id
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	sql, args, err := r.sb.Select("id", "title", "slug", "description").
		From("groups").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get group query: %w", err)
	}

	var group models.Group
	err = r.db.QueryRow(ctx, sql, args...).Scan(&group.ID, &group.Title, &group.Slug, &group.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error executing get group query: %w", err)
	}

	return &group, nil
}

// GetBySlug retrieves a group by its unique slug
func (r *GroupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	sql, args, err := r.sb.Select("id", "title", "slug", "description").
		From("groups").
		Where(squirrel.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get group query: %w", err)
	}

	var group models.Group
	err = r.db.QueryRow(ctx, sql, args...).Scan(&group.ID, &group.Title, &group.Slug, &group.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error executing get group query: %w", err)
	}

	return &group, nil
}

// Delete removes a group. Posts published to it are kept and their group
// reference is nulled first, in the same transaction.
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete group transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.Error().Err(rbErr).Int64("groupId", id).Msg("Failed to rollback group delete")
		}
	}()

	if _, err := tx.Exec(ctx, `UPDATE posts SET group_id = NULL WHERE group_id = $1`, id); err != nil {
		return fmt.Errorf("error detaching posts from group: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting group row: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit group delete: %w", err)
	}

	return nil
}
