package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/inkwell/internal/app/models"
	"github.com/emre/inkwell/internal/pkg/apperrors"
	"github.com/emre/inkwell/internal/pkg/dberrors"
)

// IFollowRepository defines the interface for follow-edge database operations
type IFollowRepository interface {
	// Create inserts a follow edge. A duplicate pair surfaces as
	// apperrors.ErrConflict; a self-loop surfaces as apperrors.ErrSelfFollow.
	Create(ctx context.Context, follow *models.Follow) (int64, error)
	// Delete removes the edge if present and reports whether a row was removed.
	Delete(ctx context.Context, followerID, followedID int64) (bool, error)
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	// FollowedIDs returns the ids of every author the viewer follows. The
	// result is never nil.
	FollowedIDs(ctx context.Context, followerID int64) ([]int64, error)
	CountByFollower(ctx context.Context, followerID int64) (int64, error)
}

// FollowRepository handles follow-edge database operations
type FollowRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a follow edge. The unique pair and the no-self-loop rule are
// both storage constraints, so a racing duplicate insert or a direct
// self-follow attempt fails here rather than silently corrupting the graph.
func (r *FollowRepository) Create(ctx context.Context, follow *models.Follow) (int64, error) {
	sql, args, err := r.sb.Insert("follows").
		Columns("follower_id", "followed_id", "created_at").
		Values(follow.FollowerID, follow.FollowedID, time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create follow query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "follows_follower_id_followed_id_key") {
			return 0, apperrors.ErrConflict
		}
		if dberrors.IsCheckViolation(err, "follows_no_self_follow") {
			return 0, apperrors.ErrSelfFollow
		}
		return 0, fmt.Errorf("error executing create follow query: %w", err)
	}

	follow.ID = id
	return id, nil
}

// Delete removes a follow edge if it exists
func (r *FollowRepository) Delete(ctx context.Context, followerID, followedID int64) (bool, error) {
	sql, args, err := r.sb.Delete("follows").
		Where(squirrel.Eq{"follower_id": followerID, "followed_id": followedID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete follow query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error executing delete follow query: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Exists checks whether follower follows followed
func (r *FollowRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("follows").
		Where(squirrel.Eq{"follower_id": followerID, "followed_id": followedID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build follow exists query: %w", err)
	}

	var exists int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing follow exists query: %w", err)
	}

	return true, nil
}

// FollowedIDs returns the set of authors the viewer follows
func (r *FollowRepository) FollowedIDs(ctx context.Context, followerID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("followed_id").
		From("follows").
		Where(squirrel.Eq{"follower_id": followerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build followed ids query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing followed ids query: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning followed id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating followed ids: %w", err)
	}

	return ids, nil
}

// CountByFollower returns how many authors the viewer follows
func (r *FollowRepository) CountByFollower(ctx context.Context, followerID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("follows").
		Where(squirrel.Eq{"follower_id": followerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count follows query: %w", err)
	}

	var count int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing count follows query: %w", err)
	}

	return count, nil
}
