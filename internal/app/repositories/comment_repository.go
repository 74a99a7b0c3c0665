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

// ICommentRepository defines the interface for comment-related database operations
type ICommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	// ListByPostID returns a post's comments newest-first with authors resolved.
	ListByPostID(ctx context.Context, postID int64) ([]models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// CommentRepository handles comment database operations
type CommentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new comment row
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("comments").
		Columns("post_id", "author_id", "text", "created_at").
		Values(comment.PostID, comment.AuthorID, comment.Text, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create comment query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		// The post can disappear between the service's existence check
		// and the insert.
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrPostNotFound
		}
		return 0, fmt.Errorf("error executing create comment query: %w", err)
	}

	comment.ID = id
	comment.CreatedAt = now
	return id, nil
}

// GetByID retrieves a single comment with its author resolved
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.post_id", "c.author_id", "c.text", "c.created_at",
		"u.id", "u.username",
	).
		From("comments c").
		Join("users u ON u.id = c.author_id").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get comment query: %w", err)
	}

	var comment models.Comment
	var author models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Text,
		&comment.CreatedAt,
		&author.ID,
		&author.Username,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error executing get comment query: %w", err)
	}

	comment.Author = &author
	return &comment, nil
}

// ListByPostID returns a post's comments newest-first
func (r *CommentRepository) ListByPostID(ctx context.Context, postID int64) ([]models.Comment, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.post_id", "c.author_id", "c.text", "c.created_at",
		"u.id", "u.username",
	).
		From("comments c").
		Join("users u ON u.id = c.author_id").
		Where(squirrel.Eq{"c.post_id": postID}).
		OrderBy("c.created_at DESC", "c.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list comments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing list comments query: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		var author models.User
		err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Text,
			&comment.CreatedAt,
			&author.ID,
			&author.Username,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comment.Author = &author
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// Delete removes a comment row
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("comments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete comment query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing delete comment query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}

	return nil
}
