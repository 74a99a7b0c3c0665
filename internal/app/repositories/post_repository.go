package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/inkwell/internal/app/models"
	"github.com/emre/inkwell/internal/pkg/apperrors"
)

// PostFilter narrows post listings. A nil field means "no constraint"; an
// AuthorIn filter with an empty, non-nil slice matches nothing.
type PostFilter struct {
	AuthorID *int64
	GroupID  *int64
	AuthorIn []int64
}

// IPostRepository defines the interface for post-related database operations
type IPostRepository interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
	// List returns one page of posts ordered newest-first by creation time,
	// id-descending on ties, with author and group resolved.
	List(ctx context.Context, filter PostFilter, offset uint64, limit int) ([]models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
}

// PostRepository handles post database operations
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new post row. The creation timestamp is assigned here and
// never touched by updates.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("posts").
		Columns("text", "created_at", "author_id", "group_id", "image_path").
		Values(post.Text, now, post.AuthorID, post.GroupID, post.ImagePath).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create post query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing create post query: %w", err)
	}

	post.ID = id
	post.CreatedAt = now
	return id, nil
}

func (r *PostRepository) selectPosts() squirrel.SelectBuilder {
	return r.sb.Select(
		"p.id", "p.text", "p.created_at", "p.author_id", "p.group_id", "p.image_path",
		"u.id", "u.username",
		"g.id", "g.title", "g.slug",
	).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		LeftJoin("groups g ON g.id = p.group_id")
}

func scanPost(rows pgx.Rows) (models.Post, error) {
	var post models.Post
	var author models.User
	var groupID, gID *int64
	var gTitle, gSlug *string

	err := rows.Scan(
		&post.ID,
		&post.Text,
		&post.CreatedAt,
		&post.AuthorID,
		&groupID,
		&post.ImagePath,
		&author.ID,
		&author.Username,
		&gID,
		&gTitle,
		&gSlug,
	)
	if err != nil {
		return post, err
	}

	post.GroupID = groupID
	post.Author = &author
	if gID != nil {
		post.Group = &models.Group{ID: *gID, Title: *gTitle, Slug: *gSlug}
	}

	return post, nil
}

// GetByID retrieves a post with its author and group resolved
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	sql, args, err := r.selectPosts().
		Where(squirrel.Eq{"p.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get post query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing get post query: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading post row: %w", err)
		}
		return nil, apperrors.ErrPostNotFound
	}

	post, err := scanPost(rows)
	if err != nil {
		return nil, fmt.Errorf("error scanning post row: %w", err)
	}

	return &post, nil
}

// Update rewrites the mutable fields of a post. The creation timestamp and
// author are immutable.
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	sql, args, err := r.sb.Update("posts").
		Set("text", post.Text).
		Set("group_id", post.GroupID).
		Set("image_path", post.ImagePath).
		Where(squirrel.Eq{"id": post.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update post query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing update post query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}

// Delete removes a post and its comments
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete post transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
		return fmt.Errorf("error deleting post comments: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting post row: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit post delete: %w", err)
	}

	return nil
}

func applyPostFilter(query squirrel.SelectBuilder, filter PostFilter) squirrel.SelectBuilder {
	if filter.AuthorID != nil {
		query = query.Where(squirrel.Eq{"p.author_id": *filter.AuthorID})
	}
	if filter.GroupID != nil {
		query = query.Where(squirrel.Eq{"p.group_id": *filter.GroupID})
	}
	if filter.AuthorIn != nil {
		query = query.Where(squirrel.Eq{"p.author_id": filter.AuthorIn})
	}
	return query
}

// List returns one page of posts matching the filter
func (r *PostRepository) List(ctx context.Context, filter PostFilter, offset uint64, limit int) ([]models.Post, error) {
	query := applyPostFilter(r.selectPosts(), filter).
		OrderBy("p.created_at DESC", "p.id DESC").
		Offset(offset).
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list posts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing list posts query: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

// Count returns the number of posts matching the filter
func (r *PostRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	query := applyPostFilter(r.sb.Select("COUNT(*)").From("posts p"), filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count posts query: %w", err)
	}

	var count int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing count posts query: %w", err)
	}

	return count, nil
}

// CountByAuthor returns the number of posts published by one author
func (r *PostRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	return r.Count(ctx, PostFilter{AuthorID: &authorID})
}
