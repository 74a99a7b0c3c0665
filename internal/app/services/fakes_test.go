package services

import (
	"context"
	"mime/multipart"
	"sort"
	"time"

	"github.com/emre/inkwell/internal/app/models"
	"github.com/emre/inkwell/internal/app/repositories"
	"github.com/emre/inkwell/internal/pkg/apperrors"
)

// In-memory repository fakes backing the service tests. They mirror the
// contracts documented on the repository interfaces, including the sentinel
// errors the SQL implementations map constraint violations to.

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64

	// Wired by the other fake constructors so Delete can mirror the
	// transactional cascade of the SQL repository.
	posts    *fakePostRepo
	comments *fakeCommentRepo
	follows  *fakeFollowRepo
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) addUser(username string) *models.User {
	user := &models.User{
		ID:        r.nextID,
		Username:  username,
		Email:     username + "@example.com",
		CreatedAt: time.Now(),
	}
	r.users[user.ID] = user
	r.nextID++
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return 0, apperrors.ErrUsernameAlreadyExists
		}
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	r.nextID++
	return user.ID, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, userID int64) error {
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	if r.comments != nil {
		for commentID, comment := range r.comments.comments {
			if comment.AuthorID == id {
				delete(r.comments.comments, commentID)
			}
		}
	}
	if r.posts != nil {
		for postID, post := range r.posts.posts {
			if post.AuthorID != id {
				continue
			}
			if r.comments != nil {
				for commentID, comment := range r.comments.comments {
					if comment.PostID == postID {
						delete(r.comments.comments, commentID)
					}
				}
			}
			delete(r.posts.posts, postID)
		}
	}
	if r.follows != nil {
		for edge := range r.follows.edges {
			if edge.followerID == id || edge.followedID == id {
				delete(r.follows.edges, edge)
			}
		}
	}
	delete(r.users, id)
	return nil
}

type fakeGroupRepo struct {
	groups map[int64]*models.Group
	nextID int64
	posts  *fakePostRepo
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: map[int64]*models.Group{}, nextID: 1}
}

func (r *fakeGroupRepo) addGroup(title, slug string) *models.Group {
	group := &models.Group{ID: r.nextID, Title: title, Slug: slug}
	r.groups[group.ID] = group
	r.nextID++
	return group
}

func (r *fakeGroupRepo) Create(_ context.Context, group *models.Group) (int64, error) {
	for _, existing := range r.groups {
		if existing.Slug == group.Slug {
			return 0, apperrors.ErrSlugExists
		}
	}
	group.ID = r.nextID
	r.groups[group.ID] = group
	r.nextID++
	return group.ID, nil
}

func (r *fakeGroupRepo) GetAll(_ context.Context) ([]models.Group, error) {
	groups := make([]models.Group, 0, len(r.groups))
	for _, group := range r.groups {
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups, nil
}

func (r *fakeGroupRepo) GetByID(_ context.Context, id int64) (*models.Group, error) {
	group, ok := r.groups[id]
	if !ok {
		return nil, apperrors.ErrGroupNotFound
	}
	return group, nil
}

func (r *fakeGroupRepo) GetBySlug(_ context.Context, slug string) (*models.Group, error) {
	for _, group := range r.groups {
		if group.Slug == slug {
			return group, nil
		}
	}
	return nil, apperrors.ErrGroupNotFound
}

func (r *fakeGroupRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.groups[id]; !ok {
		return apperrors.ErrGroupNotFound
	}
	if r.posts != nil {
		for _, post := range r.posts.posts {
			if post.GroupID != nil && *post.GroupID == id {
				post.GroupID = nil
			}
		}
	}
	delete(r.groups, id)
	return nil
}

type fakePostRepo struct {
	posts   map[int64]*models.Post
	users   *fakeUserRepo
	groups  *fakeGroupRepo
	nextID  int64
	nowTick time.Time
}

func newFakePostRepo(users *fakeUserRepo, groups *fakeGroupRepo) *fakePostRepo {
	repo := &fakePostRepo{
		posts:   map[int64]*models.Post{},
		users:   users,
		groups:  groups,
		nextID:  1,
		nowTick: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	users.posts = repo
	groups.posts = repo
	return repo
}

func (r *fakePostRepo) addPost(authorID int64, groupID *int64, text string) *models.Post {
	post := &models.Post{
		ID:        r.nextID,
		Text:      text,
		CreatedAt: r.nowTick,
		AuthorID:  authorID,
		GroupID:   groupID,
	}
	r.posts[post.ID] = post
	r.nextID++
	r.nowTick = r.nowTick.Add(time.Minute)
	return post
}

func (r *fakePostRepo) resolve(post *models.Post) *models.Post {
	resolved := *post
	if user, ok := r.users.users[post.AuthorID]; ok {
		resolved.Author = user
	}
	if post.GroupID != nil {
		if group, ok := r.groups.groups[*post.GroupID]; ok {
			resolved.Group = group
		}
	}
	return &resolved
}

func (r *fakePostRepo) Create(_ context.Context, post *models.Post) (int64, error) {
	post.ID = r.nextID
	post.CreatedAt = r.nowTick
	r.posts[post.ID] = post
	r.nextID++
	r.nowTick = r.nowTick.Add(time.Minute)
	return post.ID, nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id int64) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	return r.resolve(post), nil
}

func (r *fakePostRepo) Update(_ context.Context, post *models.Post) error {
	stored, ok := r.posts[post.ID]
	if !ok {
		return apperrors.ErrPostNotFound
	}
	stored.Text = post.Text
	stored.GroupID = post.GroupID
	stored.ImagePath = post.ImagePath
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.posts[id]; !ok {
		return apperrors.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) matches(post *models.Post, filter repositories.PostFilter) bool {
	if filter.AuthorID != nil && post.AuthorID != *filter.AuthorID {
		return false
	}
	if filter.GroupID != nil && (post.GroupID == nil || *post.GroupID != *filter.GroupID) {
		return false
	}
	if filter.AuthorIn != nil {
		found := false
		for _, id := range filter.AuthorIn {
			if post.AuthorID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r *fakePostRepo) ordered(filter repositories.PostFilter) []*models.Post {
	var posts []*models.Post
	for _, post := range r.posts {
		if r.matches(post, filter) {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts
}

func (r *fakePostRepo) List(_ context.Context, filter repositories.PostFilter, offset uint64, limit int) ([]models.Post, error) {
	ordered := r.ordered(filter)
	if int(offset) >= len(ordered) {
		return []models.Post{}, nil
	}
	end := int(offset) + limit
	if end > len(ordered) {
		end = len(ordered)
	}
	page := make([]models.Post, 0, end-int(offset))
	for _, post := range ordered[offset:end] {
		page = append(page, *r.resolve(post))
	}
	return page, nil
}

func (r *fakePostRepo) Count(_ context.Context, filter repositories.PostFilter) (int64, error) {
	return int64(len(r.ordered(filter))), nil
}

func (r *fakePostRepo) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	return r.Count(ctx, repositories.PostFilter{AuthorID: &authorID})
}

type fakeCommentRepo struct {
	comments map[int64]*models.Comment
	users    *fakeUserRepo
	nextID   int64
}

func newFakeCommentRepo(users *fakeUserRepo) *fakeCommentRepo {
	repo := &fakeCommentRepo{comments: map[int64]*models.Comment{}, users: users, nextID: 1}
	users.comments = repo
	return repo
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) (int64, error) {
	comment.ID = r.nextID
	comment.CreatedAt = time.Now()
	r.comments[comment.ID] = comment
	r.nextID++
	return comment.ID, nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, apperrors.ErrCommentNotFound
	}
	resolved := *comment
	if author, ok := r.users.users[comment.AuthorID]; ok {
		resolved.Author = author
	}
	return &resolved, nil
}

func (r *fakeCommentRepo) ListByPostID(_ context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	for _, comment := range r.comments {
		if comment.PostID != postID {
			continue
		}
		resolved := *comment
		if user, ok := r.users.users[comment.AuthorID]; ok {
			resolved.Author = user
		}
		comments = append(comments, resolved)
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID > comments[j].ID })
	return comments, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.comments[id]; !ok {
		return apperrors.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func followModel(followerID, followedID int64) *models.Follow {
	return &models.Follow{FollowerID: followerID, FollowedID: followedID}
}

type followEdge struct {
	followerID int64
	followedID int64
}

type fakeFollowRepo struct {
	edges  map[followEdge]bool
	nextID int64
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{edges: map[followEdge]bool{}, nextID: 1}
}

func (r *fakeFollowRepo) Create(_ context.Context, follow *models.Follow) (int64, error) {
	if follow.FollowerID == follow.FollowedID {
		return 0, apperrors.ErrSelfFollow
	}
	edge := followEdge{follow.FollowerID, follow.FollowedID}
	if r.edges[edge] {
		return 0, apperrors.ErrConflict
	}
	r.edges[edge] = true
	id := r.nextID
	r.nextID++
	return id, nil
}

func (r *fakeFollowRepo) Delete(_ context.Context, followerID, followedID int64) (bool, error) {
	edge := followEdge{followerID, followedID}
	if !r.edges[edge] {
		return false, nil
	}
	delete(r.edges, edge)
	return true, nil
}

func (r *fakeFollowRepo) Exists(_ context.Context, followerID, followedID int64) (bool, error) {
	return r.edges[followEdge{followerID, followedID}], nil
}

func (r *fakeFollowRepo) FollowedIDs(_ context.Context, followerID int64) ([]int64, error) {
	ids := []int64{}
	for edge := range r.edges {
		if edge.followerID == followerID {
			ids = append(ids, edge.followedID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeFollowRepo) CountByFollower(_ context.Context, followerID int64) (int64, error) {
	ids, _ := r.FollowedIDs(context.Background(), followerID)
	return int64(len(ids)), nil
}

type storedToken struct {
	userID    int64
	expiresAt time.Time
	revoked   bool
}

type fakeTokenRepo struct {
	tokens map[string]*storedToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*storedToken{}}
}

func (r *fakeTokenRepo) Save(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	if _, ok := r.tokens[token]; ok {
		return apperrors.ErrConflict
	}
	r.tokens[token] = &storedToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (r *fakeTokenRepo) Get(_ context.Context, token string) (int64, time.Time, bool, error) {
	stored, ok := r.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return stored.userID, stored.expiresAt, stored.revoked, nil
}

func (r *fakeTokenRepo) Revoke(_ context.Context, token string) error {
	stored, ok := r.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.revoked = true
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	var removed int64
	for token, stored := range r.tokens {
		if time.Now().After(stored.expiresAt) {
			delete(r.tokens, token)
			removed++
		}
	}
	return removed, nil
}

type fakeFileStorage struct {
	saved   []string
	deleted []string
}

func (f *fakeFileStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error) {
	stored := path + "/" + fileHeader.Filename
	f.saved = append(f.saved, stored)
	return stored, nil
}

func (f *fakeFileStorage) DeleteFile(filePath string) error {
	f.deleted = append(f.deleted, filePath)
	return nil
}

func (f *fakeFileStorage) FileURL(filePath string) string {
	return "/uploads/" + filePath
}
