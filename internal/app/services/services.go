package services

import (
	"github.com/rs/zerolog"

	"github.com/emre/inkwell/internal/app/repositories"
	"github.com/emre/inkwell/internal/pkg/auth"
	"github.com/emre/inkwell/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	AuthService    AuthService
	FeedService    FeedService
	PostService    PostService
	CommentService CommentService
	GroupService   GroupService
	ProfileService ProfileService
	FollowService  FollowService
}

// NewServices initializes all services on top of the repository layer
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	files filestorage.FileStorage,
	logger zerolog.Logger,
) *Services {
	return &Services{
		AuthService: NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService, logger),
		FeedService: NewFeedService(
			repos.PostRepository,
			repos.GroupRepository,
			repos.UserRepository,
			repos.FollowRepository,
			files,
			logger,
		),
		PostService: NewPostService(
			repos.PostRepository,
			repos.GroupRepository,
			repos.CommentRepository,
			files,
			logger,
		),
		CommentService: NewCommentService(
			repos.CommentRepository,
			repos.PostRepository,
			repos.UserRepository,
			logger,
		),
		GroupService:   NewGroupService(repos.GroupRepository, logger),
		ProfileService: NewProfileService(repos.UserRepository, repos.PostRepository, repos.FollowRepository, files, logger),
		FollowService:  NewFollowService(repos.FollowRepository, repos.UserRepository, logger),
	}
}
