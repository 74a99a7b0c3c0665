package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/inkwell/internal/app/models/dto"
	"github.com/emre/inkwell/internal/app/services"
	"github.com/emre/inkwell/internal/middleware"
	"github.com/emre/inkwell/internal/pkg/helpers"
)

// FeedController serves the paginated post listings
type FeedController struct {
	feedService services.FeedService
}

// NewFeedController creates a new FeedController
func NewFeedController(feedService services.FeedService) *FeedController {
	return &FeedController{
		feedService: feedService,
	}
}

// GetGlobalFeed handles the unfiltered post listing
// @Summary Global post listing
// @Description Retrieves one page of all posts, newest first. Responses are cached briefly, so very recent posts may take a few seconds to appear.
// @Tags posts
// @Produce json
// @Param page query int false "Page number (1-based); out-of-range values clamp" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse} "Posts retrieved successfully"
// @Router /posts [get]
func (c *FeedController) GetGlobalFeed(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	result, err := c.feedService.Global(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// GetGroupFeed handles a group's post listing
// @Summary Group post listing
// @Description Retrieves one page of a group's posts, newest first
// @Tags groups
// @Produce json
// @Param slug path string true "Group slug"
// @Param page query int false "Page number (1-based); out-of-range values clamp" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.GroupPostsResponse} "Posts retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Group not found"
// @Router /groups/{slug}/posts [get]
func (c *FeedController) GetGroupFeed(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	result, err := c.feedService.ByGroup(ctx, ctx.Param("slug"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// GetProfileFeed handles an author's post listing
// @Summary Author post listing
// @Description Retrieves one page of an author's posts, newest first, with the viewer's follow state
// @Tags profiles
// @Produce json
// @Param username path string true "Author username"
// @Param page query int false "Page number (1-based); out-of-range values clamp" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ProfilePostsResponse} "Posts retrieved successfully"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Router /profiles/{username}/posts [get]
func (c *FeedController) GetProfileFeed(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	result, err := c.feedService.ByAuthor(ctx, ctx.Param("username"), middleware.GetOptionalUserID(ctx), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// GetFollowedFeed handles the subscription listing
// @Summary Subscription listing
// @Description Retrieves one page of posts from authors the viewer follows. A viewer following nobody gets an empty page.
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based); out-of-range values clamp" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse} "Posts retrieved successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /feed [get]
func (c *FeedController) GetFollowedFeed(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	result, err := c.feedService.ByFollowed(ctx, userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
