package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/inkwell/internal/app/models/dto"
	"github.com/emre/inkwell/internal/app/services"
	"github.com/emre/inkwell/internal/middleware"
)

// ProfileController handles author profiles and subscriptions
type ProfileController struct {
	profileService services.ProfileService
	followService  services.FollowService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService, followService services.FollowService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		followService:  followService,
	}
}

// GetProfile handles retrieving an author profile
// @Summary Get an author profile
// @Description Retrieves an author's profile with their post count and the viewer's follow state
// @Tags profiles
// @Produce json
// @Param username path string true "Author username"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile retrieved successfully"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Router /profiles/{username} [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	profile, err := c.profileService.GetProfile(ctx, ctx.Param("username"), middleware.GetOptionalUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// Follow handles subscribing to an author
// @Summary Follow an author
// @Description Subscribes the viewer to the author's posts. Following an author twice, or yourself, changes nothing and still succeeds.
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param username path string true "Author username"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Followed successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Router /profiles/{username}/follow [post]
func (c *ProfileController) Follow(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.followService.Follow(ctx, userID, ctx.Param("username")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Followed"}))
}

// Unfollow handles unsubscribing from an author
// @Summary Unfollow an author
// @Description Removes the viewer's subscription to the author. Unfollowing someone you don't follow still succeeds.
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param username path string true "Author username"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Unfollowed successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Router /profiles/{username}/follow [delete]
func (c *ProfileController) Unfollow(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.followService.Unfollow(ctx, userID, ctx.Param("username")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Unfollowed"}))
}

// DeleteAccount handles deleting the authenticated user's account
// @Summary Delete your account
// @Description Removes the account together with its posts, comments and subscriptions
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Account deleted"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /account [delete]
func (c *ProfileController) DeleteAccount(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.profileService.DeleteAccount(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Account deleted"}))
}
