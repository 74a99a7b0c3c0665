package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/inkwell/internal/app/models/dto"
	"github.com/emre/inkwell/internal/app/services"
	"github.com/emre/inkwell/internal/middleware"
)

// GroupController serves the group directory
type GroupController struct {
	groupService services.GroupService
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService services.GroupService) *GroupController {
	return &GroupController{
		groupService: groupService,
	}
}

// GetAllGroups handles the group directory listing
// @Summary List groups
// @Description Retrieves every group ordered by title
// @Tags groups
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.GroupListResponse} "Groups retrieved successfully"
// @Router /groups [get]
func (c *GroupController) GetAllGroups(ctx *gin.Context) {
	groups, err := c.groupService.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(groups))
}

// GetGroupBySlug handles retrieving a single group
// @Summary Get a group
// @Description Retrieves one group by its slug
// @Tags groups
// @Produce json
// @Param slug path string true "Group slug"
// @Success 200 {object} dto.APIResponse{data=dto.GroupResponse} "Group retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Group not found"
// @Router /groups/{slug} [get]
func (c *GroupController) GetGroupBySlug(ctx *gin.Context) {
	group, err := c.groupService.GetBySlug(ctx, ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(group))
}
