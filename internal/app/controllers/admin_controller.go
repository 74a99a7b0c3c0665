package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/inkwell/internal/app/models/dto"
	"github.com/emre/inkwell/internal/app/services"
	"github.com/emre/inkwell/internal/middleware"
	"github.com/emre/inkwell/internal/pkg/pagecache"
)

// AdminController exposes operational endpoints
type AdminController struct {
	pageCache    *pagecache.Cache
	groupService services.GroupService
}

// NewAdminController creates a new AdminController
func NewAdminController(pageCache *pagecache.Cache, groupService services.GroupService) *AdminController {
	return &AdminController{
		pageCache:    pageCache,
		groupService: groupService,
	}
}

// ClearCache handles flushing the page cache
// @Summary Clear the page cache
// @Description Drops every stored listing page so the next request renders fresh data
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Cache cleared"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /admin/cache [delete]
func (c *AdminController) ClearCache(ctx *gin.Context) {
	c.pageCache.Clear()
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Page cache cleared"}))
}

// DeleteGroup handles removing a group
// @Summary Delete a group
// @Description Removes a group. Posts published to it are kept and become ungrouped.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Group slug"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Group deleted"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Group not found"
// @Router /admin/groups/{slug} [delete]
func (c *AdminController) DeleteGroup(ctx *gin.Context) {
	if err := c.groupService.Delete(ctx, ctx.Param("slug")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Group deleted"}))
}
