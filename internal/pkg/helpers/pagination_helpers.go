package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emre/inkwell/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // Default page is 1-based
)

// ClampPage saturates a requested 1-based page number against the total item
// count. A page below 1 resolves to the first page and a page past the end
// resolves to the last page; an out-of-range request never fails.
func ClampPage(page, size int, totalItems int64) (clampedPage, totalPages int) {
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages = 1
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	}

	if page > totalPages {
		page = totalPages
	}

	return page, totalPages
}

// CalculateOffsetLimit calculates the offset and limit for SQL queries based on 1-based page index.
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	if size <= 0 || size > MaxPageSize {
		limit = DefaultPageSize
	} else {
		limit = size
	}

	if page < 1 {
		page = DefaultPage
	}

	offset = uint64((page - 1) * limit)
	return offset, limit
}

// NewPageInfo creates a standard PageInfo DTO for an already clamped page number.
func NewPageInfo(totalItems int64, page, size int) dto.PageInfo {
	if size <= 0 {
		size = DefaultPageSize
	}

	clampedPage, totalPages := ClampPage(page, size, totalItems)

	return dto.PageInfo{
		CurrentPage: clampedPage,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
		HasPrevious: clampedPage > 1,
		HasNext:     clampedPage < totalPages,
	}
}

// ParsePaginationParams extracts and validates pagination parameters from the request
func ParsePaginationParams(c *gin.Context) (page, size int) {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	sizeStr := c.DefaultQuery("size", "10")
	size, err = strconv.Atoi(sizeStr)
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}

	return page, size
}
