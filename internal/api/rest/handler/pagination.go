package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Paging holds the page size limits for list endpoints
type Paging struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultPaging is used when the configuration does not override page sizes
var DefaultPaging = Paging{DefaultPageSize: 20, MaxPageSize: 100}

// PaginationParams holds pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the index of the first item on the page, saturating at math.MaxInt
func (p PaginationParams) Offset() int {
	if p.PageSize > 0 && p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// Parse parses pagination parameters from context
func (pg Paging) Parse(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(pg.DefaultPageSize)))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = pg.DefaultPageSize
	}
	if pageSize > pg.MaxPageSize {
		pageSize = pg.MaxPageSize
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
	}
}

// Paginate returns the slice of items on the requested page
func Paginate[T any](items []T, p PaginationParams) []T {
	start := min(p.Offset(), len(items))
	end := min(start+p.PageSize, len(items))
	return items[start:end]
}

// NewPaginationResponse creates a standardized pagination response
func NewPaginationResponse(data any, params PaginationParams, total int64) gin.H {
	totalPages := (int(total) + params.PageSize - 1) / params.PageSize

	return gin.H{
		"data": data,
		"pagination": gin.H{
			"page":        params.Page,
			"page_size":   params.PageSize,
			"total":       total,
			"total_pages": totalPages,
		},
	}
}

// respondPage paginates items and sends them with pagination metadata
func respondPage[T any](c *gin.Context, pg Paging, items []T) {
	params := pg.Parse(c)
	c.JSON(http.StatusOK, NewPaginationResponse(Paginate(items, params), params, int64(len(items))))
}
