package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/palemoky/dynasty-timeline/internal/errors"
	"github.com/palemoky/dynasty-timeline/internal/search"
	"github.com/palemoky/dynasty-timeline/internal/store"
	"github.com/palemoky/dynasty-timeline/internal/timeline"
)

// maxTimelineWidth caps ?width= so a layout cannot be requested at absurd sizes
const maxTimelineWidth = 100000

// ViewHandler serves the computed timeline layout and search
type ViewHandler struct {
	store  *store.Store
	engine *search.Engine
	paging Paging
}

// NewViewHandler creates a new view handler
func NewViewHandler(s *store.Store, engine *search.Engine, paging Paging) *ViewHandler {
	return &ViewHandler{store: s, engine: engine, paging: paging}
}

// Timeline returns the layout for the current data and settings.
// Supports ?width= (pixels, default 1000)
func (h *ViewHandler) Timeline(c *gin.Context) {
	width := float64(timeline.DefaultWidth)
	if raw := c.Query("width"); raw != "" {
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil || w <= 0 || w > maxTimelineWidth {
			respondError(c, apierrors.InvalidRequest("width must be a positive number"))
			return
		}
		width = w
	}

	respondOK(c, timeline.Build(h.store.Snapshot(), width))
}

// Search finds dynasties, kings, events and wars by text or year.
// Supports ?q=, ?type=all|dynasty|king|event|war and pagination
func (h *ViewHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondError(c, apierrors.InvalidRequest("query parameter 'q' is required"))
		return
	}

	searchType := search.SearchType(c.DefaultQuery("type", string(search.SearchTypeAll)))
	if !searchType.IsValid() {
		respondError(c, apierrors.InvalidRequest("type must be all, dynasty, king, event or war"))
		return
	}

	params := h.paging.Parse(c)
	result, err := h.engine.Search(search.SearchParams{
		Query:      query,
		SearchType: searchType,
		Page:       params.Page,
		PageSize:   params.PageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaginationResponse(result.Hits, params, int64(result.TotalCount)))
}
