package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/palemoky/dynasty-timeline/internal/errors"
	"github.com/palemoky/dynasty-timeline/internal/model"
	"github.com/palemoky/dynasty-timeline/internal/store"
)

// KingHandler handles ruler-related requests
type KingHandler struct {
	store  *store.Store
	paging Paging
}

// NewKingHandler creates a new king handler
func NewKingHandler(s *store.Store, paging Paging) *KingHandler {
	return &KingHandler{store: s, paging: paging}
}

// ListKings returns a page of rulers.
// Supports ?dynasty_id= and ?one_time=true|false
func (h *KingHandler) ListKings(c *gin.Context) {
	filter := store.KingFilter{DynastyID: c.Query("dynasty_id")}
	if raw := c.Query("one_time"); raw != "" {
		oneTime, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, apierrors.InvalidRequest("one_time must be true or false"))
			return
		}
		filter.OneTime = &oneTime
	}

	respondPage(c, h.paging, h.store.Kings(filter))
}

// GetKing returns a specific ruler by ID
func (h *KingHandler) GetKing(c *gin.Context) {
	id, ok := parseID(c, "id", "king")
	if !ok {
		return
	}

	king, err := h.store.King(id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, king)
}

// ListKingEvents returns the events that mention a ruler
func (h *KingHandler) ListKingEvents(c *gin.Context) {
	id, ok := parseID(c, "id", "king")
	if !ok {
		return
	}

	events, err := h.store.EventsOfKing(id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, events)
}

// ListKingWars returns the wars a ruler took part in
func (h *KingHandler) ListKingWars(c *gin.Context) {
	id, ok := parseID(c, "id", "king")
	if !ok {
		return
	}

	wars, err := h.store.WarsOfKing(id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, wars)
}

// CreateKing adds a ruler
func (h *KingHandler) CreateKing(c *gin.Context) {
	var k model.King
	if !bindBody(c, &k) {
		return
	}

	created, err := h.store.CreateKing(k)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, created)
}

// UpdateKing applies the fields present in the body
func (h *KingHandler) UpdateKing(c *gin.Context) {
	id, ok := parseID(c, "id", "king")
	if !ok {
		return
	}
	patch, ok := readPatch(c)
	if !ok {
		return
	}

	updated, err := h.store.UpdateKing(id, applyPatch[model.King](patch))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, updated)
}

// DeleteKing removes a ruler and strips it from events and wars
func (h *KingHandler) DeleteKing(c *gin.Context) {
	id, ok := parseID(c, "id", "king")
	if !ok {
		return
	}

	if err := h.store.DeleteKing(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
