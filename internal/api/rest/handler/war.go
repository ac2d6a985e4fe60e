package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/palemoky/dynasty-timeline/internal/model"
	"github.com/palemoky/dynasty-timeline/internal/store"
)

// WarHandler handles war-related requests
type WarHandler struct {
	store  *store.Store
	paging Paging
}

// NewWarHandler creates a new war handler
func NewWarHandler(s *store.Store, paging Paging) *WarHandler {
	return &WarHandler{store: s, paging: paging}
}

// ListWars returns a page of wars by start year.
// Supports ?king_id= and ?importance=
func (h *WarHandler) ListWars(c *gin.Context) {
	importance, ok := parseImportance(c)
	if !ok {
		return
	}

	wars := h.store.Wars(store.WarFilter{KingID: c.Query("king_id"), Importance: importance})
	respondPage(c, h.paging, wars)
}

// GetWar returns a specific war by ID
func (h *WarHandler) GetWar(c *gin.Context) {
	id, ok := parseID(c, "id", "war")
	if !ok {
		return
	}

	war, err := h.store.War(id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, war)
}

// CreateWar adds a war
func (h *WarHandler) CreateWar(c *gin.Context) {
	var w model.War
	oneTime, ok := bindWithOneTimeKings(c, &w)
	if !ok {
		return
	}

	created, err := h.store.CreateWar(w, oneTime...)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, created)
}

// UpdateWar applies the fields present in the body.
// A participants field replaces the whole list.
func (h *WarHandler) UpdateWar(c *gin.Context) {
	id, ok := parseID(c, "id", "war")
	if !ok {
		return
	}
	patch, ok := readPatch(c)
	if !ok {
		return
	}
	oneTime, ok := patchOneTimeKings(c, patch)
	if !ok {
		return
	}

	updated, err := h.store.UpdateWar(id, applyPatch[model.War](patch), oneTime...)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, updated)
}

// DeleteWar removes a war
func (h *WarHandler) DeleteWar(c *gin.Context) {
	id, ok := parseID(c, "id", "war")
	if !ok {
		return
	}

	if err := h.store.DeleteWar(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
