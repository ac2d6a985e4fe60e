package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/palemoky/dynasty-timeline/internal/model"
	"github.com/palemoky/dynasty-timeline/internal/store"
)

// DynastyHandler handles dynasty-related requests
type DynastyHandler struct {
	store  *store.Store
	paging Paging
}

// NewDynastyHandler creates a new dynasty handler
func NewDynastyHandler(s *store.Store, paging Paging) *DynastyHandler {
	return &DynastyHandler{store: s, paging: paging}
}

// ListDynasties returns a page of dynasties ordered by start year
func (h *DynastyHandler) ListDynasties(c *gin.Context) {
	respondPage(c, h.paging, h.store.Dynasties())
}

// GetDynasty returns a specific dynasty by ID
func (h *DynastyHandler) GetDynasty(c *gin.Context) {
	id, ok := parseID(c, "id", "dynasty")
	if !ok {
		return
	}

	dynasty, err := h.store.Dynasty(id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, dynasty)
}

// ListDynastyKings returns the rulers of a dynasty
func (h *DynastyHandler) ListDynastyKings(c *gin.Context) {
	id, ok := parseID(c, "id", "dynasty")
	if !ok {
		return
	}

	kings, err := h.store.KingsOfDynasty(id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, kings)
}

// CreateDynasty adds a dynasty
func (h *DynastyHandler) CreateDynasty(c *gin.Context) {
	var d model.Dynasty
	if !bindBody(c, &d) {
		return
	}

	created, err := h.store.CreateDynasty(d)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, created)
}

// UpdateDynasty applies the fields present in the body
func (h *DynastyHandler) UpdateDynasty(c *gin.Context) {
	id, ok := parseID(c, "id", "dynasty")
	if !ok {
		return
	}
	patch, ok := readPatch(c)
	if !ok {
		return
	}

	updated, err := h.store.UpdateDynasty(id, applyPatch[model.Dynasty](patch))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, updated)
}

// DeleteDynasty removes a dynasty with its rulers, and drops events and wars left without rulers
func (h *DynastyHandler) DeleteDynasty(c *gin.Context) {
	id, ok := parseID(c, "id", "dynasty")
	if !ok {
		return
	}

	if err := h.store.DeleteDynasty(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
