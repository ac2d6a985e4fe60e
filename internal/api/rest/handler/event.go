package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/palemoky/dynasty-timeline/internal/errors"
	"github.com/palemoky/dynasty-timeline/internal/model"
	"github.com/palemoky/dynasty-timeline/internal/store"
)

// EventHandler handles event-related requests
type EventHandler struct {
	store  *store.Store
	paging Paging
}

// NewEventHandler creates a new event handler
func NewEventHandler(s *store.Store, paging Paging) *EventHandler {
	return &EventHandler{store: s, paging: paging}
}

func parseImportance(c *gin.Context) (model.Importance, bool) {
	importance := model.Importance(c.Query("importance"))
	if importance != "" && !importance.IsValid() {
		respondError(c, apierrors.InvalidRequest("importance must be high, medium or low"))
		return "", false
	}
	return importance, true
}

// ListEvents returns a page of events in date order.
// Supports ?king_id= and ?importance=
func (h *EventHandler) ListEvents(c *gin.Context) {
	importance, ok := parseImportance(c)
	if !ok {
		return
	}

	events := h.store.Events(store.EventFilter{KingID: c.Query("king_id"), Importance: importance})
	respondPage(c, h.paging, events)
}

// GetEvent returns a specific event by ID
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := parseID(c, "id", "event")
	if !ok {
		return
	}

	event, err := h.store.Event(id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, event)
}

// CreateEvent adds an event
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var e model.Event
	oneTime, ok := bindWithOneTimeKings(c, &e)
	if !ok {
		return
	}

	created, err := h.store.CreateEvent(e, oneTime...)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, created)
}

// UpdateEvent applies the fields present in the body
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := parseID(c, "id", "event")
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

	updated, err := h.store.UpdateEvent(id, applyPatch[model.Event](patch), oneTime...)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, updated)
}

// DeleteEvent removes an event
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := parseID(c, "id", "event")
	if !ok {
		return
	}

	if err := h.store.DeleteEvent(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
