package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/palemoky/dynasty-timeline/internal/errors"
	"github.com/palemoky/dynasty-timeline/internal/model"
	"github.com/palemoky/dynasty-timeline/internal/store"
)

// SettingsHandler serves the viewer settings and the warning list
type SettingsHandler struct {
	store *store.Store
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

// GetSettings returns the current UI settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	respondOK(c, h.store.Settings())
}

// UpdateSettings applies the fields present in the body
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	patch, ok := readPatch(c)
	if !ok {
		return
	}

	updated, err := h.store.UpdateSettings(applyPatch[model.UISettings](patch))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, updated)
}

// ListWarnings returns the chronological warnings for the current data.
// Supports ?level=error|warning|info. The list is empty when validation is off.
func (h *SettingsHandler) ListWarnings(c *gin.Context) {
	level := model.WarningLevel(c.Query("level"))
	switch level {
	case "", model.LevelError, model.LevelWarning, model.LevelInfo:
	default:
		respondError(c, apierrors.InvalidRequest("level must be error, warning or info"))
		return
	}

	warnings := h.store.Warnings(level)
	c.JSON(http.StatusOK, gin.H{
		"data":             warnings,
		"total":            len(warnings),
		"validation_level": h.store.Settings().ValidationLevel,
	})
}
