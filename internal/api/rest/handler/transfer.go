package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/palemoky/dynasty-timeline/internal/errors"
	"github.com/palemoky/dynasty-timeline/internal/store"
)

// TransferHandler handles whole-dataset operations
type TransferHandler struct {
	store *store.Store
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(s *store.Store) *TransferHandler {
	return &TransferHandler{store: s}
}

// Export returns the full dataset as a downloadable JSON file
func (h *TransferHandler) Export(c *gin.Context) {
	file := h.store.Export()
	filename := fmt.Sprintf("timeline-export-%s.json", file.ExportDate.Format("2006-01-02"))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, file)
}

// Import replaces the dataset with an export file sent as the request body
func (h *TransferHandler) Import(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondError(c, apierrors.InvalidRequest("failed to read request body"))
		return
	}

	summary, err := h.store.Import(body)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, summary)
}

// Reset replaces the dataset with the built-in sample
func (h *TransferHandler) Reset(c *gin.Context) {
	if err := h.store.ResetToSample(); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, h.store.Stats())
}

// Clear removes all dynasties, kings, events and wars
func (h *TransferHandler) Clear(c *gin.Context) {
	if err := h.store.ClearAll(); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
