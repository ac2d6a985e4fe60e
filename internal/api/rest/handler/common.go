package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/palemoky/dynasty-timeline/internal/errors"
	"github.com/palemoky/dynasty-timeline/internal/logger"
	"github.com/palemoky/dynasty-timeline/internal/model"
)

// parseID extracts a non-empty entity id from a URL parameter.
// Returns the ID and true if successful, or sends an error response and returns false.
func parseID(c *gin.Context, param, entityName string) (string, bool) {
	id := strings.TrimSpace(c.Param(param))
	if id == "" {
		respondError(c, apierrors.InvalidID(entityName+" ID"))
		return "", false
	}
	return id, true
}

// respondError maps err onto an API error and sends it.
// Errors that map to INTERNAL_ERROR are logged with their cause.
func respondError(c *gin.Context, err error) {
	apiErr := apierrors.FromError(err)
	if apiErr.Code == apierrors.CodeInternal {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.AbortWithStatusJSON(apiErr.HTTPStatus, apiErr)
}

// respondOK sends a JSON success response with the given data.
func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// respondCreated sends a 201 response with the created entity.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// bindBody decodes a JSON request body into dst.
func bindBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, apierrors.InvalidRequest("invalid JSON body: "+err.Error()))
		return false
	}
	return true
}

// readPatch reads a JSON object body for a partial update.
// Fields present in the body overwrite the current value; absent fields are kept.
func readPatch(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		respondError(c, apierrors.InvalidRequest("failed to read request body"))
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		respondError(c, apierrors.InvalidRequest("request body must be a JSON object"))
		return nil, false
	}
	return body, true
}

// applyPatch returns an update function that decodes the patch onto the current value
func applyPatch[T any](patch []byte) func(*T) error {
	return func(cur *T) error {
		if err := json.Unmarshal(patch, cur); err != nil {
			return apierrors.InvalidRequest("invalid field value: " + err.Error())
		}
		return nil
	}
}

// oneTimeKingsField is the request-only list of rulers created together with
// an event or war. Their ids are placeholders the same body may reference.
type oneTimeKingsField struct {
	OneTimeKings []model.King `json:"oneTimeKings"`
}

// bindWithOneTimeKings decodes the body into dst and returns its oneTimeKings
func bindWithOneTimeKings(c *gin.Context, dst any) ([]model.King, bool) {
	var extra oneTimeKingsField
	if err := c.ShouldBindBodyWithJSON(dst); err != nil {
		respondError(c, apierrors.InvalidRequest("invalid JSON body: "+err.Error()))
		return nil, false
	}
	if err := c.ShouldBindBodyWithJSON(&extra); err != nil {
		respondError(c, apierrors.InvalidRequest("invalid oneTimeKings: "+err.Error()))
		return nil, false
	}
	return extra.OneTimeKings, true
}

// patchOneTimeKings returns the oneTimeKings carried by a partial update
func patchOneTimeKings(c *gin.Context, patch []byte) ([]model.King, bool) {
	var extra oneTimeKingsField
	if err := json.Unmarshal(patch, &extra); err != nil {
		respondError(c, apierrors.InvalidRequest("invalid oneTimeKings: "+err.Error()))
		return nil, false
	}
	return extra.OneTimeKings, true
}
