package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/dynasty-timeline/internal/model"
)

type warningsResponse struct {
	Data            []model.Warning       `json:"data"`
	Total           int                   `json:"total"`
	ValidationLevel model.ValidationLevel `json:"validation_level"`
}

func TestSettings(t *testing.T) {
	router, st := setupSampleRouter(t)
	h := NewSettingsHandler(st)
	router.GET("/settings", h.GetSettings)
	router.PATCH("/settings", h.UpdateSettings)

	w := doRequest(router, http.MethodGet, "/settings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.DefaultUISettings(), decode[envelope[model.UISettings]](t, w).Data)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"select dynasty", `{"selectedDynasty":"` + mughalID + `"}`, http.StatusOK},
		{"switch level", `{"validationLevel":"strict"}`, http.StatusOK},
		{"unknown level", `{"validationLevel":"paranoid"}`, http.StatusUnprocessableEntity},
		{"unknown dynasty", `{"selectedDynasty":"missing"}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPatch, "/settings", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}

	assert.Equal(t, model.UISettings{
		SelectedDynasty:         mughalID,
		ShowIncompleteTimelines: true,
		ValidationLevel:         model.ValidationStrict,
	}, st.Settings())
}

func TestListWarnings(t *testing.T) {
	router, st := setupSampleRouter(t)
	h := NewSettingsHandler(st)
	router.GET("/warnings", h.ListWarnings)

	w := doRequest(router, http.MethodGet, "/warnings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decode[warningsResponse](t, w).Total, "sample data is consistent")

	// The Mughal Empire starts in 1526
	_, err := st.UpdateKing(baburID, func(k *model.King) error {
		k.StartYear = 1500
		return nil
	})
	require.NoError(t, err)

	w = doRequest(router, http.MethodGet, "/warnings?level=warning", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[warningsResponse](t, w)
	require.NotEmpty(t, resp.Data)
	for _, warning := range resp.Data {
		assert.Equal(t, model.LevelWarning, warning.Level)
	}
	assert.Equal(t, model.WarnKingBeforeDynasty, resp.Data[0].Type)

	w = doRequest(router, http.MethodGet, "/warnings?level=error", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[warningsResponse](t, w).Data)
	assert.Equal(t, model.ValidationWarn, resp.ValidationLevel)

	w = doRequest(router, http.MethodGet, "/warnings?level=fatal", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, err = st.UpdateSettings(func(s *model.UISettings) error {
		s.ValidationLevel = model.ValidationOff
		return nil
	})
	require.NoError(t, err)

	w = doRequest(router, http.MethodGet, "/warnings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[warningsResponse](t, w).Data, "validation off hides every warning")
}
