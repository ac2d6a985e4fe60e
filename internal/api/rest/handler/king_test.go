package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/dynasty-timeline/internal/model"
)

func TestListKings(t *testing.T) {
	router, st := setupSampleRouter(t)
	h := NewKingHandler(st, DefaultPaging)
	router.GET("/kings", h.ListKings)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedTotal  int64
	}{
		{"all kings", "", http.StatusOK, 14},
		{"by dynasty", "?dynasty_id=" + lodiID, http.StatusOK, 3},
		{"one-time only", "?one_time=true", http.StatusOK, 2},
		{"dynastic only", "?one_time=false", http.StatusOK, 12},
		{"bad flag", "?one_time=maybe", http.StatusBadRequest, 0},
		{"page far past the end", "?page=922337203685477581&page_size=20", http.StatusOK, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, "/kings"+tt.query, "")
			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedTotal, decode[pageEnvelope[model.King]](t, w).Pagination.Total)
			}
		})
	}
}

func TestKingRelations(t *testing.T) {
	router, st := setupSampleRouter(t)
	h := NewKingHandler(st, DefaultPaging)
	router.GET("/kings/:id/events", h.ListKingEvents)
	router.GET("/kings/:id/wars", h.ListKingWars)

	w := doRequest(router, http.MethodGet, "/kings/"+baburID+"/wars", "")
	require.Equal(t, http.StatusOK, w.Code)
	wars := decode[envelope[[]model.War]](t, w).Data
	require.Len(t, wars, 2)
	assert.Equal(t, "First Battle of Panipat", wars[0].Name)
	assert.Equal(t, "Battle of Khanwa", wars[1].Name)

	w = doRequest(router, http.MethodGet, "/kings/"+baburID+"/events", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[envelope[[]model.Event]](t, w).Data)

	w = doRequest(router, http.MethodGet, "/kings/missing/wars", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateKing(t *testing.T) {
	router, st := setupSampleRouter(t)
	h := NewKingHandler(st, DefaultPaging)
	router.POST("/kings", h.CreateKing)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"dynastic king", `{"name":"Jahangir","dynastyId":"` + mughalID + `","startYear":1605,"endYear":1627}`, http.StatusCreated},
		{"independent king", `{"name":"Sher Shah Suri","dynastyId":null,"startYear":1540,"endYear":1545}`, http.StatusCreated},
		{"unknown dynasty", `{"name":"Nobody","dynastyId":"missing","startYear":1600}`, http.StatusUnprocessableEntity},
		{"empty name", `{"name":"  ","startYear":1600}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/kings", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestUpdateKingStrictValidation(t *testing.T) {
	router, st := setupSampleRouter(t)
	h := NewKingHandler(st, DefaultPaging)
	router.PATCH("/kings/:id", h.UpdateKing)

	_, err := st.UpdateSettings(func(s *model.UISettings) error {
		s.ValidationLevel = model.ValidationStrict
		return nil
	})
	require.NoError(t, err)

	// Lodi starts in 1451
	w := doRequest(router, http.MethodPatch, "/kings/"+bahlulID, `{"startYear":1400}`)
	require.Equal(t, http.StatusConflict, w.Code)

	body := decode[errorBody](t, w)
	assert.Equal(t, "STRICT_VALIDATION", body.Code)
	assert.Contains(t, string(body.Details), string(model.WarnKingBeforeDynasty))

	king, err := st.King(bahlulID)
	require.NoError(t, err)
	assert.Equal(t, 1451, king.StartYear, "rejected change is not applied")

	w = doRequest(router, http.MethodPatch, "/kings/"+bahlulID, `{"description":"Founder of the Lodi dynasty."}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteKing(t *testing.T) {
	router, st := setupSampleRouter(t)
	h := NewKingHandler(st, DefaultPaging)
	router.DELETE("/kings/:id", h.DeleteKing)

	w := doRequest(router, http.MethodDelete, "/kings/"+ibrahimID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	wars, err := st.WarsOfKing(baburID)
	require.NoError(t, err)
	for _, war := range wars {
		assert.False(t, war.References(ibrahimID))
	}

	w = doRequest(router, http.MethodDelete, "/kings/"+ibrahimID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
