package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/dynasty-timeline/internal/model"
)

func TestListDynasties(t *testing.T) {
	router, st := setupSampleRouter(t)
	h := NewDynastyHandler(st, DefaultPaging)
	router.GET("/dynasties", h.ListDynasties)

	w := doRequest(router, http.MethodGet, "/dynasties?page=2&page_size=4", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[pageEnvelope[model.Dynasty]](t, w)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Lodi Dynasty", resp.Data[0].Name)
	assert.Equal(t, "Mughal Empire", resp.Data[1].Name)
	assert.Equal(t, int64(6), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
}

func TestGetDynasty(t *testing.T) {
	router, st := setupSampleRouter(t)
	h := NewDynastyHandler(st, DefaultPaging)
	router.GET("/dynasties/:id", h.GetDynasty)

	tests := []struct {
		name           string
		id             string
		expectedStatus int
		expectedCode   string
	}{
		{"existing dynasty", mughalID, http.StatusOK, ""},
		{"unknown dynasty", "missing", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, "/dynasties/"+tt.id, "")
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decode[errorBody](t, w).Code)
				return
			}
			assert.Equal(t, "Mughal Empire", decode[envelope[model.Dynasty]](t, w).Data.Name)
		})
	}
}

func TestCreateDynasty(t *testing.T) {
	router, st := setupSampleRouter(t)
	h := NewDynastyHandler(st, DefaultPaging)
	router.POST("/dynasties", h.CreateDynasty)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "valid dynasty",
			body:           `{"name":"Sur Empire","startYear":1540,"endYear":1556,"color":"#7f8c8d"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "open-ended dynasty",
			body:           `{"name":"Maratha Empire","startYear":1674,"endYear":null}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           `{"startYear":1540}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:           "end before start",
			body:           `{"name":"Backwards","startYear":1600,"endYear":1500}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:           "malformed body",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/dynasties", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decode[errorBody](t, w).Code)
			}
		})
	}

	assert.Len(t, st.Dynasties(), 8)
}

func TestCreateDynastyAssignsID(t *testing.T) {
	router, st := setupSampleRouter(t)
	h := NewDynastyHandler(st, DefaultPaging)
	router.POST("/dynasties", h.CreateDynasty)

	w := doRequest(router, http.MethodPost, "/dynasties", `{"id":"chosen","name":"Sur Empire","startYear":1540,"endYear":1556}`)
	require.Equal(t, http.StatusCreated, w.Code)

	created := decode[envelope[model.Dynasty]](t, w).Data
	assert.Equal(t, nextID, created.ID)
	_, err := st.Dynasty(nextID)
	assert.NoError(t, err)
}

func TestUpdateDynasty(t *testing.T) {
	router, st := setupSampleRouter(t)
	h := NewDynastyHandler(st, DefaultPaging)
	router.PATCH("/dynasties/:id", h.UpdateDynasty)

	w := doRequest(router, http.MethodPatch, "/dynasties/"+mughalID, `{"name":"Great Mughals","endYear":null}`)
	require.Equal(t, http.StatusOK, w.Code)

	updated := decode[envelope[model.Dynasty]](t, w).Data
	assert.Equal(t, "Great Mughals", updated.Name)
	assert.Nil(t, updated.EndYear)
	assert.Equal(t, 1526, updated.StartYear, "absent fields are kept")

	t.Run("non-object body", func(t *testing.T) {
		w := doRequest(router, http.MethodPatch, "/dynasties/"+mughalID, `[1]`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong field type", func(t *testing.T) {
		w := doRequest(router, http.MethodPatch, "/dynasties/"+mughalID, `{"startYear":"soon"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_REQUEST", decode[errorBody](t, w).Code)
	})

	t.Run("unknown dynasty", func(t *testing.T) {
		w := doRequest(router, http.MethodPatch, "/dynasties/missing", `{"name":"x"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteDynasty(t *testing.T) {
	router, st := setupSampleRouter(t)
	h := NewDynastyHandler(st, DefaultPaging)
	router.DELETE("/dynasties/:id", h.DeleteDynasty)
	router.GET("/dynasties/:id/kings", h.ListDynastyKings)

	w := doRequest(router, http.MethodGet, "/dynasties/"+lodiID+"/kings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[envelope[[]model.King]](t, w).Data, 3)

	w = doRequest(router, http.MethodDelete, "/dynasties/"+lodiID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	_, err := st.King(ibrahimID)
	assert.Error(t, err, "rulers of a deleted dynasty are removed")

	w = doRequest(router, http.MethodGet, "/dynasties/"+lodiID+"/kings", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodDelete, "/dynasties/"+lodiID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
