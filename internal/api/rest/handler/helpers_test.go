package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/dynasty-timeline/internal/store"
	"github.com/palemoky/dynasty-timeline/internal/testutil"
)

// Sample ids assigned by testutil.NewSampleStore
const (
	lodiID    = "id-5"
	mughalID  = "id-6"
	bahlulID  = "id-13"
	ibrahimID = "id-15"
	baburID   = "id-16"
	sangaID   = "id-19"
	khanwaID  = "id-28"
	nextID    = "id-31"
)

type envelope[T any] struct {
	Data T `json:"data"`
}

type pageEnvelope[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		Page       int   `json:"page"`
		PageSize   int   `json:"page_size"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	} `json:"pagination"`
}

type errorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

func setupSampleRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	return testutil.SetupTestGin(), testutil.NewSampleStore(t)
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
