package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/evdnx/gator/catalog"
	"github.com/evdnx/gator/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (http.Handler, *testutils.MockLogger) {
	t.Helper()
	c, err := catalog.Builtin().Build()
	require.NoError(t, err)
	log := testutils.NewMockLogger()
	return NewRouter(c, log), log
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestHealthz(t *testing.T) {
	h, log := newTestRouter(t)
	w, body := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 6, body["records"])
	assert.Equal(t, "http_request", log.LastMessage())
}

func TestGetParams(t *testing.T) {
	h, _ := newTestRouter(t)

	w, body := get(t, h, "/v1/params/EURUSD/m5")
	require.Equal(t, http.StatusOK, w.Code)
	ind := body["indicator"].(map[string]interface{})
	assert.EqualValues(t, 9, ind["jaw_period"])
	assert.Equal(t, "M5", ind["timeframe"])
	assert.Nil(t, body["legacy"])

	w, body = get(t, h, "/v1/params/EURUSD/H1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, body["legacy"])
}

func TestGetParamsAmbiguous(t *testing.T) {
	h, _ := newTestRouter(t)

	w, body := get(t, h, "/v1/params/EURUSD/M15")
	assert.Equal(t, http.StatusConflict, w.Code)
	col := body["collision"].(map[string]interface{})
	assert.Len(t, col["diffs"], 6)

	w, body = get(t, h, "/v1/params/EURUSD/M15?schema=sets")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, body["legacy"])
}

func TestGetParamsErrors(t *testing.T) {
	h, _ := newTestRouter(t)
	cases := map[string]int{
		"/v1/params/USDJPY/M5":               http.StatusNotFound,
		"/v1/params/EURUSD/M7":               http.StatusBadRequest,
		"/v1/params/EURUSD/M5?schema=ini":    http.StatusBadRequest,
		"/v1/params/EURUSD/H1?schema=config": http.StatusNotFound,
		"/v1/params?schema=ini":              http.StatusBadRequest,
	}
	for path, code := range cases {
		w, _ := get(t, h, path)
		assert.Equal(t, code, w.Code, path)
	}
}

func TestListParams(t *testing.T) {
	h, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/params?schema=sets", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var entries []catalog.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "EURUSD:M15:sets", entries[0].Key.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/params?symbol=GBPUSD", nil))
	assert.Equal(t, "[]", w.Body.String())
}

func TestCollisions(t *testing.T) {
	h, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/collisions", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var cols []catalog.Collision
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cols))
	require.Len(t, cols, 1)
	assert.Equal(t, "EURUSD", cols[0].Symbol)
}

func TestMetrics(t *testing.T) {
	h, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gator_catalog_records")
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler(), testutils.NewMockLogger()) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}
}
