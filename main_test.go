package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	config "Calcform/internal/config"
	repo "Calcform/internal/repo"
	session "Calcform/internal/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Config{
		SessionKey: "test-key",
		SessionTTL: time.Hour,
		RateLimit:  1000,
		RateBurst:  1000,
		StaticDir:  t.TempDir(),
	}
	r := mux.NewRouter()
	HandleList(r, cfg, zap.NewNop(), repo.NewMemoryRepository())
	srv := httptest.NewServer(CORS(r))
	t.Cleanup(srv.Close)
	return srv
}

func TestSessionFlow(t *testing.T) {
	srv := newTestServer(t)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	body := `{"kind":"slab","label":"Wall","quantity":"2","fields":[{"label":"Length (L)","value":"4","unit":"m"},{"label":"Width (W)","value":"3","unit":"m"},{"label":"Height/Thickness (H)","value":"15","unit":"cm"}]}`
	resp, err := client.Post(srv.URL+"/api/session/rows", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/api/session/summary")
	require.NoError(t, err)
	defer resp.Body.Close()
	var sum session.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sum))
	assert.Equal(t, session.Summary{TotalVolume: 3.6, RowCount: 1}, sum)

	// A client without the cookie gets a fresh session.
	resp2, err := http.Get(srv.URL + "/api/session/summary")
	require.NoError(t, err)
	defer resp2.Body.Close()
	var empty session.Summary
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&empty))
	assert.Zero(t, empty.RowCount)

	resp, err = client.Post(srv.URL+"/api/session/report/pdf", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestEndSessionRoute(t *testing.T) {
	srv := newTestServer(t)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	body := `{"kind":"hole","fields":[{"label":"Diameter","value":"0.6","unit":"m"},{"label":"Height","value":"3","unit":"m"}]}`
	resp, err := client.Post(srv.URL+"/api/session/rows", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/session", nil)
	require.NoError(t, err)
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/api/session/summary")
	require.NoError(t, err)
	defer resp.Body.Close()
	var sum session.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sum))
	assert.Zero(t, sum.RowCount)
}

func TestToolsRoutes(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/tools/hole/calc", "application/json", bytes.NewBufferString(`{"diameter_m":0.6,"height_m":3}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/tools/kinds", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
