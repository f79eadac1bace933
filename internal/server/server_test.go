package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirf-research/cirf-cli/internal/config"
	"github.com/cirf-research/cirf-cli/internal/model"
	"github.com/cirf-research/cirf-cli/internal/store"
)

func newTestServer(t *testing.T) (*Server, store.Store) {
	t.Helper()
	st, err := store.Open(config.StoreConfig{
		Driver:      "sqlite",
		DatabaseURL: filepath.Join(t.TempDir(), "server_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return New(st, 0), st
}

func seedCase(t *testing.T, st store.Store, title, country string) {
	t.Helper()
	scores := model.NewCaseScore(map[model.Component]model.ComponentScore{
		model.ComponentEconomicValue: {Score: model.ScoreViolated, Confidence: 0.8},
	})
	_, err := st.UpsertCase(context.Background(), &model.FailureCase{
		Title:           title,
		URL:             "https://example.org/" + title,
		LocationCountry: country,
		Sector:          "tourism",
		EvidenceQuality: model.EvidenceMedium,
		Scores:          &scores,
	})
	require.NoError(t, err)
}

func getJSON(t *testing.T, handler http.Handler, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	var body map[string]string
	rec := getJSON(t, srv.Router(), "/health", &body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestServer_Stats(t *testing.T) {
	srv, st := newTestServer(t)
	seedCase(t, st, "a", "Canada")
	seedCase(t, st, "b", "Australia")

	var body store.Stats
	rec := getJSON(t, srv.Router(), "/api/stats", &body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, body.TotalCases)
	assert.Equal(t, 1, body.ByCountry["Canada"])
}

func TestServer_Cases_Filtered(t *testing.T) {
	srv, st := newTestServer(t)
	seedCase(t, st, "a", "Canada")
	seedCase(t, st, "b", "Australia")

	var body struct {
		Count int                 `json:"count"`
		Cases []model.FailureCase `json:"cases"`
	}
	rec := getJSON(t, srv.Router(), "/api/cases?country=Canada", &body)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "a", body.Cases[0].Title)
}

func TestServer_Analysis(t *testing.T) {
	srv, st := newTestServer(t)
	seedCase(t, st, "a", "Canada")

	var body map[string]any
	rec := getJSON(t, srv.Router(), "/api/analysis", &body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["total_cases"])
	assert.Contains(t, body, "component_analysis")
}

func TestServer_Searches(t *testing.T) {
	srv, st := newTestServer(t)
	require.NoError(t, st.LogSearch(context.Background(), &model.SearchLogEntry{
		RunID:      "run-1",
		SearchTerm: "q",
		Source:     "semantic_scholar",
		Status:     model.SearchStatusSuccess,
	}))

	var body struct {
		Count    int                    `json:"count"`
		Searches []model.SearchLogEntry `json:"searches"`
	}
	rec := getJSON(t, srv.Router(), "/api/searches", &body)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "run-1", body.Searches[0].RunID)
}
