package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/fantasy-season-service/internal/adapter/http"
	"github.com/couchcryptid/fantasy-season-service/internal/observability"
	"github.com/couchcryptid/fantasy-season-service/internal/publisher"
	"github.com/couchcryptid/fantasy-season-service/internal/season"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

var fixedNow = time.Date(2025, time.January, 20, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(readyErr error) (*httpadapter.Server, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	classifier := season.NewClassifier(clockwork.NewFakeClockAt(fixedNow), season.DefaultCalendar())
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, classifier, metrics, discardLogger()), metrics
}

func get(t *testing.T, srv http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := get(t, srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := get(t, srv, "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv, _ := newTestServer(fmt.Errorf("not ready yet"))
	rec := get(t, srv, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "not ready yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := get(t, srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestSeasonUsesClock(t *testing.T) {
	srv, metrics := newTestServer(nil)
	rec := get(t, srv, "/v1/season")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var snap season.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 2024, snap.Year)
	assert.Equal(t, season.StatusPlayoffs, snap.Status)
	assert.True(t, snap.ShowStandings)
	assert.Equal(t, "The 2024 playoffs are in progress.", snap.Message)
	assert.True(t, snap.EvaluatedAt.Equal(fixedNow))
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Evaluations), 0)
}

func TestSeasonAt(t *testing.T) {
	tests := []struct {
		at        string
		year      int
		status    season.Status
		started   bool
		ended     bool
		nextStart string
	}{
		{"2024-08-15", 2023, season.StatusOffseason, true, true, "2024-09-01T00:00:00Z"},
		{"2024-09-15", 2024, season.StatusRegular, true, false, "2025-09-01T00:00:00Z"},
		{"2025-01-20", 2024, season.StatusPlayoffs, true, false, "2025-09-01T00:00:00Z"},
		{"2025-03-01T10:00:00Z", 2024, season.StatusOffseason, true, true, "2025-09-01T00:00:00Z"},
	}

	srv, _ := newTestServer(nil)
	for _, tt := range tests {
		t.Run(tt.at, func(t *testing.T) {
			rec := get(t, srv, "/v1/season?at="+tt.at)
			require.Equal(t, http.StatusOK, rec.Code)

			var snap season.Snapshot
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
			assert.Equal(t, tt.year, snap.Year)
			assert.Equal(t, tt.status, snap.Status)
			assert.Equal(t, tt.started, snap.HasStarted)
			assert.Equal(t, tt.ended, snap.HasEnded)
			assert.Equal(t, tt.nextStart, snap.NextSeasonStart.Format(time.RFC3339))
		})
	}
}

func TestSeasonInvalidAt(t *testing.T) {
	srv, metrics := newTestServer(nil)
	rec := get(t, srv, "/v1/season?at=someday")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "someday")
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.Evaluations), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.HTTPRequestDuration))
}

func TestSeasonInvalidAtNamesComponent(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := get(t, srv, "/v1/season?at=2024-13-45")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "month out of range")
}

func TestStandings(t *testing.T) {
	srv, _ := newTestServer(nil)

	tests := []struct {
		at   string
		want bool
	}{
		{"2024-08-15", false},
		{"2024-09-15", true},
		{"2025-01-20", true},
		{"2025-03-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.at, func(t *testing.T) {
			rec := get(t, srv, "/v1/season/standings?at="+tt.at)
			require.Equal(t, http.StatusOK, rec.Code)

			var body struct {
				Year          int    `json:"year"`
				Status        string `json:"status"`
				ShowStandings bool   `json:"show_standings"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body.ShowStandings)
		})
	}
}

func TestSeasonRejectsPost(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/season", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestReadyzTracksPublisher(t *testing.T) {
	clock := clockwork.NewFakeClockAt(fixedNow)
	classifier := season.NewClassifier(clock, season.DefaultCalendar())
	metrics := observability.NewMetricsForTesting()
	pub := publisher.New(classifier, publisher.Discard{}, clock, time.Minute, discardLogger(), metrics)

	var ready sharedobs.ReadinessChecker = pub
	srv := httpadapter.NewServer(":0", ready, classifier, metrics, discardLogger())

	rec := get(t, srv, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	require.NoError(t, pub.Tick(context.Background()))

	rec = get(t, srv, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}
