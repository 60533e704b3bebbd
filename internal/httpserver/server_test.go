package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/sitehub/internal/domain"
	"github.com/MrSnakeDoc/sitehub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitehub/internal/hub"
	"github.com/MrSnakeDoc/sitehub/internal/logger"
	redisstore "github.com/MrSnakeDoc/sitehub/internal/store/redis"
)

type fakeVisits struct {
	mu      sync.Mutex
	visited []string
	pingErr error
}

func (f *fakeVisits) RecordVisit(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visited = append(f.visited, url)
	return nil
}

func (f *fakeVisits) Ping(context.Context) error { return f.pingErr }

func (f *fakeVisits) GetUsageStats(context.Context) ([]redisstore.VisitStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int64)
	var order []string
	for _, u := range f.visited {
		if counts[u] == 0 {
			order = append(order, u)
		}
		counts[u]++
	}
	stats := make([]redisstore.VisitStat, 0, len(order))
	for _, u := range order {
		stats = append(stats, redisstore.VisitStat{URL: u, Count: counts[u]})
	}
	return stats, nil
}

func (f *fakeVisits) VisitCount(_ context.Context, url string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, u := range f.visited {
		if u == url {
			n++
		}
	}
	return n, nil
}

func (f *fakeVisits) ResetVisits(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visited = nil
	return nil
}

func (f *fakeVisits) Visited() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.visited...)
}

var testEntries = []domain.Entry{
	{Title: "FireTv1", Description: "living room", URL: "http://192.168.1.10:8080", Category: "Media"},
	{Title: "Acme", Description: "tools", URL: "https://www.acme.test", Category: "Dev"},
	{Title: "Docs", Description: "reference", URL: "https://docs.example.org", Category: "Dev"},
}

type testServer struct {
	handler http.Handler
	deps    deps.Deps
	visits  *fakeVisits
}

func newTestServer(t *testing.T, refresh bool) *testServer {
	t.Helper()

	visits := &fakeVisits{}
	log := logger.NewNop()
	h := hub.New(hub.SourceFunc(func(context.Context) ([]domain.Entry, error) {
		return append([]domain.Entry(nil), testEntries...), nil
	}), log, hub.WithRecorder(visits))
	if refresh {
		require.NoError(t, h.Refresh(context.Background()))
	}

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := deps.Deps{
		Logger:            log,
		StartTime:         start,
		Version:           "test",
		TimeNow:           func() time.Time { return start.Add(90 * time.Second) },
		CatalogFile:       "websites.yaml",
		PageTitle:         "Test Hub",
		Hub:               h,
		Visits:            visits,
		ReloadTrigger:     make(chan struct{}, 1),
		MutationBurst:     100,
		MutationPerMinute: 100,
	}

	return &testServer{
		handler: NewRouter(log, d),
		deps:    d,
		visits:  visits,
	}
}

func (s *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestPageRendersFilteredDocument(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(http.MethodGet, "/?q=acme", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)

	assert.Equal(t, "Test Hub", doc.Find("title").Text())
	cards := doc.Find("#websiteGrid article.website-card")
	require.Equal(t, 1, cards.Length())
	assert.Equal(t, "Acme", cards.Find(".card-title").Text())

	value, _ := doc.Find("#search").Attr("value")
	assert.Equal(t, "acme", value)

	_, hidden := doc.Find("#emptyState").Attr("hidden")
	assert.True(t, hidden)

	assert.Equal(t, 0, s.deps.Hub.SessionCount(), "page session must be closed after rendering")
}

func TestPageShowsEmptyState(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(http.MethodGet, "/?q=nothing-matches-this", "")
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)

	assert.Equal(t, 0, doc.Find("article.website-card").Length())
	_, gridHidden := doc.Find("#websiteGrid").Attr("hidden")
	assert.True(t, gridHidden)
	_, emptyHidden := doc.Find("#emptyState").Attr("hidden")
	assert.False(t, emptyHidden)
}

func TestPageSelectsCategory(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(http.MethodGet, "/?category=Dev", "")
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)

	assert.Equal(t, 2, doc.Find("article.website-card").Length())
	assert.Equal(t, "Dev", doc.Find("#categoryFilter option[selected]").Text())
}

func TestListEntries(t *testing.T) {
	s := newTestServer(t, true)

	tests := []struct {
		name   string
		target string
		titles []string
	}{
		{name: "no query", target: "/api/entries", titles: []string{"FireTv1", "Acme", "Docs"}},
		{name: "search", target: "/api/entries?q=DOCS", titles: []string{"Docs"}},
		{name: "search url", target: "/api/entries?q=192.168", titles: []string{"FireTv1"}},
		{name: "category", target: "/api/entries?category=Dev", titles: []string{"Acme", "Docs"}},
		{name: "both", target: "/api/entries?q=tools&category=Media", titles: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, w.Code)

			var resp struct {
				Count   int            `json:"count"`
				Entries []domain.Entry `json:"entries"`
			}
			decodeBody(t, w, &resp)

			titles := make([]string, 0, len(resp.Entries))
			for _, e := range resp.Entries {
				titles = append(titles, e.Title)
			}
			assert.Equal(t, tt.titles, titles)
			assert.Equal(t, len(tt.titles), resp.Count)
		})
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(http.MethodGet, "/api/categories?category=Dev", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Categories []string        `json:"categories"`
		Options    []domain.Option `json:"options"`
	}
	decodeBody(t, w, &resp)

	assert.Equal(t, []string{"Media", "Dev"}, resp.Categories)
	require.Len(t, resp.Options, 3)
	assert.Equal(t, domain.AllCategoriesLabel, resp.Options[0].Label)
	assert.False(t, resp.Options[0].Selected)
	assert.True(t, resp.Options[2].Selected)
}

func TestEntryLifecycle(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(http.MethodPost, "/api/entries", `{"title":"Wiki","description":"notes","url":"https://wiki.example.org","category":"Docs"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, s.deps.Hub.Entries(), 4)

	w = s.do(http.MethodPatch, "/api/entries?url=https://wiki.example.org", `{"title":"Team Wiki"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated domain.Entry
	decodeBody(t, w, &updated)
	assert.Equal(t, "Team Wiki", updated.Title)
	assert.Equal(t, "notes", updated.Description)

	w = s.do(http.MethodDelete, "/api/entries?url=https://wiki.example.org", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, s.deps.Hub.Entries(), 3)

	w = s.do(http.MethodDelete, "/api/entries?url=https://wiki.example.org", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestEntryMutationErrors(t *testing.T) {
	s := newTestServer(t, true)

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		expected int
	}{
		{name: "create missing title", method: http.MethodPost, target: "/api/entries", body: `{"url":"https://x.test"}`, expected: http.StatusBadRequest},
		{name: "create blank url", method: http.MethodPost, target: "/api/entries", body: `{"title":"x","url":"  "}`, expected: http.StatusBadRequest},
		{name: "create unknown field", method: http.MethodPost, target: "/api/entries", body: `{"title":"x","url":"https://x.test","nope":1}`, expected: http.StatusBadRequest},
		{name: "update missing url", method: http.MethodPatch, target: "/api/entries", body: `{"title":"x"}`, expected: http.StatusBadRequest},
		{name: "update empty patch", method: http.MethodPatch, target: "/api/entries?url=https://www.acme.test", body: `{}`, expected: http.StatusBadRequest},
		{name: "update blank title", method: http.MethodPatch, target: "/api/entries?url=https://www.acme.test", body: `{"title":"  "}`, expected: http.StatusBadRequest},
		{name: "update unknown url", method: http.MethodPatch, target: "/api/entries?url=https://missing.test", body: `{"title":"x"}`, expected: http.StatusNotFound},
		{name: "delete missing url", method: http.MethodDelete, target: "/api/entries", expected: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(tt.method, tt.target, tt.body)
			assert.Equal(t, tt.expected, w.Code, w.Body.String())
		})
	}

	assert.Len(t, s.deps.Hub.Entries(), len(testEntries))
}

func TestRecordVisit(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(http.MethodPost, "/api/visits", `{"url":"https://www.acme.test"}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodPost, "/api/visits", `{"url":"https://unknown.test"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/visits", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, []string{"https://www.acme.test"}, s.visits.Visited())

	w = s.do(http.MethodGet, "/api/visits", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats []redisstore.VisitStat
	decodeBody(t, w, &stats)
	require.Len(t, stats, 1)
	assert.Equal(t, int64(1), stats[0].Count)

	w = s.do(http.MethodGet, "/api/visits?url=https://www.acme.test", "")
	require.Equal(t, http.StatusOK, w.Code)
	var count struct {
		URL   string `json:"url"`
		Count int64  `json:"count"`
	}
	decodeBody(t, w, &count)
	assert.Equal(t, int64(1), count.Count)

	w = s.do(http.MethodDelete, "/api/visits", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, s.visits.Visited())
}

func TestVisitsDisabled(t *testing.T) {
	s := newTestServer(t, true)
	s.deps.Visits = nil
	handler := NewRouter(logger.NewNop(), s.deps)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/visits", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/visits", strings.NewReader(`{"url":"https://www.acme.test"}`))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-visits-endpoint=""`)
}

func TestReloadTrigger(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(http.MethodPost, "/reload", "")
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = s.do(http.MethodPost, "/reload", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	<-s.deps.ReloadTrigger
	w = s.do(http.MethodPost, "/reload", "")
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestReadyz(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	require.NoError(t, s.deps.Hub.Refresh(context.Background()))

	w = s.do(http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Ready   bool `json:"ready"`
		Entries int  `json:"entries"`
	}
	decodeBody(t, w, &resp)
	assert.True(t, resp.Ready)
	assert.Equal(t, 3, resp.Entries)
}

func TestReadyzAfterFailedRefresh(t *testing.T) {
	log := logger.NewNop()
	h := hub.New(hub.SourceFunc(func(context.Context) ([]domain.Entry, error) {
		return nil, errors.New("file missing")
	}), log)
	require.Error(t, h.Refresh(context.Background()))

	handler := NewRouter(log, deps.Deps{Logger: log, Hub: h})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status        string  `json:"status"`
		UptimeSeconds float64 `json:"uptime_seconds"`
		Version       string  `json:"version"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 90.0, resp.UptimeSeconds)
	assert.Equal(t, "test", resp.Version)
}

func TestInfra(t *testing.T) {
	tests := []struct {
		name     string
		refresh  bool
		pingErr  error
		disable  bool
		expected string
	}{
		{name: "all good", refresh: true, expected: "ok"},
		{name: "empty catalog", refresh: false, expected: "empty"},
		{name: "visit store down", refresh: true, pingErr: errors.New("connection refused"), expected: "degraded"},
		{name: "visit tracking disabled", refresh: true, disable: true, expected: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.refresh)
			s.visits.pingErr = tt.pingErr
			d := s.deps
			if tt.disable {
				d.Visits = nil
			}
			handler := NewRouter(logger.NewNop(), d)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/infra", nil))
			require.Equal(t, http.StatusOK, w.Code)

			var resp struct {
				Mode string `json:"mode"`
			}
			decodeBody(t, w, &resp)
			assert.Equal(t, tt.expected, resp.Mode)
		})
	}
}

func TestAdminRoutesGuarded(t *testing.T) {
	s := newTestServer(t, true)
	d := s.deps
	d.AllowedCIDRS = []string{"10.0.0.0/8"}
	handler := NewRouter(logger.NewNop(), d)

	r := httptest.NewRequest(http.MethodPost, "/api/entries", strings.NewReader(`{"title":"x","url":"https://x.test"}`))
	r.RemoteAddr = "203.0.113.7:5555"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	r.RemoteAddr = "203.0.113.7:5555"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code, "listing stays public")
}
