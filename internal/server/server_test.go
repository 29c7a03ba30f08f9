package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/site-growth-analyzer/models"
	"github.com/dtnitsch/site-growth-analyzer/pkg/analyzer"
	"github.com/dtnitsch/site-growth-analyzer/pkg/fetcher"
	"github.com/dtnitsch/site-growth-analyzer/pkg/metrics"
	"github.com/dtnitsch/site-growth-analyzer/pkg/rules"
)

type analyzeCall struct {
	url  string
	goal string
}

type fakeAnalyzer struct {
	mu     sync.Mutex
	calls  []analyzeCall
	report models.Report
}

func (f *fakeAnalyzer) AnalyzeForGoal(_ context.Context, url, goal string) models.Report {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, analyzeCall{url, goal})
	return f.report
}

func setupServer(t *testing.T, a Analyzer, m *metrics.Metrics, cfg *models.Config) http.Handler {
	t.Helper()
	return New(a, m, cfg, slog.New(slog.DiscardHandler)).Handler()
}

func postAnalyze(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandleAnalyze(t *testing.T) {
	fake := &fakeAnalyzer{report: models.Report{OverallScore: 72, Goal: "blog"}}
	h := setupServer(t, fake, nil, nil)

	rr := postAnalyze(t, h, `{"url":" example.com ","goal":"blog"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var rep models.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rep))
	assert.Equal(t, 72, rep.OverallScore)
	assert.Equal(t, "blog", rep.Goal)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, analyzeCall{url: "https://example.com", goal: "blog"}, fake.calls[0])
}

func TestHandleAnalyzeKeepsHTTPScheme(t *testing.T) {
	fake := &fakeAnalyzer{}
	h := setupServer(t, fake, nil, nil)

	rr := postAnalyze(t, h, `{"url":"http://plain.test/page"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, fake.calls, 1)
	assert.Equal(t, "http://plain.test/page", fake.calls[0].url)
	assert.Equal(t, "", fake.calls[0].goal)
}

func TestHandleAnalyzeRejectsMissingURL(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "EmptyURL", body: `{"url":""}`},
		{name: "MissingField", body: `{"goal":"blog"}`},
		{name: "WhitespaceURL", body: `{"url":"   "}`},
		{name: "InvalidJSON", body: `{"url":`},
		{name: "EmptyBody", body: ``},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeAnalyzer{}
			h := setupServer(t, fake, nil, nil)

			rr := postAnalyze(t, h, tc.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, `{"error":"No URL provided"}`, rr.Body.String())
			assert.Empty(t, fake.calls, "analyzer must not run")
		})
	}
}

func TestHandleAnalyzeDegradedReportIsOK(t *testing.T) {
	fake := &fakeAnalyzer{report: models.Report{Error: "failed to fetch", OverallScore: 50}}
	h := setupServer(t, fake, nil, nil)

	rr := postAnalyze(t, h, `{"url":"https://nowhere.invalid"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"error":"failed to fetch"`)
}

func TestOptionsPreflight(t *testing.T) {
	h := setupServer(t, &fakeAnalyzer{}, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	req.Header.Set("Origin", "https://app.test")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
}

func TestCORSAllowedOrigins(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.AllowedOrigins = []string{"https://app.test"}
	h := setupServer(t, &fakeAnalyzer{}, nil, cfg)

	testCases := []struct {
		origin string
		want   string
	}{
		{origin: "https://app.test", want: "https://app.test"},
		{origin: "https://evil.test", want: ""},
		{origin: "", want: ""},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
		if tc.origin != "" {
			req.Header.Set("Origin", tc.origin)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, tc.want, rr.Header().Get("Access-Control-Allow-Origin"), "origin %q", tc.origin)
	}
}

func TestRequestID(t *testing.T) {
	h := setupServer(t, &fakeAnalyzer{}, nil, nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	generated := rr.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 26)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEqual(t, generated, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "caller-id-1")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "caller-id-1", rr.Header().Get(RequestIDHeader))
}

func TestHealth(t *testing.T) {
	h := setupServer(t, &fakeAnalyzer{}, nil, nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New()
	h := setupServer(t, &fakeAnalyzer{}, m, nil)

	postAnalyze(t, h, `{"url":""}`)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `http_requests_total{endpoint="/analyze",method="POST",status="400"} 1`)
}

func TestMetricsServer(t *testing.T) {
	m := metrics.New()
	m.RecordAnalysis("ok", 80)
	srv := NewMetricsServer(":0", m)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `analyses_total{outcome="ok"} 1`)

	rr = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, "OK", rr.Body.String())
}

func TestAnalyzeEndToEnd(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Shop</title><meta name="description" content="x"></head>
<body><h1>Deals</h1><h2>A</h2><h2>B</h2><a href="/cart">Shop now</a></body></html>`))
	}))
	defer site.Close()

	m := metrics.New()
	a := analyzer.New(fetcher.NewFetcher(fetcher.Options{}), rules.Default(), analyzer.WithRecorder(m))
	h := setupServer(t, a, m, nil)

	body, err := json.Marshal(models.AnalyzeRequest{URL: site.URL, Goal: "ecommerce"})
	require.NoError(t, err)
	rr := postAnalyze(t, h, string(body))

	require.Equal(t, http.StatusOK, rr.Code)
	var rep models.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rep))

	assert.Empty(t, rep.Error)
	assert.Equal(t, "ecommerce", rep.Goal)
	assert.Equal(t, rules.Default().Goals["ecommerce"].Suggestions, rep.GrowthSuggestions)
	assert.Len(t, rep.TrustAnalysis.Signals, 8)
	assert.Equal(t, models.TrustFail, rep.TrustAnalysis.Signals[0].Status, "httptest server is plain http")
	assert.Equal(t, "Found 1 CTAs", rep.TrustAnalysis.Signals[4].Detail)
}
