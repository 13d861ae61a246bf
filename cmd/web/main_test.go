package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"mathfacts.org/naep-web/internal/assets"
	"mathfacts.org/naep-web/internal/config"
	"mathfacts.org/naep-web/internal/dataset"
	"mathfacts.org/naep-web/internal/handlers"
	"mathfacts.org/naep-web/internal/render"
)

const fixtureDoc = `{
	"national": {"US": {"text": "7 out of 10"}},
	"states": {"SC": {"text": "8 out of 10"}, "MA": {"text": "5 out of 12"}}
}`

// newFixtureOrigin serves the dataset and illustration assets the way the
// static origin would.
func newFixtureOrigin(t *testing.T, datasetStatus int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/naep.json":
			if datasetStatus != http.StatusOK {
				http.Error(w, "unavailable", datasetStatus)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(fixtureDoc))
		case strings.HasPrefix(r.URL.Path, "/images/"):
			// only the curated illustrations exist on the origin
			switch r.URL.Path {
			case "/images/three.webp", "/images/seven.webp", "/images/eight.webp", "/images/nine.webp":
				w.WriteHeader(http.StatusOK)
			default:
				http.NotFound(w, r)
			}
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newTestRouter builds a router the way main() does, against a fixture origin.
func newTestRouter(t *testing.T, datasetStatus int) http.Handler {
	t.Helper()
	origin := newFixtureOrigin(t, datasetStatus)

	cfg := &config.Config{AssetBaseURL: origin.URL, RequestTimeout: 5 * time.Second}
	cfg.SetDefaults()

	logger := zap.NewNop()
	loader, err := dataset.NewLoader(cfg.DatasetURL(), logger)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	renderer, err := render.New(logger)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	pages := &handlers.Pages{
		Loader:        loader,
		Prober:        assets.NewProber(cfg.AssetBaseURL, logger),
		Renderer:      renderer,
		CountryHeader: cfg.CountryHeader,
		RegionHeader:  cfg.RegionHeader,
	}
	return buildRouter(cfg, logger, pages)
}

func TestNonGETMethodNotAllowed(t *testing.T) {
	srv := newTestRouter(t, http.StatusOK)
	for _, path := range []string{"/", "/investor", "/nope"} {
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodHead} {
			req := httptest.NewRequest(method, path, nil)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)
			if rec.Code != http.StatusMethodNotAllowed {
				t.Fatalf("%s %s: expected 405, got %d", method, path, rec.Code)
			}
			if method != http.MethodHead && rec.Body.String() != "Method Not Allowed" {
				t.Fatalf("%s %s: unexpected body %q", method, path, rec.Body.String())
			}
		}
	}
}

func TestUnknownPathNotFound(t *testing.T) {
	srv := newTestRouter(t, http.StatusOK)
	req := httptest.NewRequest(http.MethodGet, "/no-such-page", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Not Found") {
		t.Fatalf("expected Not Found in body: %s", rec.Body.String())
	}
}

func TestInvestorPage(t *testing.T) {
	srv := newTestRouter(t, http.StatusOK)
	req := httptest.NewRequest(http.MethodGet, "/investor", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Investor Overview") {
		t.Fatalf("expected investor heading in body")
	}
	if got := rec.Header().Get("X-Robots-Tag"); got != "noindex" {
		t.Fatalf("expected X-Robots-Tag noindex, got %q", got)
	}
}

func TestHomePersonalizedForState(t *testing.T) {
	srv := newTestRouter(t, http.StatusOK)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("CF-IPCountry", "US")
	req.Header.Set("CF-Region-Code", "SC")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "8 out of 10 South Carolina 8th graders are below proficient in math.") {
		t.Fatalf("expected personalized sentence, got %s", body)
	}
	if !strings.Contains(body, "/images/eight.webp") {
		t.Fatalf("expected matching illustration, got %s", body)
	}
}

func TestHomeNationalFallback(t *testing.T) {
	srv := newTestRouter(t, http.StatusOK)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "7 out of 10 U.S. 8th graders are below proficient in math.") {
		t.Fatalf("expected national sentence, got %s", body)
	}
	if !strings.Contains(body, "/images/seven.webp") {
		t.Fatalf("expected national illustration, got %s", body)
	}
}

func TestHomeQueryOverride(t *testing.T) {
	srv := newTestRouter(t, http.StatusOK)
	req := httptest.NewRequest(http.MethodGet, "/?country=US&state=SC", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), "South Carolina") {
		t.Fatalf("expected query override to select state record")
	}
}

func TestHomeRatioOutsideAllowListOmitsImage(t *testing.T) {
	srv := newTestRouter(t, http.StatusOK)
	req := httptest.NewRequest(http.MethodGet, "/?country=US&state=MA", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	body := rec.Body.String()
	if !strings.Contains(body, "5 out of 12 Massachusetts 8th graders") {
		t.Fatalf("expected MA record, got %s", body)
	}
	if strings.Contains(body, "/images/") {
		t.Fatalf("expected no illustration for 5 out of 12, got %s", body)
	}
}

func TestHomeDegradesSoftlyOnLoadFailure(t *testing.T) {
	srv := newTestRouter(t, http.StatusInternalServerError)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected soft 200 on dataset failure, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "temporary issue") {
		t.Fatalf("expected degraded copy, got %s", rec.Body.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestRouter(t, http.StatusOK)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	h := rec.Header()
	if got := h.Get("Cache-Control"); got != "private, no-store" {
		t.Fatalf("Cache-Control: got %q", got)
	}
	if got := h.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options: got %q", got)
	}
	if got := h.Get("Referrer-Policy"); got != "same-origin" {
		t.Fatalf("Referrer-Policy: got %q", got)
	}
	csp := h.Get("Content-Security-Policy")
	if !strings.Contains(csp, "default-src 'none'") {
		t.Fatalf("CSP should disallow scripts and external sources, got %q", csp)
	}
	if got := h.Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("Content-Type: got %q", got)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestRouter(t, http.StatusOK)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "ok" {
		t.Fatalf("expected body 'ok', got %q", got)
	}
}
