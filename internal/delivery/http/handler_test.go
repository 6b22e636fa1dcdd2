package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/hi8esh/askziva/config"
	"github.com/hi8esh/askziva/internal/domain"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubService returns a canned report and records the reference it saw.
type stubService struct {
	report        *domain.IntelligenceReport
	err           error
	lastReference string
	analyzeCalls  int
	scanCalls     int
}

func (s *stubService) Scan(ctx context.Context, reference string) (*domain.IntelligenceReport, error) {
	s.scanCalls++
	s.lastReference = reference
	return s.report, s.err
}

func (s *stubService) Analyze(ctx context.Context, title string) (*domain.IntelligenceReport, error) {
	s.analyzeCalls++
	s.lastReference = title
	return s.report, s.err
}

func sampleReport() *domain.IntelligenceReport {
	return &domain.IntelligenceReport{
		Verdict:      domain.VerdictSafe,
		Confidence:   90,
		Reason:       "Looks fine.",
		Product:      "OnePlus 13R",
		CurrentPrice: 42999,
		Competitors: []domain.CompetitorOffer{
			{Site: "Flipkart", Title: "OnePlus 13R 5G", Price: 42999, Link: "https://www.flipkart.com/x", MatchScore: 92},
		},
		History: &domain.HistoryStats{Lowest: 38999, Average: 42500},
	}
}

func setupTestRouter(service ReportService) *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"*"},
		},
		RateLimit: config.RateLimitConfig{PerIP: 1000},
	}
	return SetupRouter(cfg, NewHandler(service))
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter(&stubService{report: sampleReport()})

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", response["status"])
	}
	if response["service"] != "askziva-backend" {
		t.Errorf("service = %v, want askziva-backend", response["service"])
	}
}

func TestScanEndpoint(t *testing.T) {
	t.Run("returns report for a valid reference", func(t *testing.T) {
		service := &stubService{report: sampleReport()}
		router := setupTestRouter(service)

		payload := `{"url":"https://www.amazon.in/dp/B0TEST"}`
		req, _ := http.NewRequest("POST", "/scan", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d (body %s)", w.Code, http.StatusOK, w.Body.String())
		}

		var report domain.IntelligenceReport
		if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
			t.Fatalf("Failed to unmarshal report: %v", err)
		}
		if report.Verdict != domain.VerdictSafe {
			t.Errorf("verdict = %s, want SAFE", report.Verdict)
		}
		if report.CurrentPrice != 42999 {
			t.Errorf("current_price = %d, want 42999", report.CurrentPrice)
		}
		if service.lastReference != "https://www.amazon.in/dp/B0TEST" {
			t.Errorf("service saw %q", service.lastReference)
		}
	})

	t.Run("missing url field returns 400", func(t *testing.T) {
		service := &stubService{report: sampleReport()}
		router := setupTestRouter(service)

		for _, payload := range []string{`{}`, `{"link":"x"}`, `not json`, ``} {
			req, _ := http.NewRequest("POST", "/scan", strings.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("payload %q: Status = %d, want %d", payload, w.Code, http.StatusBadRequest)
			}
			if !strings.Contains(w.Body.String(), "error") {
				t.Errorf("payload %q: body %q, want error field", payload, w.Body.String())
			}
		}

		if service.scanCalls != 0 {
			t.Errorf("service called %d times for invalid payloads, want 0", service.scanCalls)
		}
	})

	t.Run("invalid input from the service maps to 400", func(t *testing.T) {
		service := &stubService{err: domain.ErrInvalidInput}
		router := setupTestRouter(service)

		req, _ := http.NewRequest("POST", "/scan", strings.NewReader(`{"url":"   "}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("report with empty market data is still structurally complete", func(t *testing.T) {
		service := &stubService{report: &domain.IntelligenceReport{
			Verdict:     domain.VerdictUnknown,
			Confidence:  50,
			Reason:      "AI analysis unavailable; verdict based on live market signals only.",
			Product:     "Mystery Gadget",
			Competitors: []domain.CompetitorOffer{},
		}}
		router := setupTestRouter(service)

		req, _ := http.NewRequest("POST", "/scan", strings.NewReader(`{"url":"mystery gadget"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var raw map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
			t.Fatalf("Failed to unmarshal: %v", err)
		}
		if _, ok := raw["competitors"].([]interface{}); !ok {
			t.Errorf("competitors = %v, want JSON array", raw["competitors"])
		}
		if _, present := raw["history"]; present {
			t.Errorf("history should be omitted when absent, got %v", raw["history"])
		}
	})
}

func TestAnalyzeEndpoint(t *testing.T) {
	t.Run("routes title to the analyze path", func(t *testing.T) {
		service := &stubService{report: sampleReport()}
		router := setupTestRouter(service)

		req, _ := http.NewRequest("GET", "/analyze?title=OnePlus+13R", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}
		if service.analyzeCalls != 1 || service.scanCalls != 0 {
			t.Errorf("analyze=%d scan=%d, want 1/0", service.analyzeCalls, service.scanCalls)
		}
		if service.lastReference != "OnePlus 13R" {
			t.Errorf("service saw %q, want OnePlus 13R", service.lastReference)
		}
	})

	t.Run("missing title returns 400", func(t *testing.T) {
		service := &stubService{report: sampleReport()}
		router := setupTestRouter(service)

		req, _ := http.NewRequest("GET", "/analyze", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}
