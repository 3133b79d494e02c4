package analyze

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/docfox/textract/internal/config"
	"github.com/docfox/textract/internal/models"
)

func TestClient_unconfigured(t *testing.T) {
	c := NewClient(config.AnalysisConfig{}, nil)
	if c.Configured() {
		t.Error("empty URL must report unconfigured")
	}
	if _, err := c.Analyze(context.Background(), &models.AnalysisRequest{}); err == nil {
		t.Error("Analyze on unconfigured client must fail")
	}
	if ok, _ := c.Reachable(context.Background()); ok {
		t.Error("unconfigured client must not be reachable")
	}
}

func TestClient_analyze(t *testing.T) {
	var gotPath, gotKey string
	var gotReq models.AnalysisRequest
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"findings": map[string]string{"summary": "a contract for construction work"},
		})
	}))
	defer backend.Close()

	c := NewClient(config.AnalysisConfig{URL: backend.URL + "/", APIKey: "k123"}, nil)
	report, err := c.Analyze(context.Background(), &models.AnalysisRequest{
		Filename: "smlouva.pdf",
		Text:     "Smlouva o dilo",
		Tasks:    DefaultTasks("smlouva.pdf"),
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if gotPath != "/api/analyze" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "k123" {
		t.Errorf("x-api-key = %q", gotKey)
	}
	if gotReq.Filename != "smlouva.pdf" || len(gotReq.Tasks) == 0 {
		t.Errorf("forwarded request = %+v", gotReq)
	}
	if !report.Enabled {
		t.Error("Enabled = false")
	}
	if report.Findings["summary"] != "a contract for construction work" {
		t.Errorf("findings = %v", report.Findings)
	}
}

func TestClient_analyzeBackendError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer backend.Close()

	c := NewClient(config.AnalysisConfig{URL: backend.URL}, nil)
	_, err := c.Analyze(context.Background(), &models.AnalysisRequest{Text: "x"})
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestClient_reachable(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/version" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("1.4.2\n"))
	}))
	defer backend.Close()

	c := NewClient(config.AnalysisConfig{URL: backend.URL}, nil)
	ok, version := c.Reachable(context.Background())
	if !ok {
		t.Fatal("expected reachable")
	}
	if version != "1.4.2" {
		t.Errorf("version = %q", version)
	}
}

func TestClient_unreachable(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close()

	c := NewClient(config.AnalysisConfig{URL: backend.URL}, nil)
	if ok, _ := c.Reachable(context.Background()); ok {
		t.Error("closed backend must not be reachable")
	}
}

func TestDefaultTasks(t *testing.T) {
	base := DefaultTasks("unknown.bin")
	if len(base) != 3 {
		t.Errorf("base tasks = %d, want 3", len(base))
	}
	if got := DefaultTasks("report.pdf"); len(got) != 5 {
		t.Errorf("pdf tasks = %d, want 5", len(got))
	}
	if got := DefaultTasks("NOTES.MD"); len(got) != 5 {
		t.Errorf("md tasks = %d, want 5 (extension match is case-insensitive)", len(got))
	}
}
