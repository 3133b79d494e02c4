// Package analyze is the thin HTTP client for the external document
// analysis backend. It forwards extracted text plus task descriptions and
// returns whatever the backend reports; how the backend turns tasks into
// model prompts is its business, not ours.
package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/docfox/textract/internal/config"
	"github.com/docfox/textract/internal/models"
	"go.uber.org/zap"
)

// probeTimeout caps the health-check version probe.
const probeTimeout = 3 * time.Second

// Client talks to the analysis backend. A zero-URL client is valid and
// reports itself unconfigured instead of erroring on construction.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a client from config. Trailing slashes in the URL are
// dropped so endpoint paths join cleanly.
func NewClient(cfg config.AnalysisConfig, logger *zap.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Configured reports whether a backend URL was provided.
func (c *Client) Configured() bool { return c.baseURL != "" }

// Analyze posts the extracted text and tasks to the backend and returns
// its report. The caller decides how to degrade when this fails; the
// client never invents findings.
func (c *Client) Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisReport, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("analysis backend not configured")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("analysis request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("analysis backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var report models.AnalysisReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	report.Enabled = true
	return &report, nil
}

// Reachable probes the backend's version endpoint with a short timeout and
// returns whether it answered, plus the reported version string.
func (c *Client) Reachable(ctx context.Context) (bool, string) {
	if !c.Configured() {
		return false, ""
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/version", nil)
	if err != nil {
		return false, ""
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("analysis backend unreachable", zap.Error(err))
		return false, ""
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return false, ""
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	return true, strings.TrimSpace(string(data))
}
