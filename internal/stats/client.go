// Package stats talks to the external view-count service. The service
// records endpoint hits and reports hit counts per URI over a time window.
package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DateTimeLayout is the timestamp format of the view-count service API.
const DateTimeLayout = "2006-01-02 15:04:05"

// EndpointHit is one recorded access to a public endpoint
type EndpointHit struct {
	App       string `json:"app"`
	URI       string `json:"uri"`
	IP        string `json:"ip"`
	Timestamp string `json:"timestamp"`
}

// ViewStats is the hit count reported for one URI
type ViewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

// Client is the view-count service boundary
type Client interface {
	SaveHit(ctx context.Context, hit EndpointHit) error
	GetStats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]ViewStats, error)
}

type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SaveHit records a single endpoint hit
func (c *HTTPClient) SaveHit(ctx context.Context, hit EndpointHit) error {
	body, err := json.Marshal(hit)
	if err != nil {
		return fmt.Errorf("failed to encode hit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hit", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to save hit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("stats service error: %d - %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// GetStats fetches hit counts for the given URIs over [start, end]
func (c *HTTPClient) GetStats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]ViewStats, error) {
	params := url.Values{}
	params.Set("start", start.Format(DateTimeLayout))
	params.Set("end", end.Format(DateTimeLayout))
	if len(uris) > 0 {
		params.Set("uris", strings.Join(uris, ","))
	}
	if unique {
		params.Set("unique", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("stats service error: %d - %s", resp.StatusCode, string(respBody))
	}

	var result []ViewStats
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result, nil
}
