// Package engineclient is the boundary to the external chart-construction
// engine. The engine is a black box that builds the palace/star skeleton for
// a birth moment; this client only moves JSON and never interprets it.
package engineclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"ziwei/internal/chart/models"
	"ziwei/internal/platform/config"
	"ziwei/pkg/platform/sentinel"
)

// Client builds a chart skeleton for a birth record.
type Client interface {
	BuildChart(ctx context.Context, birth models.BirthRecord) (*Skeleton, error)
}

// HTTPClient talks to the engine over its JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func New(cfg config.EngineConfig) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.URL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *HTTPClient) BuildChart(ctx context.Context, birth models.BirthRecord) (*Skeleton, error) {
	payload := buildRequest{
		Year:      birth.Year,
		Month:     birth.Month,
		Day:       birth.Day,
		TimeIndex: birth.TimeIndex,
		Gender:    string(birth.Gender),
		IsLunar:   birth.Calendar == models.CalendarLunar,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal engine request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/astrolabe", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build engine request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chart engine: %w: %v", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Cap the echoed body; engine errors are short, anything else is noise.
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("chart engine returned %d: %s", resp.StatusCode, msg)
	}

	var skeleton Skeleton
	if err := json.NewDecoder(resp.Body).Decode(&skeleton); err != nil {
		return nil, fmt.Errorf("decode engine response: %w", err)
	}
	return &skeleton, nil
}
