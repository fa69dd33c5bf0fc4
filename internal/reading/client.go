// Package reading is the boundary to the AI narrative collaborator. It
// composes a plain-text chart summary, ships it over HTTP, and hands the
// returned sections back untouched. No narrative text is generated here.
package reading

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"ziwei/internal/platform/config"
	"ziwei/pkg/platform/sentinel"
)

// Narrative is the collaborator's sectioned output, relayed verbatim.
type Narrative struct {
	OverallReading  string            `json:"overall_reading"`
	SectionReadings map[string]string `json:"section_readings,omitempty"`
	Recommendations string            `json:"recommendations,omitempty"`
}

// Narrator produces a narrative for a chart summary.
type Narrator interface {
	Narrate(ctx context.Context, summary string) (*Narrative, error)
}

type narrateRequest struct {
	Model   string `json:"model,omitempty"`
	Summary string `json:"summary"`
}

// HTTPNarrator talks to the configured collaborator endpoint.
type HTTPNarrator struct {
	url    string
	apiKey string
	model  string
	client *http.Client
}

func NewHTTPNarrator(cfg config.ReadingConfig) *HTTPNarrator {
	return &HTTPNarrator{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (n *HTTPNarrator) Narrate(ctx context.Context, summary string) (*Narrative, error) {
	body, err := json.Marshal(narrateRequest{Model: n.model, Summary: summary})
	if err != nil {
		return nil, fmt.Errorf("encode narrate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build narrate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+n.apiKey)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("narrative collaborator: %w: %s", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("narrative collaborator returned %d: %s", resp.StatusCode, snippet)
	}

	var narrative Narrative
	if err := json.NewDecoder(resp.Body).Decode(&narrative); err != nil {
		return nil, fmt.Errorf("decode narrative: %w", err)
	}
	return &narrative, nil
}

// unconfiguredNarrator stands in when no collaborator URL is set, so the
// route stays mounted and answers honestly.
type unconfiguredNarrator struct{}

func (unconfiguredNarrator) Narrate(context.Context, string) (*Narrative, error) {
	return nil, fmt.Errorf("narrative collaborator is not configured: %w", sentinel.ErrUnavailable)
}

// NarratorFromConfig picks the HTTP narrator when a URL is configured.
func NarratorFromConfig(cfg config.ReadingConfig) Narrator {
	if cfg.URL == "" {
		return unconfiguredNarrator{}
	}
	return NewHTTPNarrator(cfg)
}
