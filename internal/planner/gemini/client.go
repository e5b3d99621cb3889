// Package gemini implements planner.Generator and planner.Estimator on top of
// the Gemini API. Every call goes through a circuit breaker; there is no retry.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"google.golang.org/genai"

	"github.com/pkordes/wanderplan/internal/domain"
	"github.com/pkordes/wanderplan/internal/planner"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gemini-2.5-flash"

// contentGenerator is the subset of *genai.Models the client calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config holds the client settings.
type Config struct {
	APIKey string
	Model  string

	// MaxFailures is the number of consecutive failures that opens the
	// breaker. Defaults to 3.
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before letting a probe
	// through. Defaults to 30s.
	OpenTimeout time.Duration
	// Logger receives breaker state changes. Defaults to slog.Default.
	Logger *slog.Logger
}

// Client talks to Gemini.
type Client struct {
	models  contentGenerator
	model   string
	breaker *gobreaker.CircuitBreaker
}

var (
	_ planner.Generator = (*Client)(nil)
	_ planner.Estimator = (*Client)(nil)
)

// New creates a Gemini API client authenticated with cfg.APIKey.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini.New: API key is required")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini.New: %w", err)
	}
	return newClient(gc.Models, cfg), nil
}

func newClient(models contentGenerator, cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 3
	}
	if cfg.OpenTimeout == 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	maxFailures, log := cfg.MaxFailures, cfg.Logger
	return &Client{
		models: models,
		model:  cfg.Model,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "gemini",
			MaxRequests: 1,
			Timeout:     cfg.OpenTimeout,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= maxFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

// Generate asks the model for an itinerary and decodes the JSON array it
// returns. An empty response decodes to zero candidates. Elements are decoded
// one by one; an element that does not fit Candidate comes back as
// planner.Malformed so the rest of the batch survives.
func (c *Client) Generate(ctx context.Context, req planner.Request) ([]planner.Candidate, error) {
	text, err := c.call(ctx, itineraryPrompt(req), itinerarySchema())
	if err != nil {
		return nil, fmt.Errorf("gemini.Client.Generate: %w", err)
	}
	if text == "" {
		return nil, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("gemini.Client.Generate: %w: decode response: %w", domain.ErrExternalService, err)
	}
	out := make([]planner.Candidate, 0, len(raw))
	for _, elem := range raw {
		var cand planner.Candidate
		if err := json.Unmarshal(elem, &cand); err != nil {
			out = append(out, planner.Malformed(err))
			continue
		}
		out = append(out, cand)
	}
	return out, nil
}

// Estimate asks the model for a travel time and distance.
func (c *Client) Estimate(ctx context.Context, origin, destination string, mode domain.TransportMode) (planner.TravelEstimate, error) {
	text, err := c.call(ctx, estimatePrompt(origin, destination, mode), estimateSchema())
	if err != nil {
		return planner.TravelEstimate{}, fmt.Errorf("gemini.Client.Estimate: %w", err)
	}
	var out planner.TravelEstimate
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return planner.TravelEstimate{}, fmt.Errorf("gemini.Client.Estimate: %w: decode response: %w", domain.ErrExternalService, err)
	}
	return out, nil
}

// call runs one JSON-mode generation through the breaker and returns the
// response text with surrounding whitespace trimmed.
func (c *Client) call(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
	v, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
		if err != nil {
			return nil, err
		}
		if resp == nil {
			return "", nil
		}
		return resp.Text(), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrExternalService, err)
	}
	return strings.TrimSpace(v.(string)), nil
}
