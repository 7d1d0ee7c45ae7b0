// Package generation talks to an Ollama-compatible text generation service.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"widviz/common"
	"widviz/config"
)

const maxResponseBytes = 8 << 20

// Client checks service liveness before every generation request.
type Client struct {
	baseURL string
	model   string

	httpClient        *http.Client
	probeTimeout      time.Duration
	generationTimeout time.Duration
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeouts overrides the probe and generation budgets.
func WithTimeouts(probe, generate time.Duration) Option {
	return func(c *Client) {
		c.probeTimeout = probe
		c.generationTimeout = generate
	}
}

// NewClient builds a client for the service at baseURL using model.
func NewClient(baseURL, model string, opts ...Option) *Client {
	c := &Client{
		baseURL:           strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		model:             strings.TrimSpace(model),
		httpClient:        &http.Client{},
		probeTimeout:      config.ProbeTimeout,
		generationTimeout: config.GenerationTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseURL == "" {
		c.baseURL = config.DefaultOllamaURL
	}
	if c.model == "" {
		c.model = config.DefaultOllamaModel
	}
	return c
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Ping probes GET /api/tags. Any transport error or non-200 status is
// common.ErrServiceUnavailable.
func (c *Client) Ping(ctx context.Context) error {
	const op = "probe generation service"

	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return common.NewError(common.ErrServiceUnavailable, op, "", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return common.NewError(common.ErrServiceUnavailable, op,
			"Could not connect to the generation service.", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode != http.StatusOK {
		return common.NewError(common.ErrServiceUnavailable, op,
			"Generation service is not running.", fmt.Errorf("status %d", resp.StatusCode))
	}
	return nil
}

// Generate probes the service and then submits prompt without streaming.
// It returns the "response" field, or "" when the field is absent.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.Ping(ctx); err != nil {
		return "", err
	}
	return c.generate(ctx, prompt)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	const op = "generate text"

	body, err := json.Marshal(generateRequest{Model: c.model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", common.NewError(common.ErrGenerationFailed, op, "", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.generationTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", common.NewError(common.ErrGenerationFailed, op, "", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", common.NewError(common.ErrGenerationTimeout, op,
				fmt.Sprintf("generation exceeded %s", c.generationTimeout), err)
		}
		return "", common.NewError(common.ErrGenerationFailed, op, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", common.NewError(common.ErrGenerationTimeout, op,
				fmt.Sprintf("generation exceeded %s", c.generationTimeout), err)
		}
		return "", common.NewError(common.ErrGenerationFailed, op, "", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", common.NewError(common.ErrGenerationFailed, op, string(raw),
			fmt.Errorf("status %d", resp.StatusCode))
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", common.NewError(common.ErrGenerationFailed, op, "malformed response body", err)
	}
	slog.Debug("generation complete",
		"model", c.model,
		"prompt_chars", len(prompt),
		"response_chars", len(decoded.Response),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return decoded.Response, nil
}

// Summarize returns a display-ready summary of transcript. Failures come back
// as a readable "Error: ..." string instead of an error.
func (c *Client) Summarize(ctx context.Context, transcript string) string {
	text, err := c.Generate(ctx, SummaryPrompt(transcript))
	if err != nil {
		slog.Warn("summary generation failed", "error", err)
		return "Error: " + summaryFailure(err)
	}
	return FormatSummary(text)
}

func summaryFailure(err error) string {
	switch {
	case errors.Is(err, common.ErrServiceUnavailable):
		return "generation service is unavailable"
	case errors.Is(err, common.ErrGenerationTimeout):
		return "summary generation timed out"
	default:
		return "Failed to generate summary"
	}
}

// QuizText requests the quiz completion for transcript and returns the raw
// generated text.
func (c *Client) QuizText(ctx context.Context, transcript string) (string, error) {
	return c.Generate(ctx, QuizPrompt(transcript))
}
