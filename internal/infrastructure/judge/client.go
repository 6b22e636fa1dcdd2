// Package judge calls a hosted reasoning service for a plausibility
// verdict on a product listing.
package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/hi8esh/askziva/internal/domain"
)

const systemPrompt = "You are a product listing fraud analyst for Indian e-commerce. " +
	"Judge whether a listing looks legitimate from its title, price, and review count. " +
	"Reply with exactly one line in the form VERDICT | REASON, where VERDICT is SAFE, SUSPICIOUS, or UNKNOWN " +
	"and REASON is one short sentence."

// Fixed confidence per verdict bucket. These are not calibrated
// probabilities and callers must not treat them as such.
var verdictConfidence = map[domain.Verdict]int{
	domain.VerdictSafe:       90,
	domain.VerdictSuspicious: 40,
	domain.VerdictUnknown:    50,
}

// Config holds reasoning-service settings for the judge client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client is a judge backed by an OpenAI-compatible chat completion API.
// It never propagates a failure: any transport, parse, or configuration
// problem collapses into domain.FallbackJudgment.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

var _ domain.Judge = (*Client)(nil)

// NewClient constructs a judge client with sane defaults.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Available reports whether the reasoning service is configured.
func (c *Client) Available() bool {
	return c != nil && c.apiKey != ""
}

// Judge asks the reasoning service for a verdict on the product.
func (c *Client) Judge(ctx context.Context, product domain.ResolvedProduct) domain.Judgment {
	if !c.Available() {
		return domain.FallbackJudgment()
	}

	content, err := c.complete(ctx, buildPrompt(product))
	if err != nil {
		log.Printf("[JUDGE] Service degraded: %v", err)
		return domain.FallbackJudgment()
	}

	judgment, ok := ParseVerdict(content)
	if !ok {
		log.Printf("[JUDGE] Unparseable reply: %q", content)
		return domain.FallbackJudgment()
	}

	log.Printf("[JUDGE] %s (%d%%): %s", judgment.Verdict, judgment.Confidence, judgment.Reason)
	return judgment
}

func buildPrompt(product domain.ResolvedProduct) string {
	return fmt.Sprintf("Product: %q\nListed price: ₹%d (0 means hidden)\nReview count: %d (0 means unknown)",
		product.Title, product.Price, product.ReviewCount)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete runs one chat completion and returns the reply text.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0,
		MaxTokens:   120,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("api error %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("empty choices in response")
	}

	return payload.Choices[0].Message.Content, nil
}

// ParseVerdict parses a strict "VERDICT | REASON" reply. The verdict
// token is mapped by case-insensitive substring; anything that maps to
// no bucket, or a reply with no delimiter, is unparseable and the
// caller falls back.
func ParseVerdict(raw string) (domain.Judgment, bool) {
	head, tail, found := strings.Cut(strings.TrimSpace(raw), "|")
	if !found {
		return domain.Judgment{}, false
	}

	verdict, ok := mapVerdict(head)
	if !ok {
		return domain.Judgment{}, false
	}

	reason := strings.TrimSpace(tail)
	if reason == "" {
		reason = "No explanation provided."
	}

	return domain.Judgment{
		Verdict:    verdict,
		Confidence: verdictConfidence[verdict],
		Reason:     reason,
	}, true
}

func mapVerdict(token string) (domain.Verdict, bool) {
	token = strings.ToUpper(strings.TrimSpace(token))
	switch {
	case strings.Contains(token, string(domain.VerdictSuspicious)):
		return domain.VerdictSuspicious, true
	case strings.Contains(token, string(domain.VerdictSafe)):
		return domain.VerdictSafe, true
	case strings.Contains(token, string(domain.VerdictUnknown)):
		return domain.VerdictUnknown, true
	default:
		return "", false
	}
}
