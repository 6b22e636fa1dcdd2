// Package history looks up historical price stats from a third-party
// price-history site.
package history

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/hi8esh/askziva/internal/domain"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// The stats live in descriptive page text, not structured markup.
var (
	lowestExpr  = regexp.MustCompile(`(?is)Lowest Price.*?₹([\d,]+)`)
	averageExpr = regexp.MustCompile(`(?is)Average Price.*?₹([\d,]+)`)
)

// Client scrapes the price-history site: search, follow the first
// product result, and pattern-match the stats out of the page text.
// It implements domain.HistoryProvider.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ domain.HistoryProvider = (*Client)(nil)

// NewClient builds a history client for the given site base URL.
func NewClient(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 25 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(0.5), 2), // 1 req per 2s, burst of 2
	}
}

// Lookup returns (lowest, average) for the query, or
// domain.ErrHistoryUnavailable when the site has no usable record.
// Stats are only trusted when lowest > 0.
func (c *Client) Lookup(ctx context.Context, query string) (*domain.HistoryStats, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	log.Printf("[HISTORY] Checking %q", query)

	searchDoc, err := c.fetchDocument(ctx, c.baseURL+"/search?q="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}

	href, ok := searchDoc.Find(`a[href*="/product/"]`).First().Attr("href")
	if !ok {
		return nil, fmt.Errorf("%w: no results for %q", domain.ErrHistoryUnavailable, query)
	}
	if !strings.HasPrefix(href, "http") {
		href = c.baseURL + href
	}

	productDoc, err := c.fetchDocument(ctx, href)
	if err != nil {
		return nil, err
	}

	text := productDoc.Text()
	stats := &domain.HistoryStats{
		Lowest:  extractAmount(lowestExpr, text),
		Average: extractAmount(averageExpr, text),
	}

	if stats.Lowest <= 0 {
		return nil, fmt.Errorf("%w: no stats on product page", domain.ErrHistoryUnavailable)
	}

	log.Printf("[HISTORY] %q lowest=₹%d average=₹%d", query, stats.Lowest, stats.Average)
	return stats, nil
}

func (c *Client) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request history page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("history site returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse history page: %w", err)
	}

	return doc, nil
}

func extractAmount(expr *regexp.Regexp, text string) int {
	match := expr.FindStringSubmatch(text)
	if len(match) < 2 {
		return 0
	}

	amount, err := strconv.Atoi(strings.ReplaceAll(match[1], ",", ""))
	if err != nil {
		return 0
	}
	return amount
}
