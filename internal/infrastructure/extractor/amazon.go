// Package extractor resolves listing URLs into product signals.
package extractor

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hi8esh/askziva/internal/domain"
)

const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"
	acceptLanguage = "en-IN,en-GB;q=0.9,en-US;q=0.8,en;q=0.7"
)

var reviewCountExpr = regexp.MustCompile(`([\d,]+)`)

// AmazonExtractor pulls title, price, and review count off an
// Amazon-style product page. It implements domain.PageExtractor.
type AmazonExtractor struct {
	httpClient *http.Client
}

var _ domain.PageExtractor = (*AmazonExtractor)(nil)

// NewAmazonExtractor wires an HTTP client; a nil client gets a 20s timeout.
func NewAmazonExtractor(client *http.Client) *AmazonExtractor {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &AmazonExtractor{httpClient: client}
}

// Extract fetches the page and returns the resolved signals. A missing
// price or review count degrades to 0; a missing title is an error so
// the caller can substitute its placeholder.
func (e *AmazonExtractor) Extract(ctx context.Context, pageURL string) (*domain.ResolvedProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: listing returned %s", domain.ErrSourceBlocked, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	title := strings.TrimSpace(doc.Find("span#productTitle").First().Text())
	if title == "" {
		return nil, fmt.Errorf("%w: no title on page", domain.ErrExtractionFailed)
	}

	product := &domain.ResolvedProduct{
		Title:       title,
		Price:       parseListingPrice(doc.Find("span.a-price-whole").First().Text()),
		ReviewCount: parseReviewCount(doc.Find("#acrCustomerReviewText").First().Text()),
	}

	log.Printf("[EXTRACT] %q price=%d reviews=%d", product.Title, product.Price, product.ReviewCount)
	return product, nil
}

// parseListingPrice handles the whole-rupee price node, which carries a
// trailing dot and thousands separators ("1,29,999."). 0 means hidden.
func parseListingPrice(raw string) int {
	cleaned := strings.NewReplacer("₹", "", ",", "", ".", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0
	}

	price, err := strconv.Atoi(cleaned)
	if err != nil || price < 0 {
		return 0
	}
	return price
}

// parseReviewCount reads "12,345 ratings" style text. 0 means unknown.
func parseReviewCount(raw string) int {
	match := reviewCountExpr.FindString(raw)
	if match == "" {
		return 0
	}

	count, err := strconv.Atoi(strings.ReplaceAll(match, ",", ""))
	if err != nil || count < 0 {
		return 0
	}
	return count
}
