// Package storefront implements the competitor scanners. One shared
// Scanner owns fetching, candidate bounding, fuzzy matching, price
// normalization, and the similarity floor; each Site variant owns only
// its markup-extraction step.
package storefront

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/hi8esh/askziva/internal/domain"
)

const (
	defaultMaxCandidates = 4

	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptLanguage = "en-IN,en-GB;q=0.9,en-US;q=0.8,en;q=0.7"
)

// Candidate is one (title, price, link) triple pulled off a search page
// before scoring. RawPrice is the untouched text from the card.
type Candidate struct {
	Title    string
	RawPrice string
	Link     string
}

// Site owns the storefront-specific markup rules: where to search and
// how to pull candidate cards out of the result page.
type Site interface {
	Name() string
	BaseURL() string
	SearchURL(query string) string
	ExtractCandidates(doc *goquery.Document) []Candidate
	// DefaultFloor is the similarity floor used when no override is set.
	DefaultFloor() int
}

// ScannerConfig tunes the shared scanner framework
type ScannerConfig struct {
	// SimilarityFloor overrides the site's default floor when > 0.
	SimilarityFloor int
	MaxCandidates   int
}

// Scanner runs one storefront search and returns its best-matching
// offer. It implements domain.CompetitorScanner.
type Scanner struct {
	site          Site
	httpClient    *http.Client
	limiter       *rate.Limiter
	floor         int
	maxCandidates int
}

var _ domain.CompetitorScanner = (*Scanner)(nil)

// NewScanner wires a scanner for one storefront. A nil client gets a
// 20s-timeout default; the limiter keeps per-site request rates polite.
func NewScanner(site Site, client *http.Client, config ScannerConfig) *Scanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}

	floor := config.SimilarityFloor
	if floor <= 0 {
		floor = site.DefaultFloor()
	}

	maxCandidates := config.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = defaultMaxCandidates
	}

	return &Scanner{
		site:          site,
		httpClient:    client,
		limiter:       rate.NewLimiter(rate.Limit(1), 3), // 1 req/sec, burst of 3
		floor:         floor,
		maxCandidates: maxCandidates,
	}
}

// Site returns the storefront label used in offers.
func (s *Scanner) Site() string {
	return s.site.Name()
}

// Scan searches the storefront and returns the highest-scoring offer at
// or above the similarity floor, or (nil, nil) when nothing matches.
// Ties keep the first-seen candidate.
func (s *Scanner) Scan(ctx context.Context, query string) (*domain.CompetitorOffer, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	log.Printf("[SCAN] %s: searching %q", s.site.Name(), query)

	doc, err := s.fetchDocument(ctx, s.site.SearchURL(query))
	if err != nil {
		return nil, err
	}

	candidates := s.site.ExtractCandidates(doc)
	if len(candidates) > s.maxCandidates {
		candidates = candidates[:s.maxCandidates]
	}

	var best *domain.CompetitorOffer
	for _, candidate := range candidates {
		price, err := ParsePrice(candidate.RawPrice)
		if err != nil {
			continue
		}

		score := PartialRatio(query, candidate.Title)
		if score < s.floor {
			continue
		}
		if best != nil && score <= best.MatchScore {
			continue
		}

		best = &domain.CompetitorOffer{
			Site:       s.site.Name(),
			Title:      candidate.Title,
			Price:      price,
			Link:       absoluteLink(s.site.BaseURL(), candidate.Link),
			MatchScore: score,
		}
	}

	if best == nil {
		log.Printf("[SCAN] %s: no acceptable match for %q", s.site.Name(), query)
		return nil, nil
	}

	log.Printf("[SCAN] %s: matched %q at ₹%d (score %d)", s.site.Name(), best.Title, best.Price, best.MatchScore)
	return best, nil
}

func (s *Scanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request search page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: %s returned %s", domain.ErrSourceBlocked, s.site.Name(), resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %s", s.site.Name(), resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	return doc, nil
}

// absoluteLink resolves storefront-relative hrefs against the site base.
func absoluteLink(base, href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	return base + href
}
