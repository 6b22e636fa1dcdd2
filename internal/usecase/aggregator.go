package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hi8esh/askziva/internal/domain"
)

// currentLinkSite labels the synthetic offer representing the scanned
// page itself, so callers can tell it apart from genuine competitors.
const currentLinkSite = "This Link"

// AggregatorConfig holds configuration for the aggregator
type AggregatorConfig struct {
	// SourceTimeout bounds each optional source (scanner, history).
	// The judge is awaited unconditionally; it enforces its own bound.
	SourceTimeout time.Duration
}

// Aggregator orchestrates extraction, the AI judge, competitor scanners,
// and the history lookup into one IntelligenceReport. Every sub-failure
// except an invalid reference degrades to partial data: a caller always
// receives a structurally valid report.
type Aggregator struct {
	extractor     domain.PageExtractor
	judge         domain.Judge
	scanners      []domain.CompetitorScanner
	history       domain.HistoryProvider
	sourceTimeout time.Duration
}

// NewAggregator creates an aggregator with its sources injected.
// Extractor, judge, and history may be nil and scanners may be empty;
// the corresponding contribution is then simply omitted from reports.
func NewAggregator(
	extractor domain.PageExtractor,
	judge domain.Judge,
	scanners []domain.CompetitorScanner,
	history domain.HistoryProvider,
	config AggregatorConfig,
) *Aggregator {
	sourceTimeout := config.SourceTimeout
	if sourceTimeout <= 0 {
		sourceTimeout = 35 * time.Second
	}

	return &Aggregator{
		extractor:     extractor,
		judge:         judge,
		scanners:      scanners,
		history:       history,
		sourceTimeout: sourceTimeout,
	}
}

// Scan turns a product reference (storefront URL or free-text query)
// into an IntelligenceReport. The only error it returns is
// domain.ErrInvalidInput for an empty reference.
func (a *Aggregator) Scan(ctx context.Context, reference string) (*domain.IntelligenceReport, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, domain.ErrInvalidInput
	}

	isURL := Classify(reference) == ReferenceURL
	return a.run(ctx, reference, isURL), nil
}

// Analyze is the search-query path: the title is used as-is, with no URL
// resolution even if it happens to look like one.
func (a *Aggregator) Analyze(ctx context.Context, title string) (*domain.IntelligenceReport, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrInvalidInput
	}

	return a.run(ctx, title, false), nil
}

func (a *Aggregator) run(ctx context.Context, reference string, isURL bool) *domain.IntelligenceReport {
	product := a.resolve(ctx, reference, isURL)
	term := DeriveSearchTerm(product.Title)
	log.Printf("[AGG] Scanning %q (url=%v, term=%q)", product.Title, isURL, term)

	// Fan out. The judge is mandatory; scanners and history are each
	// time-boxed and fully isolated, so one stalled source cannot
	// delay the others or the request.
	judgeCh := make(chan domain.Judgment, 1)
	go func() {
		judgeCh <- a.judgment(ctx, product)
	}()

	offerCh := make(chan *domain.CompetitorOffer, len(a.scanners))
	for _, scanner := range a.scanners {
		go func(scanner domain.CompetitorScanner) {
			offerCh <- a.scanOne(ctx, scanner, term)
		}(scanner)
	}

	historyCh := make(chan *domain.HistoryStats, 1)
	go func() {
		historyCh <- a.lookupHistory(ctx, term)
	}()

	judgment := <-judgeCh

	// Receive order is completion order among scanners that made it.
	offers := make([]domain.CompetitorOffer, 0, len(a.scanners))
	for range a.scanners {
		if offer := <-offerCh; offer != nil {
			offers = append(offers, *offer)
		}
	}

	history := <-historyCh

	return a.merge(reference, isURL, product, judgment, offers, history)
}

// resolve turns the reference into product signals. Extraction failure is
// never fatal; it only degrades signal quality.
func (a *Aggregator) resolve(ctx context.Context, reference string, isURL bool) domain.ResolvedProduct {
	if !isURL {
		return domain.ResolvedProduct{Title: reference}
	}

	if a.extractor == nil {
		log.Printf("[AGG] No extractor configured, using placeholder for %q", reference)
		return domain.ResolvedProduct{Title: domain.PlaceholderTitle}
	}

	product, err := a.extractor.Extract(ctx, reference)
	if err != nil || product == nil || product.Title == "" {
		log.Printf("[AGG] Extraction degraded for %q: %v", reference, err)
		return domain.ResolvedProduct{Title: domain.PlaceholderTitle}
	}

	return *product
}

func (a *Aggregator) judgment(ctx context.Context, product domain.ResolvedProduct) domain.Judgment {
	if a.judge == nil || !a.judge.Available() {
		return domain.FallbackJudgment()
	}
	return a.judge.Judge(ctx, product)
}

// scanOne runs a single scanner under the source timeout. The timeout is
// a soft cancellation: once it fires we stop waiting, and the scanner's
// own context unwinds whatever it was doing in the background.
func (a *Aggregator) scanOne(ctx context.Context, scanner domain.CompetitorScanner, term string) *domain.CompetitorOffer {
	ctx, cancel := context.WithTimeout(ctx, a.sourceTimeout)
	defer cancel()

	done := make(chan *domain.CompetitorOffer, 1)
	go func() {
		offer, err := scanner.Scan(ctx, term)
		if err != nil {
			log.Printf("[AGG] Scanner %s degraded: %v", scanner.Site(), err)
			done <- nil
			return
		}
		done <- offer
	}()

	select {
	case offer := <-done:
		return offer
	case <-ctx.Done():
		log.Printf("[AGG] Scanner %s timed out after %s", scanner.Site(), a.sourceTimeout)
		return nil
	}
}

func (a *Aggregator) lookupHistory(ctx context.Context, term string) *domain.HistoryStats {
	if a.history == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.sourceTimeout)
	defer cancel()

	done := make(chan *domain.HistoryStats, 1)
	go func() {
		stats, err := a.history.Lookup(ctx, term)
		if err != nil {
			log.Printf("[AGG] History lookup degraded: %v", err)
			done <- nil
			return
		}
		done <- stats
	}()

	select {
	case stats := <-done:
		return stats
	case <-ctx.Done():
		log.Printf("[AGG] History lookup timed out after %s", a.sourceTimeout)
		return nil
	}
}

// merge synthesizes the final report from whatever returned in time.
func (a *Aggregator) merge(
	reference string,
	isURL bool,
	product domain.ResolvedProduct,
	judgment domain.Judgment,
	offers []domain.CompetitorOffer,
	history *domain.HistoryStats,
) *domain.IntelligenceReport {
	currentPrice := product.Price
	reason := judgment.Reason

	// The extractor found no price; fall back to the cheapest offer.
	if currentPrice == 0 && len(offers) > 0 {
		lowest := offers[0].Price
		for _, offer := range offers[1:] {
			if offer.Price < lowest {
				lowest = offer.Price
			}
		}
		currentPrice = lowest
		reason = fmt.Sprintf("%s Checked %d stores for live pricing.", reason, len(a.scanners))
	}

	// Let the caller compare the scanned page against found competitors.
	if isURL && product.Price > 0 {
		current := domain.CompetitorOffer{
			Site:       currentLinkSite,
			Title:      product.Title,
			Price:      product.Price,
			Link:       reference,
			MatchScore: 100,
		}
		offers = append([]domain.CompetitorOffer{current}, offers...)
	}

	return &domain.IntelligenceReport{
		Verdict:      judgment.Verdict,
		Confidence:   judgment.Confidence,
		Reason:       reason,
		Product:      product.Title,
		CurrentPrice: currentPrice,
		Competitors:  offers,
		History:      history,
	}
}
