package domain

// Verdict classifies how plausible a product listing looks.
type Verdict string

const (
	VerdictSafe       Verdict = "SAFE"
	VerdictSuspicious Verdict = "SUSPICIOUS"
	VerdictUnknown    Verdict = "UNKNOWN"
)

// ResolvedProduct holds the signals pulled off the target listing.
// Price and ReviewCount are 0 when unknown (search-query path, or a
// page that hides them).
type ResolvedProduct struct {
	Title       string `json:"title"`
	Price       int    `json:"price"`
	ReviewCount int    `json:"reviewCount"`
}

// PlaceholderTitle is substituted when URL extraction fails outright.
const PlaceholderTitle = "Unknown Product"

// CompetitorOffer is one storefront's best-matching listing for a query.
// MatchScore is the 0-100 title similarity against the search term.
type CompetitorOffer struct {
	Site       string `json:"site"`
	Title      string `json:"title"`
	Price      int    `json:"price"`
	Link       string `json:"link"`
	MatchScore int    `json:"match_score"`
}

// HistoryStats carries historical pricing for a product, in whole rupees.
type HistoryStats struct {
	Lowest  int `json:"lowest"`
	Average int `json:"average"`
}

// Judgment is the AI plausibility call for a listing. Confidence is a
// fixed per-verdict constant, not a calibrated probability.
type Judgment struct {
	Verdict    Verdict `json:"verdict"`
	Confidence int     `json:"confidence"`
	Reason     string  `json:"reason"`
}

// FallbackJudgment is returned whenever the reasoning service is
// unconfigured, unreachable, or replies with something unparseable.
func FallbackJudgment() Judgment {
	return Judgment{
		Verdict:    VerdictUnknown,
		Confidence: 50,
		Reason:     "AI analysis unavailable; verdict based on live market signals only.",
	}
}

// IntelligenceReport is the terminal artifact of one scan. It is always
// structurally complete: missing data shows as an empty competitor list,
// absent history, or a zero price, never as an error.
type IntelligenceReport struct {
	Verdict      Verdict           `json:"verdict"`
	Confidence   int               `json:"confidence"`
	Reason       string            `json:"reason"`
	Product      string            `json:"product"`
	CurrentPrice int               `json:"current_price"`
	Competitors  []CompetitorOffer `json:"competitors"`
	History      *HistoryStats     `json:"history,omitempty"`
}
