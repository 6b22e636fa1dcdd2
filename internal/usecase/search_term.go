package usecase

import "strings"

// maxSearchTermWords caps the derived query so every downstream source
// sees a short, consistent target.
const maxSearchTermWords = 4

// searchTermDelimiters mark where marketing suffixes start in a listing
// title ("OnePlus 13R | Smarter with AI (Case)" -> "OnePlus 13R").
var searchTermDelimiters = []string{"|", "(", "-"}

// DeriveSearchTerm reduces a listing title to the query string used for
// every downstream source. It truncates at the first delimiter and caps
// the result at maxSearchTermWords words. Empty titles stay empty.
func DeriveSearchTerm(title string) string {
	term := title
	for _, delim := range searchTermDelimiters {
		if idx := strings.Index(term, delim); idx >= 0 {
			term = term[:idx]
		}
	}

	words := strings.Fields(term)
	if len(words) > maxSearchTermWords {
		words = words[:maxSearchTermWords]
	}

	return strings.Join(words, " ")
}

// ReferenceKind routes a product reference to the URL or search path.
type ReferenceKind int

const (
	ReferenceURL ReferenceKind = iota
	ReferenceSearch
)

// Classify decides whether a reference is a storefront URL or a free-text
// query. The substring test is the entire routing decision; no deeper
// URL validation happens.
func Classify(reference string) ReferenceKind {
	if strings.Contains(reference, "http") || strings.Contains(reference, "www.") {
		return ReferenceURL
	}
	return ReferenceSearch
}
