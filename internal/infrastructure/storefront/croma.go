package storefront

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Croma is the Croma search markup variant. Croma's result page is slow
// and paginated oddly, so only the first product card is trusted.
type Croma struct{}

var _ Site = Croma{}

func (Croma) Name() string { return "Croma" }

func (Croma) BaseURL() string { return "https://www.croma.com" }

func (c Croma) SearchURL(query string) string {
	// The trailing encoded space steers Croma's search away from its
	// category landing pages.
	return c.BaseURL() + "/searchB?q=" + url.QueryEscape(query) + "%20"
}

func (Croma) DefaultFloor() int { return 50 }

func (Croma) ExtractCandidates(doc *goquery.Document) []Candidate {
	card := doc.Find("li.product-item, div.product-item").First()
	if card.Length() == 0 {
		return nil
	}

	title := strings.TrimSpace(card.Find("h3.product-title, h3 a").First().Text())
	price := strings.TrimSpace(card.Find(".amount, .new-price").First().Text())
	if title == "" || price == "" {
		return nil
	}

	link, _ := card.Find("h3 a").First().Attr("href")
	return []Candidate{{
		Title:    title,
		RawPrice: price,
		Link:     link,
	}}
}
