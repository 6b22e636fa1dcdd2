package storefront

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Flipkart selector generations: the site rotates obfuscated class names,
// so each selector lists every variant seen in the wild.
const (
	flipkartCardSelector  = "div[data-id], div._1AtVbE"
	flipkartTitleSelector = "div.RG5Slk, div.KzDlHZ, div._4rR01T, a.s1Q9rs"
	flipkartPriceSelector = "div.hZ3P6w, div.DeU9vF, div.Nx9bqj, div._30jeq3"
)

// Flipkart is the Flipkart search markup variant.
type Flipkart struct{}

var _ Site = Flipkart{}

func (Flipkart) Name() string { return "Flipkart" }

func (Flipkart) BaseURL() string { return "https://www.flipkart.com" }

func (f Flipkart) SearchURL(query string) string {
	return f.BaseURL() + "/search?q=" + url.QueryEscape(query)
}

func (Flipkart) DefaultFloor() int { return 60 }

// ExtractCandidates walks the result cards and keeps every one that
// carries both a title and a price node.
func (Flipkart) ExtractCandidates(doc *goquery.Document) []Candidate {
	var candidates []Candidate

	doc.Find(flipkartCardSelector).Each(func(i int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find(flipkartTitleSelector).First().Text())
		price := strings.TrimSpace(card.Find(flipkartPriceSelector).First().Text())
		if title == "" || price == "" {
			return
		}

		link, _ := card.Find("a").First().Attr("href")
		candidates = append(candidates, Candidate{
			Title:    title,
			RawPrice: price,
			Link:     link,
		})
	})

	return candidates
}
