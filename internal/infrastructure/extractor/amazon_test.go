package extractor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hi8esh/askziva/internal/domain"
)

const listingPage = `<html><body>
	<span id="productTitle"> OnePlus 13R | Smarter with AI (Nebula Noir, 256 GB) </span>
	<span class="a-price-whole">42,999.</span>
	<span id="acrCustomerReviewText">1,204 ratings</span>
</body></html>`

func TestExtract_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("Accept-Language"))
		fmt.Fprint(w, listingPage)
	}))
	defer server.Close()

	e := NewAmazonExtractor(server.Client())

	product, err := e.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "OnePlus 13R | Smarter with AI (Nebula Noir, 256 GB)", product.Title)
	assert.Equal(t, 42999, product.Price)
	assert.Equal(t, 1204, product.ReviewCount)
}

func TestExtract_HiddenPriceAndReviews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><span id="productTitle">Mystery Gadget</span></body></html>`)
	}))
	defer server.Close()

	e := NewAmazonExtractor(server.Client())

	product, err := e.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Mystery Gadget", product.Title)
	assert.Equal(t, 0, product.Price)
	assert.Equal(t, 0, product.ReviewCount)
}

func TestExtract_MissingTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>captcha page</p></body></html>`)
	}))
	defer server.Close()

	e := NewAmazonExtractor(server.Client())

	_, err := e.Extract(context.Background(), server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_BotDetection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	e := NewAmazonExtractor(server.Client())

	_, err := e.Extract(context.Background(), server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceBlocked)
}

func TestParseListingPrice(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"42,999.", 42999},
		{"1,29,999", 129999},
		{"999", 999},
		{"", 0},
		{"Hidden", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseListingPrice(tt.raw), "raw %q", tt.raw)
	}
}

func TestParseReviewCount(t *testing.T) {
	assert.Equal(t, 1204, parseReviewCount("1,204 ratings"))
	assert.Equal(t, 7, parseReviewCount("7 ratings"))
	assert.Equal(t, 0, parseReviewCount(""))
	assert.Equal(t, 0, parseReviewCount("no ratings yet"))
}
