// Package serp scrapes the organic results out of a Google search results page.
package serp

import (
	"context"
	"fmt"
	"strings"

	"sheetfetch/internal/assert"
	"sheetfetch/internal/components/telemetry"
	"sheetfetch/internal/fetch"
	"sheetfetch/internal/htmlutil"
	"sheetfetch/internal/sliceutil"
	"sheetfetch/internal/table"
	"sheetfetch/internal/urlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_scraper_search = "scraper.search"
)

type Options struct {
	// Results is the amount of results requested, 10 when zero.
	Results int
	// Tld is the google domain suffix, ".com" when empty.
	Tld   string
	Start int
	// BaseUrl replaces "http://www.google<tld>" when set.
	BaseUrl string
}

func (o Options) withDefaults() Options {
	if o.Results <= 0 {
		o.Results = 10
	}
	if o.Tld == "" {
		o.Tld = ".com"
	}
	if o.Start < 0 {
		o.Start = 0
	}
	if o.BaseUrl == "" {
		o.BaseUrl = "http://www.google" + o.Tld
	}
	return o
}

// SearchUrl is the url of the results page for keyword.
func SearchUrl(keyword string, opts Options) string {
	opts = opts.withDefaults()
	params := urlutil.Params{
		urlutil.P("q", keyword),
		urlutil.P("start", opts.Start),
		urlutil.P("num", opts.Results),
	}
	return strings.TrimSuffix(opts.BaseUrl, "/") + "/search?" + params.Encode()
}

type Scraper struct {
	session *fetch.Session
	tel     telemetry.API
}

func NewScraper(session *fetch.Session, tel telemetry.API) Scraper {
	assert.NotNil(session)
	assert.NotNil(tel)
	return Scraper{
		session: session,
		tel:     telemetry.NewScopedAPI("serp", tel),
	}
}

func (s Scraper) page(ctx context.Context, keyword string, opts Options) (*goquery.Document, error) {
	if keyword == "" {
		return nil, fetch.ErrMissingParameters
	}
	page, err := s.session.FetchHtml(ctx, SearchUrl(keyword, opts))
	if err != nil {
		return nil, err
	}
	doc, err := htmlutil.ParseDocument(page)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}
	return doc, nil
}

// Search returns the organic result urls for keyword in ranking order.
func (s Scraper) Search(ctx context.Context, keyword string, opts Options) ([]string, error) {
	doc, err := s.page(ctx, keyword, opts)
	if err != nil {
		return nil, err
	}
	urls := ExtractOrganic(doc)
	if len(urls) == 0 {
		s.tel.ReportWarning(report_scraper_search, keyword, "no organic results found")
	}
	s.tel.ReportCount(report_scraper_search, int64(len(urls)))
	return urls, nil
}

// SearchTable is Search with every url on its own row.
func (s Scraper) SearchTable(ctx context.Context, keyword string, opts Options) (table.Table, error) {
	urls, err := s.Search(ctx, keyword, opts)
	if err != nil {
		return nil, err
	}
	out := make(table.Table, 0, len(urls))
	for _, row := range sliceutil.Transpose(urls) {
		out = append(out, table.Strings(row...))
	}
	return out, nil
}

// Results returns the details of every organic result.
func (s Scraper) Results(ctx context.Context, keyword string, opts Options) ([]Result, error) {
	doc, err := s.page(ctx, keyword, opts)
	if err != nil {
		return nil, err
	}
	return ParseResults(doc), nil
}
