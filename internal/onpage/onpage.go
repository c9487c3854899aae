package onpage

import (
	"context"
	"errors"
	"strings"

	"sheetfetch/internal/assert"
	"sheetfetch/internal/errlog"
	"sheetfetch/internal/fetch"
	"sheetfetch/internal/htmlutil"
	"sheetfetch/internal/textutil"
)

var ErrNoBody = errors.New("No body tag was found")

// Analyzer fetches pages and extracts on-page content from them. Every failure is recorded in
// the accumulator before it is returned.
type Analyzer struct {
	session *fetch.Session
	errs    *errlog.Accumulator
}

func NewAnalyzer(session *fetch.Session, errs *errlog.Accumulator) Analyzer {
	assert.NotNil(session)
	assert.NotNil(errs)
	return Analyzer{session: session, errs: errs}
}

func (a Analyzer) fail(err error) error {
	a.errs.Set(err.Error())
	return err
}

func (a Analyzer) page(ctx context.Context, url string) (string, error) {
	page, err := a.session.FetchHtml(ctx, url)
	if err != nil {
		return "", a.fail(err)
	}
	return page, nil
}

// Content returns the whole html of url.
func (a Analyzer) Content(ctx context.Context, url string) (string, error) {
	page, err := a.page(ctx, url)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(page), nil
}

// BodyText returns the text inside the body tag of url without markup.
func (a Analyzer) BodyText(ctx context.Context, url string) (string, error) {
	page, err := a.page(ctx, url)
	if err != nil {
		return "", err
	}
	text, ok := textutil.ContentInBodyTag(page)
	if !ok {
		return "", a.fail(ErrNoBody)
	}
	return text, nil
}

func (a Analyzer) BodyWordCount(ctx context.Context, url string) (int, error) {
	text, err := a.BodyText(ctx, url)
	if err != nil {
		return 0, err
	}
	return len(strings.Fields(text)), nil
}

func (a Analyzer) Title(ctx context.Context, url string) (string, error) {
	page, err := a.page(ctx, url)
	if err != nil {
		return "", err
	}
	doc, err := htmlutil.ParseDocument(page)
	if err != nil {
		return "", a.fail(err)
	}
	return htmlutil.CleanText(doc.Find("title").First().Text()), nil
}

// Links returns every anchor on the page of url.
func (a Analyzer) Links(ctx context.Context, url string) ([]htmlutil.Anchor, error) {
	page, err := a.page(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := htmlutil.ParseDocument(page)
	if err != nil {
		return nil, a.fail(err)
	}
	return htmlutil.GetAnchors(doc.Find("a[href]")), nil
}
