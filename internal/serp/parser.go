package serp

import (
	"net/url"
	"strings"

	"sheetfetch/internal/htmlutil"
	"sheetfetch/internal/table"

	"github.com/PuerkitoBio/goquery"
)

const organicSelector = "li.g"

type Result struct {
	Title string
	Url   string
	Desc  string
	Cite  string
}

var ResultHeader = table.Strings("title", "url", "desc", "cite")

func (r Result) Row() table.Row {
	return table.Strings(r.Title, r.Url, r.Desc, r.Cite)
}

// extractUrl returns the target of a google redirect link (/url?q=<target>&...).
func extractUrl(href string) (string, bool) {
	if !strings.Contains(href, "/url?q=") {
		return "", false
	}
	link, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	target := link.Query().Get("q")
	return target, target != ""
}

func resultUrl(sel *goquery.Selection) (string, bool) {
	for _, anchor := range htmlutil.GetAnchors(sel.Find("a[href]")) {
		target, ok := extractUrl(anchor.Href)
		if ok {
			return target, true
		}
	}
	return "", false
}

// ExtractOrganic returns the http(s) target of every organic result.
func ExtractOrganic(doc *goquery.Document) []string {
	var urls []string
	doc.Find(organicSelector).Each(func(_ int, sel *goquery.Selection) {
		target, ok := resultUrl(sel)
		if !ok || !strings.HasPrefix(target, "http") {
			return
		}
		urls = append(urls, target)
	})
	return urls
}

// ParseResults returns every organic result that links somewhere.
func ParseResults(doc *goquery.Document) []Result {
	var results []Result
	doc.Find(organicSelector).Each(func(_ int, sel *goquery.Selection) {
		target, ok := resultUrl(sel)
		if !ok {
			return
		}
		results = append(results, Result{
			Title: htmlutil.CleanText(sel.Find("h3").First().Text()),
			Url:   target,
			Desc:  htmlutil.CleanText(sel.Find(".st").First().Text()),
			Cite:  htmlutil.CleanText(sel.Find("cite").First().Text()),
		})
	})
	return results
}
