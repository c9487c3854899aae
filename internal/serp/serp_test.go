package serp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"sheetfetch/internal/components/telemetry"
	"sheetfetch/internal/fetch"

	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<div id="res"><div id="ires"><ol>
<li class="g">
	<h3 class="r"><a href="/url?q=http://www.seerinteractive.com/&amp;sa=U&amp;ei=abc">Seer <b>Interactive</b></a></h3>
	<div class="s"><cite>www.seerinteractive.com/</cite><br><span class="st">Search &amp; analytics agency</span></div>
</li>
<li class="g">
	<h3 class="r"><a href="/url?q=https://en.wikipedia.org/wiki/Seer%3Fx&amp;sa=U">Seer - Wikipedia</a></h3>
</li>
<li class="g">
	<h3 class="r"><a href="/images?q=seer">Images for seer</a></h3>
</li>
<li class="g">
	<h3 class="r"><a href="/url?q=/search%3Fq%3Dseer&amp;sa=U">More results</a></h3>
</li>
</ol></div></div>
</body></html>`

type testEnv struct {
	scraper Scraper
	rec     *telemetry.Recorder
	queries *[]string
	opts    Options
}

func newTestEnv(t *testing.T) testEnv {
	queries := &[]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*queries = append(*queries, r.URL.RawQuery)
		if r.URL.Query().Get("q") == "nothing" {
			w.Write([]byte("<html><body></body></html>"))
			return
		}
		w.Write([]byte(resultsPage))
	}))
	t.Cleanup(srv.Close)

	rec := &telemetry.Recorder{}
	transport, err := fetch.NewRestyTransport(fetch.TransportOptions{}, rec)
	require.NoError(t, err)
	session := fetch.NewSession(transport, rec)
	return testEnv{
		scraper: NewScraper(session, rec),
		rec:     rec,
		queries: queries,
		opts:    Options{BaseUrl: srv.URL},
	}
}

func TestSearchUrl(t *testing.T) {
	require.Equal(t, "http://www.google.com/search?q=seer%20interactive&start=0&num=10", SearchUrl("seer interactive", Options{}))
	require.Equal(t, "http://www.google.co.uk/search?q=seer&start=10&num=20", SearchUrl("seer", Options{Tld: ".co.uk", Start: 10, Results: 20}))
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)

	urls, err := env.scraper.Search(context.Background(), "seer", env.opts)
	require.NoError(t, err)
	require.Equal(t, []string{
		"http://www.seerinteractive.com/",
		"https://en.wikipedia.org/wiki/Seer?x",
	}, urls)
	require.Equal(t, []string{"q=seer&start=0&num=10"}, *env.queries)

	rows, err := env.scraper.SearchTable(context.Background(), "seer", env.opts)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Len(t, rows[0], 1)
	require.Equal(t, "https://en.wikipedia.org/wiki/Seer?x", rows[1][0].Text())
}

func TestSearchNoResults(t *testing.T) {
	env := newTestEnv(t)

	urls, err := env.scraper.Search(context.Background(), "nothing", env.opts)
	require.NoError(t, err)
	require.Empty(t, urls)

	warnings := env.rec.Reports("warning")
	require.Len(t, warnings, 1)
	require.Equal(t, "serp: scraper.search", warnings[0].Id)
}

func TestSearchMissingKeyword(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.scraper.Search(context.Background(), "", env.opts)
	require.ErrorIs(t, err, fetch.ErrMissingParameters)
	require.Empty(t, *env.queries)
}

func TestResults(t *testing.T) {
	env := newTestEnv(t)

	results, err := env.scraper.Results(context.Background(), "seer", env.opts)
	require.NoError(t, err)
	require.Equal(t, []Result{
		{
			Title: "Seer Interactive",
			Url:   "http://www.seerinteractive.com/",
			Desc:  "Search & analytics agency",
			Cite:  "www.seerinteractive.com/",
		},
		{Title: "Seer - Wikipedia", Url: "https://en.wikipedia.org/wiki/Seer?x"},
		{Title: "More results", Url: "/search?q=seer"},
	}, results)
}
