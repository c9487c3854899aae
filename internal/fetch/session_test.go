package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sheetfetch/internal/components/telemetry"
	"sheetfetch/internal/urlutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type seenRequest struct {
	method      string
	path        string
	query       string
	header      http.Header
	body        string
	contentType string
}

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*httptest.Server, *[]seenRequest) {
	seen := &[]seenRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*seen = append(*seen, seenRequest{
			method:      r.Method,
			path:        r.URL.Path,
			query:       r.URL.RawQuery,
			header:      r.Header.Clone(),
			body:        string(body),
			contentType: r.Header.Get("Content-Type"),
		})
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func newTestSession() (*Session, *telemetry.Recorder) {
	rec := &telemetry.Recorder{}
	transport, err := NewRestyTransport(TransportOptions{Timeout: 5 * time.Second}, rec)
	if err != nil {
		panic(err)
	}
	return NewSession(transport, rec), rec
}

func TestSetUrl(t *testing.T) {
	s, _ := newTestSession()

	stored := s.SetUrl("http://x/", urlutil.Params{urlutil.P("a", 1), urlutil.P("b", 2)})
	require.Equal(t, "http://x/?a=1&b=2", stored)
	require.Equal(t, "http://x/?a=1&b=2", s.Url())

	s.SetUrl("http://x/", urlutil.Params{urlutil.P("q", "a b&c"), urlutil.P("skip", nil)})
	require.Equal(t, "http://x/?q=a%20b%26c", s.Url())

	s.SetUrl("http://x/plain", nil)
	require.Equal(t, "http://x/plain", s.Url())
}

func TestFetchNotFound(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("page missing"))
	})
	s, rec := newTestSession()

	s.SetUrl(srv.URL+"/nothing", nil)
	require.False(t, s.Fetch(context.Background()))
	require.Equal(t, "(404) page missing", s.ErrorMessage())
	require.Equal(t, http.StatusNotFound, s.StatusCode())
	require.True(t, IsKind(s.Err(), KindTransport))

	require.NotEmpty(t, rec.Reports("warning"))
}

func TestFetchOk(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Test", "yes")
		w.Write([]byte("hello"))
	})
	s, _ := newTestSession()

	s.SetUrl(srv.URL, nil)
	require.True(t, s.Fetch(context.Background()))
	require.NoError(t, s.Err())
	require.Equal(t, "", s.ErrorMessage())
	require.Equal(t, "yes", s.ResponseHeaders().Get("X-Test"))

	value, err := s.ParseResponseAs(FormatHtml, nil)
	require.NoError(t, err)
	require.Equal(t, "hello", value)
}

func TestParseResponseAsJson(t *testing.T) {
	body := `{"rows": [["a", 1], ["b", 2]], "ok": true}`
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/empty" {
			return
		}
		w.Write([]byte(body))
	})
	s, _ := newTestSession()

	s.SetUrl(srv.URL+"/data", nil)
	require.True(t, s.Fetch(context.Background()))
	value, err := s.ParseResponseAs(FormatJson, nil)
	require.NoError(t, err)

	expected := map[string]any{
		"rows": []any{[]any{"a", float64(1)}, []any{"b", float64(2)}},
		"ok":   true,
	}
	if diff := cmp.Diff(expected, value); diff != "" {
		t.Fatal(diff)
	}

	s.SetUrl(srv.URL+"/empty", nil)
	require.True(t, s.Fetch(context.Background()))
	_, err = s.ParseResponseAs(FormatJson, nil)
	require.EqualError(t, err, "No data was returned (json)")
	require.True(t, IsKind(err, KindDecode))
}

func TestParseResponseAsOther(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>one</p>\n<p>two</p></body></html>"))
	})
	s, _ := newTestSession()

	s.SetUrl(srv.URL, nil)
	require.True(t, s.Fetch(context.Background()))

	text, err := s.ParseResponseAs(FormatBodyText, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two"}, strings.Fields(text.(string)))

	length, err := s.ParseResponseAs(FormatFunction, func(content string) any {
		return len(content)
	})
	require.NoError(t, err)
	require.Equal(t, 47, length)

	_, err = s.ParseResponseAs(FormatFunction, func(content string) any {
		return nil
	})
	require.EqualError(t, err, "No data was returned (function)")

	_, err = s.ParseResponseAs(FormatFunction, nil)
	require.ErrorIs(t, err, ErrMissingParameters)
}

func TestParseResponseBeforeFetch(t *testing.T) {
	s, _ := newTestSession()
	_, err := s.ParseResponseAs(FormatXml, nil)
	require.EqualError(t, err, "No data was returned (xml)")
}

func TestCookiesAndHeaders(t *testing.T) {
	srv, seen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	s, _ := newTestSession()

	s.SetCookie(" session ", "a b")
	s.SetCookies(urlutil.Params{urlutil.P("theme", "dark"), urlutil.P("unset", nil)})
	require.Equal(t, "session=a%20b&theme=dark", s.Cookies())

	s.SetHeader("X-Api-Key", "secret")
	credential := s.SetBasicAuth("user", "pass")
	require.Equal(t, "dXNlcjpwYXNz", credential)

	s.SetUrl(srv.URL, nil)
	require.True(t, s.Fetch(context.Background()))
	s.SetUrl(srv.URL, nil)
	require.True(t, s.Fetch(context.Background()))

	require.Len(t, *seen, 2)
	for _, req := range *seen {
		require.Equal(t, "session=a%20b&theme=dark", req.header.Get("Cookie"))
		require.Equal(t, "secret", req.header.Get("X-Api-Key"))
		require.Equal(t, "Basic dXNlcjpwYXNz", req.header.Get("Authorization"))
	}

	s.ResetCookies()
	require.Equal(t, "", s.Cookies())
	require.Equal(t, "secret", s.Headers()["X-Api-Key"])

	s.ResetHeaders()
	require.Empty(t, s.Headers())
}

func TestCacheToggles(t *testing.T) {
	s, _ := newTestSession()
	require.True(t, s.IsCacheEnabled())

	s.DisableCache()
	require.True(t, s.IsCacheDisabled())
	require.Equal(t, "no-cache", s.Headers()["Pragma"])
	require.Equal(t, "no-cache", s.Headers()["Cache-Control"])

	s.EnableCache()
	require.True(t, s.IsCacheEnabled())
	require.NotContains(t, s.Headers(), "Pragma")
}

func TestSetRequestMethod(t *testing.T) {
	s, _ := newTestSession()
	require.Equal(t, MethodGet, s.Method())

	s.SetRequestMethod("post")
	require.Equal(t, MethodPost, s.Method())

	s.SetRequestMethod("delete")
	require.Equal(t, MethodGet, s.Method())

	s.SetRequestMethod("")
	require.Equal(t, MethodGet, s.Method())
}

func TestMimeType(t *testing.T) {
	table := []struct {
		format   Format
		expected string
	}{
		{format: FormatJson, expected: "application/json; charset=utf-8"},
		{format: FormatXml, expected: "application/xml; charset=utf-8"},
		{format: FormatHtml, expected: "text/html"},
		{format: FormatBodyText, expected: "text/html"},
		{format: "csv", expected: "application/xhtml+xml"},
	}
	for _, row := range table {
		require.Equal(t, row.expected, MimeType(row.format))
	}
}

func TestPostJson(t *testing.T) {
	srv, seen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"received": true}`))
	})
	s, _ := newTestSession()

	value, err := s.PostJson(
		context.Background(),
		srv.URL+"/submit",
		map[string]any{"name": "philly"},
		urlutil.Params{urlutil.P("key", "k")},
	)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"received": true}, value)

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	require.Equal(t, http.MethodPost, req.method)
	require.Equal(t, "/submit", req.path)
	require.Equal(t, "key=k", req.query)
	require.Equal(t, `{"name":"philly"}`, req.body)
	require.Equal(t, "application/json; charset=utf-8", req.contentType)

	// the convenience getters switch the method back
	_, err = s.GetJson(context.Background(), srv.URL+"/again", nil)
	require.NoError(t, err)
	require.Equal(t, http.MethodGet, (*seen)[1].method)
	require.Equal(t, "", (*seen)[1].body)
}

func TestXml(t *testing.T) {
	srv, seen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?>
<Response Code="OK">
	<Result Name="philly">
		<Item Rank="1">first</Item>
		<Item Rank="2">second</Item>
	</Result>
</Response>`))
	})
	s, _ := newTestSession()

	root, err := s.GetXml(context.Background(), srv.URL, urlutil.Params{urlutil.P("cmd", "GetIndexItemInfo")})
	require.NoError(t, err)
	require.Equal(t, "Response", root.Name)
	code, ok := root.Attr("Code")
	require.True(t, ok)
	require.Equal(t, "OK", code)

	items := root.Path("Result").ChildrenNamed("Item")
	require.Len(t, items, 2)
	require.Equal(t, "second", items[1].Text)
	require.Nil(t, root.Path("Result", "Missing"))

	_, err = s.PostXml(context.Background(), srv.URL, "<Query/>", nil)
	require.NoError(t, err)
	last := (*seen)[len(*seen)-1]
	require.Equal(t, http.MethodPost, last.method)
	require.Equal(t, "<Query/>", last.body)
	require.Equal(t, "application/xml; charset=utf-8", last.contentType)
}

func TestConvenienceValidation(t *testing.T) {
	s, _ := newTestSession()
	ctx := context.Background()

	_, err := s.GetJson(ctx, "", nil)
	require.EqualError(t, err, "Missing parameters")
	_, err = s.PostJson(ctx, "", "{}", nil)
	require.ErrorIs(t, err, ErrMissingParameters)
	_, err = s.GetXml(ctx, "", nil)
	require.ErrorIs(t, err, ErrMissingParameters)
	_, err = s.FetchHtml(ctx, "")
	require.ErrorIs(t, err, ErrMissingParameters)
	_, err = s.FetchBlock(ctx, "", nil)
	require.ErrorIs(t, err, ErrMissingParameters)
}

func TestConvenienceReturnsStatusError(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "bad key"}`))
	})
	s, _ := newTestSession()

	_, err := s.GetJson(context.Background(), srv.URL, nil)
	require.EqualError(t, err, `(403) {"error": "bad key"}`)
}

func TestFetchBlockAndAs(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("line one\nline two"))
	})
	s, _ := newTestSession()
	ctx := context.Background()

	value, err := s.FetchBlock(ctx, srv.URL, func(content string) any {
		return strings.ReplaceAll(content, "\n", "")
	})
	require.NoError(t, err)
	require.Equal(t, "line oneline two", value)

	html, err := s.FetchHtml(ctx, srv.URL)
	require.NoError(t, err)
	require.Equal(t, "line one\nline two", html)

	_, err = s.FetchAs(ctx, srv.URL, FormatJson)
	require.EqualError(t, err, "No data was returned (json)")
}

type faultyTransport struct {
	err error
}

func (f faultyTransport) Perform(context.Context, Request) (Response, error) {
	return Response{}, f.err
}

func TestTransportFaultIsFatal(t *testing.T) {
	rec := &telemetry.Recorder{}
	fault := errors.New("dial tcp: lookup nowhere.invalid: no such host")
	s := NewSession(faultyTransport{err: fault}, rec)

	s.SetUrl("http://nowhere.invalid/", nil)
	require.False(t, s.Fetch(context.Background()))
	require.Equal(t, fault.Error(), s.ErrorMessage())
	require.True(t, IsKind(s.Err(), KindFatal))
	require.ErrorIs(t, s.Err(), fault)

	_, err := s.ParseResponseAs(FormatJson, nil)
	require.EqualError(t, err, fault.Error())

	broken := rec.Reports("broken")
	require.Len(t, broken, 1)
	require.Equal(t, "fetch: session.fetch", broken[0].Id)
}

func TestFetchServerErrorWithDefaultTransport(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("try later"))
	})
	rec := &telemetry.Recorder{}
	transport, err := NewRestyTransport(DefaultTransportOptions(), rec)
	require.NoError(t, err)
	s := NewSession(transport, rec)

	s.SetUrl(srv.URL, nil)
	require.False(t, s.Fetch(context.Background()))
	require.Equal(t, "(500) try later", s.ErrorMessage())
	require.Empty(t, rec.Reports("broken"))
}
