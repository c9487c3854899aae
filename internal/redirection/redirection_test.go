package redirection

import (
	"testing"

	"sheetfetch/internal/table"

	"github.com/stretchr/testify/require"
)

func TestHtaccessRedirect(t *testing.T) {
	cases := []struct {
		old      string
		new      string
		expected string
	}{
		{old: "http://old.com/blog/post?id=1", new: "http://new.com/post", expected: "Redirect 301 /blog/post http://new.com/post"},
		{old: "http://old.com", new: "http://new.com/", expected: "Redirect 301 / http://new.com/"},
		{old: "old.com/about", new: "/about-us", expected: "Redirect 301 /about /about-us"},
	}

	for _, row := range cases {
		line, err := HtaccessRedirect(row.old, row.new)
		require.NoError(t, err)
		require.Equal(t, row.expected, line)
	}

	_, err := HtaccessRedirect("not a url", "http://new.com")
	require.Error(t, err)
}

func TestHtaccessRedirects(t *testing.T) {
	lines := HtaccessRedirects(table.FromStrings([][]string{
		{"http://old.com/a", "http://new.com/a"},
		{"bad url", "http://new.com/b"},
	}))
	require.Len(t, lines, 2)
	require.Equal(t, "Redirect 301 /a http://new.com/a", lines[0][0].Text())
	require.Equal(t, `could not parse url "bad url"`, lines[1][0].Text())
}
