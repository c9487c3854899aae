package commands

import (
	"testing"

	"sheetfetch/internal/fetch"
	"sheetfetch/internal/table"
	"sheetfetch/internal/urlutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParsePairs(t *testing.T) {
	params, err := parsePairs([]string{"q=seo tools", " num=10", "empty="}, "=")
	require.NoError(t, err)
	require.Equal(t, urlutil.Params{
		urlutil.P("q", "seo tools"),
		urlutil.P("num", "10"),
		urlutil.P("empty", ""),
	}, params)

	headers, err := parsePairs([]string{"Accept: text/html"}, ":")
	require.NoError(t, err)
	require.Equal(t, "Accept", headers[0].Key)

	_, err = parsePairs([]string{"novalue"}, "=")
	require.Error(t, err)
}

func TestResponseTable(t *testing.T) {
	cases := []struct {
		name     string
		value    any
		columns  table.ColumnSpec
		expected [][]string
	}{
		{
			name: "records",
			value: []any{
				map[string]any{"city": "philly", "population": 1500000.0},
				map[string]any{"city": "pittsburgh"},
			},
			expected: [][]string{
				{"city", "population"},
				{"philly", "1500000"},
				{"pittsburgh", ""},
			},
		},
		{
			name: "records filtered",
			value: []any{
				map[string]any{"city": "philly", "population": 1500000.0},
			},
			columns: table.Names("population", "city"),
			expected: [][]string{
				{"population", "city"},
				{"1500000", "philly"},
			},
		},
		{
			name:  "single object",
			value: map[string]any{"ok": true},
			expected: [][]string{
				{"ok"},
				{"true"},
			},
		},
		{
			name: "rows",
			value: []any{
				[]any{"keyword", "rank"},
				[]any{"seo", 3.0},
			},
			columns: table.Names("rank"),
			expected: [][]string{
				{"3"},
			},
		},
		{
			name:  "scalar",
			value: "plain body",
			expected: [][]string{
				{"value"},
				{"plain body"},
			},
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			got := responseTable(test.value, test.columns).Texts()
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestXmlTable(t *testing.T) {
	root := &fetch.XmlElement{
		Name: "feed",
		Children: []*fetch.XmlElement{
			{Name: "title", Text: "Rankings"},
			{Name: "entry", Children: []*fetch.XmlElement{
				{Name: "rank", Text: "4"},
			}},
		},
	}

	got := xmlTable(root).Texts()
	require.Equal(t, [][]string{
		{"path", "text"},
		{"/feed/title", "Rankings"},
		{"/feed/entry/rank", "4"},
	}, got)
}
