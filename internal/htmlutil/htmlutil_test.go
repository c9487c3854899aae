package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetAnchors(t *testing.T) {
	doc, err := ParseDocument(`<ul>
		<li><a href="/a?x=1">  First
			link </a></li>
		<li><a href="http://b.example/">Second</a></li>
		<li><a href="%zz">broken</a></li>
	</ul>`)
	require.NoError(t, err)

	anchors := GetAnchors(doc.Find("a"))
	require.Equal(t, []Anchor{
		{Name: "First link", Href: "/a?x=1"},
		{Name: "Second", Href: "http://b.example/"},
	}, anchors)
}

func TestGetText(t *testing.T) {
	doc, err := ParseDocument(`<p>Hello <b>there</b></p>`)
	require.NoError(t, err)
	require.Equal(t, "Hello there", GetText(doc.Find("p").Nodes[0]))
}

func TestCleanText(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{in: "First\n\t\tlink", expected: "First link"},
		{in: "  Seer \r\n Interactive  ", expected: "Seer Interactive"},
		{in: "tab\tseparated", expected: "tab separated"},
		{in: "bell\a", expected: "bell"},
		{in: "", expected: ""},
	}
	for _, test := range cases {
		require.Equal(t, test.expected, CleanText(test.in), "input %q", test.in)
	}
}
