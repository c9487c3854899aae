package textutil

import (
	"fmt"
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases name and removes all of its whitespace so names typed by hand can be
// compared loosely.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

func Trim(s string) string {
	return strings.TrimSpace(s)
}

var newlineRegex = regexp.MustCompile(`\n|\r`)

func StripNewline(s string) string {
	return newlineRegex.ReplaceAllString(s, "")
}

var multiSpaceRegex = regexp.MustCompile(`\s{2,}`)

// StripMultiSpace collapses every run of two or more whitespace characters into one space.
func StripMultiSpace(s string) string {
	return multiSpaceRegex.ReplaceAllString(s, " ")
}

func StripAllSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

// Left returns the first n characters of s.
func Left(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if n > len(runes) {
		return s
	}
	return string(runes[:n])
}

// Right returns the last n characters of s.
func Right(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if n > len(runes) {
		return s
	}
	return string(runes[len(runes)-n:])
}

func InQuotes(s string) string {
	return "'" + s + "'"
}

var allTagsRegex = regexp.MustCompile(`(?i)<\w+(\s+("[^"]*"|'[^']*'|[^>])+)?>|</\w+>`)

// RemoveTags strips every occurrence of the given tag from s, every tag when tag is empty.
// Only the markup goes away, the text in between is kept.
func RemoveTags(s string, tag string) string {
	if tag == "" {
		return allTagsRegex.ReplaceAllString(s, "")
	}
	quoted := regexp.QuoteMeta(tag)
	begin := regexp.MustCompile(fmt.Sprintf(`(?i)<%s[^>]*>`, quoted))
	end := regexp.MustCompile(fmt.Sprintf(`(?i)</%s[^>]?>`, quoted))
	return end.ReplaceAllString(begin.ReplaceAllString(s, ""), "")
}

var htmlUnescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&#39;", "'",
)

// UnescapeHTML undoes the entities &lt; &gt; &amp; and &#39;.
func UnescapeHTML(s string) string {
	return htmlUnescaper.Replace(s)
}

var (
	bodyTagRegex = regexp.MustCompile(`<body.*`)
	anyTagRegex  = regexp.MustCompile(`<.*?>`)
)

// ContentInBodyTag returns the text inside the body tag of an html page with all markup removed.
// Every tag is replaced by a space so words of adjacent elements do not run together. false is
// returned when the page has no body tag.
func ContentInBodyTag(page string) (string, bool) {
	flat := StripNewline(page)
	body := bodyTagRegex.FindString(flat)
	if body == "" {
		return "", false
	}
	body = strings.ReplaceAll(body, "<", " <")
	return anyTagRegex.ReplaceAllString(body, ""), true
}

// ExtractBetween returns every piece of text that follows an occurrence of start and runs up to
// the next occurrence of end. The text before the first start is considered as well, pieces that
// are exactly "..." are ignored.
func ExtractBetween(s, start, end string) []string {
	var out []string
	for _, piece := range strings.Split(s, start) {
		endIndex := strings.Index(piece, end)
		if endIndex <= 0 {
			continue
		}
		content := piece[:endIndex]
		if content == "..." {
			continue
		}
		out = append(out, content)
	}
	return out
}

var (
	spaceAfterComma     = regexp.MustCompile(`,\s+`)
	spaceAfterSemicolon = regexp.MustCompile(`;\s+`)
	anyWhitespace       = regexp.MustCompile(`\s`)
)

// EncodeGa escapes a Google Analytics filter or segment expression: operators are percent encoded,
// whitespace after separators is dropped and the remaining whitespace becomes %20.
func EncodeGa(s string) string {
	pieces := strings.Split(s, "ga:")
	for i, piece := range pieces {
		piece = strings.TrimSpace(piece)
		piece = strings.ReplaceAll(piece, "=", "%3D")
		piece = strings.ReplaceAll(piece, ">", "%3E")
		piece = strings.ReplaceAll(piece, "<", "%3C")
		piece = spaceAfterComma.ReplaceAllString(piece, ",")
		piece = spaceAfterSemicolon.ReplaceAllString(piece, ";")
		piece = anyWhitespace.ReplaceAllString(piece, "%20")
		pieces[i] = piece
	}
	return strings.Join(pieces, "ga:")
}
