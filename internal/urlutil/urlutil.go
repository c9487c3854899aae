package urlutil

import (
	"fmt"
	"regexp"
	"strings"
)

// Param is a single query parameter, a nil Value means the parameter is absent.
type Param struct {
	Key   string
	Value any
}

// Params keeps query parameters in insertion order.
type Params []Param

func P(key string, value any) Param {
	return Param{Key: key, Value: value}
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Encode renders the parameters as a query string, encoding keys and values. Parameters with a
// nil value are skipped.
func (p Params) Encode() string {
	pairs := make([]string, 0, len(p))
	for _, param := range p {
		if param.Value == nil {
			continue
		}
		pairs = append(pairs, EncodeURIComponent(param.Key)+"="+EncodeURIComponent(formatValue(param.Value)))
	}
	return strings.Join(pairs, "&")
}

// HashToParam renders every parameter as `key=value` joined by `&` without any encoding.
func HashToParam(p Params) string {
	pairs := make([]string, 0, len(p))
	for _, param := range p {
		pairs = append(pairs, param.Key+"="+formatValue(param.Value))
	}
	return strings.Join(pairs, "&")
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

const upperhex = "0123456789ABCDEF"

// EncodeURIComponent percent-encodes every byte of s except the unreserved characters
// A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func EncodeURIComponent(s string) string {
	var out strings.Builder
	out.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			out.WriteByte(c)
			continue
		}
		out.WriteByte('%')
		out.WriteByte(upperhex[c>>4])
		out.WriteByte(upperhex[c&15])
	}
	return out.String()
}

// Builder accumulates parameters for a base url, dropping nil and empty values.
type Builder struct {
	base   string
	params Params
}

func New(base string) *Builder {
	return &Builder{base: base}
}

func (b *Builder) AddParams(params Params) *Builder {
	for _, p := range params {
		if p.Value == nil || formatValue(p.Value) == "" {
			continue
		}
		b.params = append(b.params, p)
	}
	return b
}

func (b *Builder) String() string {
	query := HashToParam(b.params)
	if b.base == "" {
		return query
	}
	return b.base + "?" + query
}

var parseUrlRegex = regexp.MustCompile(`^(?:([A-Za-z]+):)?(\/{0,3})([0-9.\-A-Za-z]+)(?::(\d+))?(?:\/([^?#]*))?(?:\?([^#]*))?(?:#(.*))?$`)

// Parts are the pieces of a url, Path excludes its leading slash.
type Parts struct {
	Url    string
	Scheme string
	Slash  string
	Host   string
	Port   string
	Path   string
	Query  string
	Hash   string
}

// PartNames lists the pieces of Parts in the order Values returns them.
var PartNames = []string{"url", "scheme", "slash", "host", "port", "path", "query", "hash"}

func (p Parts) Values() []string {
	return []string{p.Url, p.Scheme, p.Slash, p.Host, p.Port, p.Path, p.Query, p.Hash}
}

// Parse splits raw into its pieces, false is returned when raw does not look like a url.
func Parse(raw string) (Parts, bool) {
	groups := parseUrlRegex.FindStringSubmatch(raw)
	if groups == nil {
		return Parts{}, false
	}
	return Parts{
		Url:    groups[0],
		Scheme: groups[1],
		Slash:  groups[2],
		Host:   groups[3],
		Port:   groups[4],
		Path:   groups[5],
		Query:  groups[6],
		Hash:   groups[7],
	}, true
}

var (
	schemeRegex       = regexp.MustCompile(`(?i)http(s)?://`)
	leadingSchemeRgx  = regexp.MustCompile(`(?i)^http(s)?://`)
	leadingWwwRegex   = regexp.MustCompile(`(?i)^www\.`)
	trailingPathRegex = regexp.MustCompile(`/.*$`)
	domainRegex       = regexp.MustCompile(`((www)\.)?.*(\w+)\.([\w\.]{2,6})`)
)

// StripScheme removes every http:// or https:// from u.
func StripScheme(u string) string {
	return schemeRegex.ReplaceAllString(u, "")
}

// DomainName extracts the bare domain out of a url, without scheme, www prefix or path.
func DomainName(u string) (string, bool) {
	match := domainRegex.FindString(u)
	if match == "" {
		return "", false
	}
	match = leadingSchemeRgx.ReplaceAllString(match, "")
	match = leadingWwwRegex.ReplaceAllString(match, "")
	match = trailingPathRegex.ReplaceAllString(match, "")
	return match, true
}

// HasPath reports whether u has something after its host.
func HasPath(u string) bool {
	segments := len(strings.Split(u, "/"))
	if strings.Contains(u, "http") {
		return segments > 4
	}
	return segments > 2
}

// RangeToURLString encodes every value and joins them with commas.
func RangeToURLString(values []string) string {
	encoded := make([]string, len(values))
	for i, v := range values {
		encoded[i] = EncodeURIComponent(v)
	}
	return strings.Join(encoded, ",")
}
