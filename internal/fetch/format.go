package fetch

// Format names how a response body should be decoded and which content type a request carries.
type Format string

const (
	FormatJson     Format = "json"
	FormatXml      Format = "xml"
	FormatHtml     Format = "html"
	FormatBodyText Format = "bodytxt"
	FormatFunction Format = "function"
)

// MimeType maps a format to the content type sent with a request, unknown formats fall back to
// xhtml.
func MimeType(format Format) string {
	switch format {
	case FormatJson:
		return "application/json; charset=utf-8"
	case FormatXml:
		return "application/xml; charset=utf-8"
	case FormatHtml, FormatBodyText:
		return "text/html"
	default:
		return "application/xhtml+xml"
	}
}
