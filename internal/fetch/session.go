package fetch

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"sheetfetch/internal/assert"
	"sheetfetch/internal/components/telemetry"
	"sheetfetch/internal/textutil"
	"sheetfetch/internal/urlutil"
)

const (
	report_session_fetch             = "session.fetch"
	report_session_parse_response_as = "session.parse-response-as"
)

const (
	headerPragma        = "Pragma"
	headerCacheControl  = "Cache-Control"
	headerCookie        = "Cookie"
	headerAuthorization = "Authorization"
	noCache             = "no-cache"
)

const (
	MethodGet  = "get"
	MethodPost = "post"
)

// Session accumulates the state of a request (url, headers, cookies, method, payload and content
// type), performs it and keeps the last response around for decoding.
//
// Headers and cookies persist between requests until they are reset explicitly, so a session
// keeps its authentication. Use one session per logical invocation, it is not safe for
// concurrent use.
type Session struct {
	transport Transport
	tel       telemetry.API

	url         string
	header      map[string]string
	method      string
	payload     string
	contentType string

	last *Response
	err  *Error
}

func NewSession(transport Transport, tel telemetry.API) *Session {
	assert.NotNil(transport)
	assert.NotNil(tel)

	return &Session{
		transport: transport,
		tel:       telemetry.NewScopedAPI("fetch", tel),
		header:    map[string]string{},
		method:    MethodGet,
	}
}

// SetUrl stores the target url, params are appended as an encoded query string when non-nil.
func (s *Session) SetUrl(uri string, params urlutil.Params) string {
	if params == nil {
		s.url = uri
	} else {
		s.url = uri + "?" + params.Encode()
	}
	return s.url
}

func (s *Session) Url() string {
	return s.url
}

// SetCookie appends `name=value` to the cookie header, pairs are joined with `&`.
func (s *Session) SetCookie(name, value string) {
	pair := urlutil.EncodeURIComponent(strings.TrimSpace(name)) + "=" +
		urlutil.EncodeURIComponent(strings.TrimSpace(value))
	existing := s.header[headerCookie]
	if existing == "" {
		s.header[headerCookie] = pair
		return
	}
	s.header[headerCookie] = existing + "&" + pair
}

func (s *Session) SetCookies(cookies urlutil.Params) {
	for _, c := range cookies {
		if c.Value == nil {
			continue
		}
		s.SetCookie(c.Key, fmt.Sprint(c.Value))
	}
}

func (s *Session) Cookies() string {
	return s.header[headerCookie]
}

func (s *Session) ResetCookies() {
	delete(s.header, headerCookie)
}

func (s *Session) SetHeader(name, value string) {
	s.header[name] = value
}

// Headers returns a copy of the request headers.
func (s *Session) Headers() map[string]string {
	out := make(map[string]string, len(s.header))
	for k, v := range s.header {
		out[k] = v
	}
	return out
}

func (s *Session) ResetHeaders() {
	s.header = map[string]string{}
}

func (s *Session) DisableCache() {
	s.header[headerPragma] = noCache
	s.header[headerCacheControl] = noCache
}

func (s *Session) EnableCache() {
	delete(s.header, headerPragma)
	delete(s.header, headerCacheControl)
}

// IsCacheEnabled is true exactly when neither of the cache control headers is set.
func (s *Session) IsCacheEnabled() bool {
	_, pragma := s.header[headerPragma]
	_, cacheControl := s.header[headerCacheControl]
	return !pragma && !cacheControl
}

func (s *Session) IsCacheDisabled() bool {
	return !s.IsCacheEnabled()
}

// SetRequestMethod accepts "get" or "post", anything else means "get".
func (s *Session) SetRequestMethod(method string) {
	switch strings.ToLower(method) {
	case MethodPost:
		s.method = MethodPost
	default:
		s.method = MethodGet
	}
}

func (s *Session) Method() string {
	return s.method
}

func (s *Session) SetPayload(payload string) {
	s.payload = payload
}

func (s *Session) SetContentType(format Format) {
	s.contentType = MimeType(format)
}

func (s *Session) ContentType() string {
	return s.contentType
}

// SetBasicAuth sets the Authorization header and returns the base64 credential.
func (s *Session) SetBasicAuth(user, pass string) string {
	credential := base64.StdEncoding.EncodeToString([]byte(user + ":" + pass))
	s.header[headerAuthorization] = "Basic " + credential
	return credential
}

// Fetch performs the request, it returns true only when the response status is 200. The reason
// of a false return is available through Err and ErrorMessage.
func (s *Session) Fetch(ctx context.Context) bool {
	s.last = nil
	s.err = nil

	res, err := s.transport.Perform(ctx, Request{
		Url:         s.url,
		Method:      s.method,
		Header:      s.Headers(),
		Payload:     s.payload,
		ContentType: s.contentType,
	})
	if err != nil {
		s.tel.ReportBroken(report_session_fetch, err, s.method, s.url)
		s.err = &Error{Kind: KindFatal, Err: err}
		return false
	}

	s.last = &res
	if res.StatusCode != http.StatusOK {
		s.err = &Error{
			Kind:       KindTransport,
			StatusCode: res.StatusCode,
			Body:       res.Body,
		}
		return false
	}
	return true
}

// Err returns the failure of the last fetch, nil if it succeeded.
func (s *Session) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

// ErrorMessage is `(<status>) <body>` for a failed response or the fault message of a request
// that never completed.
func (s *Session) ErrorMessage() string {
	if s.err == nil {
		return ""
	}
	return s.err.Error()
}

func (s *Session) StatusCode() int {
	if s.last == nil {
		return 0
	}
	return s.last.StatusCode
}

func (s *Session) ResponseHeaders() http.Header {
	if s.last == nil {
		return nil
	}
	return s.last.Header
}

func (s *Session) decodeError(format Format, err error) error {
	if err != nil {
		s.tel.ReportWarning(report_session_parse_response_as, format, err)
	}
	return &Error{Kind: KindDecode, Format: format, Err: err}
}

// ParseResponseAs decodes the body of the last response.
//
//   - json: the decoded json value
//   - xml: the root *XmlElement
//   - bodytxt: the text inside the body tag without markup
//   - function: the result of block called with the raw body
//   - html and anything else: the raw body
//
// A request that never completed returns its fault instead, a missing or undecodable value
// returns a KindDecode error.
func (s *Session) ParseResponseAs(format Format, block func(content string) any) (any, error) {
	if s.err != nil && s.err.Kind == KindFatal {
		return nil, s.err
	}
	if s.last == nil {
		return nil, s.decodeError(format, nil)
	}
	content := s.last.Body

	var value any
	switch format {
	case FormatJson:
		err := json.Unmarshal([]byte(content), &value)
		if err != nil {
			return nil, s.decodeError(format, err)
		}
	case FormatXml:
		root, err := parseXml(content)
		if err != nil {
			return nil, s.decodeError(format, err)
		}
		value = root
	case FormatBodyText:
		text, ok := textutil.ContentInBodyTag(content)
		if !ok {
			return nil, s.decodeError(format, nil)
		}
		value = text
	case FormatFunction:
		if block == nil {
			return nil, ErrMissingParameters
		}
		value = block(content)
	default:
		value = content
	}

	if value == nil {
		return nil, s.decodeError(format, nil)
	}
	return value, nil
}

func (s *Session) get(ctx context.Context, uri string, params urlutil.Params) error {
	s.SetUrl(uri, params)
	s.SetRequestMethod(MethodGet)
	s.SetPayload("")
	if !s.Fetch(ctx) {
		return s.Err()
	}
	return nil
}

func (s *Session) post(ctx context.Context, uri string, params urlutil.Params, format Format, payload string) error {
	s.SetUrl(uri, params)
	s.SetContentType(format)
	s.SetRequestMethod(MethodPost)
	s.SetPayload(payload)
	if !s.Fetch(ctx) {
		return s.Err()
	}
	return nil
}

func (s *Session) GetJson(ctx context.Context, uri string, params urlutil.Params) (any, error) {
	if uri == "" {
		return nil, ErrMissingParameters
	}
	err := s.get(ctx, uri, params)
	if err != nil {
		return nil, err
	}
	return s.ParseResponseAs(FormatJson, nil)
}

// PostJson sends payload as json, strings are sent as they are and anything else is marshalled.
func (s *Session) PostJson(ctx context.Context, uri string, payload any, params urlutil.Params) (any, error) {
	if uri == "" {
		return nil, ErrMissingParameters
	}
	body, err := jsonPayload(payload)
	if err != nil {
		return nil, err
	}
	err = s.post(ctx, uri, params, FormatJson, body)
	if err != nil {
		return nil, err
	}
	return s.ParseResponseAs(FormatJson, nil)
}

func jsonPayload(payload any) (string, error) {
	switch p := payload.(type) {
	case nil:
		return "", nil
	case string:
		return p, nil
	case []byte:
		return string(p), nil
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", &Error{Kind: KindValidation, Message: err.Error(), Err: err}
	}
	return string(encoded), nil
}

func (s *Session) xmlResult(value any, err error) (*XmlElement, error) {
	if err != nil {
		return nil, err
	}
	return value.(*XmlElement), nil
}

func (s *Session) GetXml(ctx context.Context, uri string, params urlutil.Params) (*XmlElement, error) {
	if uri == "" {
		return nil, ErrMissingParameters
	}
	err := s.get(ctx, uri, params)
	if err != nil {
		return nil, err
	}
	return s.xmlResult(s.ParseResponseAs(FormatXml, nil))
}

func (s *Session) PostXml(ctx context.Context, uri string, payload string, params urlutil.Params) (*XmlElement, error) {
	if uri == "" {
		return nil, ErrMissingParameters
	}
	err := s.post(ctx, uri, params, FormatXml, payload)
	if err != nil {
		return nil, err
	}
	return s.xmlResult(s.ParseResponseAs(FormatXml, nil))
}

// FetchHtml returns the raw body of uri.
func (s *Session) FetchHtml(ctx context.Context, uri string) (string, error) {
	value, err := s.FetchAs(ctx, uri, FormatHtml)
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

func (s *Session) FetchAs(ctx context.Context, uri string, format Format) (any, error) {
	if uri == "" {
		return nil, ErrMissingParameters
	}
	err := s.get(ctx, uri, nil)
	if err != nil {
		return nil, err
	}
	return s.ParseResponseAs(format, nil)
}

// FetchBlock fetches uri and hands the raw body to block, its result is returned.
func (s *Session) FetchBlock(ctx context.Context, uri string, block func(content string) any) (any, error) {
	if uri == "" {
		return nil, ErrMissingParameters
	}
	err := s.get(ctx, uri, nil)
	if err != nil {
		return nil, err
	}
	return s.ParseResponseAs(FormatFunction, block)
}
