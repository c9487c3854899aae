package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sheetfetch/internal/assert"
	"sheetfetch/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

type Request struct {
	Url         string
	Method      string
	Header      map[string]string
	Payload     string
	ContentType string
}

type Response struct {
	StatusCode int
	Body       string
	Header     http.Header
}

// Transport performs a single http request. An error is only returned when no response was
// received at all, a response with any status is not an error.
type Transport interface {
	Perform(ctx context.Context, req Request) (Response, error)
}

type TransportOptions struct {
	Timeout   time.Duration
	UserAgent string
	// RequestsPerSecond limits the outgoing request rate, zero means unlimited.
	RequestsPerSecond float64
	Burst             int
	BypassCloudflare  bool
	// DumpDir, when set, receives a text file for every request/response exchange.
	DumpDir string
}

func DefaultTransportOptions() TransportOptions {
	return TransportOptions{
		Timeout:           30 * time.Second,
		UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
		RequestsPerSecond: 2,
		Burst:             2,
	}
}

type RestyTransport struct {
	http *resty.Client
}

func NewRestyTransport(opts TransportOptions, tel telemetry.API) (RestyTransport, error) {
	assert.NotNil(tel)

	client := resty.New()
	if opts.BypassCloudflare {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		// burst >= requests per second just means that no requests will be dropped
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(client, tel)
	if opts.DumpDir != "" {
		out, err := telemetry.NewFilesystemOutput(opts.DumpDir)
		if err != nil {
			return RestyTransport{}, fmt.Errorf("dump directory: %w", err)
		}
		telemetry.DumpResty(client, out)
	}

	return RestyTransport{http: client}, nil
}

func (t RestyTransport) Perform(ctx context.Context, req Request) (Response, error) {
	r := t.http.R().
		SetContext(ctx).
		SetHeaders(req.Header)
	if req.ContentType != "" {
		r.SetHeader("Content-Type", req.ContentType)
	}
	if req.Payload != "" {
		r.SetBody(req.Payload)
	}

	method := strings.ToUpper(req.Method)
	if method == "" {
		method = resty.MethodGet
	}
	res, err := r.Execute(method, req.Url)
	if err != nil {
		return Response{}, err
	}
	return Response{
		StatusCode: res.StatusCode(),
		Body:       res.String(),
		Header:     res.Header(),
	}, nil
}
