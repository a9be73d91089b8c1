package countycourt

import (
	"context"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"net/url"
	"time"

	"courtwatch-backend/lib/ratelimit"
	"courtwatch-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	browser "github.com/EDDYCJY/fake-useragent"
	"github.com/go-resty/resty/v2"
)

// TransportError marks a single failed round trip: either a non-2xx
// response (StatusCode set) or a network-level failure (Cause set).
// The strategy chain treats these as recoverable.
type TransportError struct {
	StatusCode int
	URL        string
	Cause      error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("request to %s failed: %s", e.URL, e.Cause.Error())
	}
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Client talks to the county's public case index. The county has no API:
// everything is HTML-form emulation, so the client presents itself as a
// browser.
type Client struct {
	baseUrl *url.URL
	http    *resty.Client
	limiter *ratelimit.Limiter
}

type ClientOptions struct {
	BaseUrl string
	// injected so callers (and tests) control the admission budget;
	// never a package-level singleton
	Limiter *ratelimit.Limiter
	// rotate the user agent and route through the cloudflare bypass
	// transport; leave off when pointed at a mirror that would reject
	// unknown TLS fingerprints
	EmulateBrowser bool
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if opts.Limiter == nil {
		return nil, fmt.Errorf("a rate limiter is required")
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	if opts.EmulateBrowser {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
		client.SetHeader("user-agent", browser.Chrome())
	}
	client.SetHeader("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetHeader("accept-language", "en-US,en;q=0.9")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/countycourt/http")

	return &Client{
		baseUrl: baseUrl,
		http:    client,
		limiter: opts.Limiter,
	}, nil
}

// RateLimit exposes the injected limiter for introspection.
func (c *Client) RateLimit() *ratelimit.Limiter {
	return c.limiter
}

// fetch acquires one permit and performs one round trip. Context errors
// from the limiter pass through untouched so cancellation stays
// distinguishable from transport failure.
func (c *Client) fetch(ctx context.Context, method, endpoint string, headers map[string]string, formData map[string]string) (string, error) {
	if err := c.limiter.Admit(ctx); err != nil {
		return "", err
	}

	req := c.http.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if len(formData) > 0 {
		req.SetFormData(formData)
	}

	res, err := req.Execute(method, endpoint)
	if err != nil {
		return "", &TransportError{URL: endpoint, Cause: err}
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		slog.WarnContext(ctx, "county endpoint rejected request",
			"method", method,
			"url", endpoint,
			"status", res.StatusCode(),
		)
		return "", &TransportError{StatusCode: res.StatusCode(), URL: endpoint}
	}
	return res.String(), nil
}

// pageHeaders emulates a browser navigating from the given page, which
// the county's form handler checks
func (c *Client) pageHeaders(page string) map[string]string {
	return map[string]string{
		"referer": c.baseUrl.JoinPath(page).String(),
		"origin":  c.baseUrl.Scheme + "://" + c.baseUrl.Host,
	}
}
