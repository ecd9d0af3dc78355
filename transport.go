package gemini

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxResponseSize caps how much of a response body PostForm reads.
const maxResponseSize = 10 * 1024 * 1024

// DefaultUserAgent is sent by HTTPTransport unless UserAgent is set.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"

// HTTPTransport posts form data with browser-like headers over net/http.
type HTTPTransport struct {
	Client    *http.Client
	Origin    string
	UserAgent string
}

// NewHTTPTransport returns a transport whose http.Client enforces timeout.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		Client:    &http.Client{Timeout: timeout},
		Origin:    BaseURL,
		UserAgent: DefaultUserAgent,
	}
}

// PostForm sends form as application/x-www-form-urlencoded and returns status and body.
func (t *HTTPTransport) PostForm(ctx context.Context, rawURL string, form url.Values) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	ua := t.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	if t.Origin != "" {
		req.Header.Set("Origin", t.Origin)
		req.Header.Set("Referer", t.Origin+"/")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, nil
}

var _ Transport = (*HTTPTransport)(nil)
