package proxymakers

import (
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the service origin plus the /api/ prefix. It can be
// replaced at link time with -ldflags "-X github.com/s0up4200/proxymakers/proxymakers.DefaultBaseURL=...".
var DefaultBaseURL = "https://proxymakers.com/api/"

const (
	// DefaultTimeout bounds a single API call
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent with every request
	DefaultUserAgent = "proxymakers-go"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL    string
	timeout    time.Duration
	timeoutSet bool
	userAgent  string
	httpClient *http.Client
	debug      bool
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
}

// WithBaseURL points the client at another deployment of the API.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL == "" {
			return
		}
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		o.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
			o.timeoutSet = true
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithHTTPClient uses the given http.Client as the underlying transport.
// Its Timeout is overridden only when WithTimeout is also given.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithDebug dumps requests and responses through the client's logger.
// The bearer token is redacted from the dump.
func WithDebug(debug bool) Option {
	return func(o *clientOptions) {
		o.debug = debug
	}
}
