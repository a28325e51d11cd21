package fetch

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/simonhull/firebird-suite/wren/internal/logger"
)

// ClientOption customises the HTTP client built by NewHTTPClient.
type ClientOption func(*retryablehttp.Client)

// WithMaxRetries sets the maximum number of retries.
func WithMaxRetries(maxRetries int) ClientOption {
	return func(client *retryablehttp.Client) {
		client.RetryMax = maxRetries
	}
}

// WithRetryWait sets the bounds of the backoff between retries.
func WithRetryWait(waitMin, waitMax time.Duration) ClientOption {
	return func(client *retryablehttp.Client) {
		client.RetryWaitMin = waitMin
		client.RetryWaitMax = waitMax
	}
}

// WithLogger routes retry logging to l.
func WithLogger(l logger.Logger) ClientOption {
	return func(client *retryablehttp.Client) {
		client.Logger = retryablehttp.LeveledLogger(logger.NewLeveled(l))
	}
}

// NewHTTPClient returns a stdlib client that retries connection errors and
// 5xx responses (except 501) with exponential backoff. Intermediate failures
// are logged at WARN.
func NewHTTPClient(options ...ClientOption) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Transport = cleanhttp.DefaultPooledTransport()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = retryablehttp.LeveledLogger(logger.NewLeveled(logger.Default().WithFields(logger.F("subsystem", "fetch"))))

	for _, option := range options {
		option(retryClient)
	}

	client := retryClient.StandardClient()
	// Release archives are several megabytes
	client.Timeout = 5 * time.Minute
	return client
}
