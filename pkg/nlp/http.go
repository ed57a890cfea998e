package nlp

import (
	"context"
	"net/http"
	"net/http/httptrace"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/httptrace/otelhttptrace"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/nerview/nerview/internal"
)

// NewRetryableHTTPClient returns a new retryable HTTP client with the given retryMax and timeout.
// The retryable HTTP transport is wrapped in an OpenTelemetry transport.
func NewRetryableHTTPClient(retryMax int, timeout time.Duration) *http.Client {
	retryableHTTPClient := retryablehttp.NewClient()
	retryableHTTPClient.RetryMax = retryMax
	retryableHTTPClient.HTTPClient.Timeout = timeout
	retryableHTTPClient.Logger = internal.NewLeveledLogrus(log)
	retryableHTTPClient.Backoff = retryablehttp.DefaultBackoff
	retryableHTTPClient.CheckRetry = retryablehttp.DefaultRetryPolicy
	// hand the final response back instead of retryablehttp's "giving up" error
	retryableHTTPClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(
			retryableHTTPClient.StandardClient().Transport,
			otelhttp.WithClientTrace(func(ctx context.Context) *httptrace.ClientTrace {
				return otelhttptrace.NewClientTrace(ctx)
			}),
		),
	}

	return httpClient
}
