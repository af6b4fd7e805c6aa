package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure RetryFetcher implements docsearch.Fetcher at compile time.
var _ docsearch.Fetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFetcher wraps a Fetcher with exponential backoff retries so a
// transient failure doesn't drop a page. Not-found errors are permanent
// and returned immediately.
type RetryFetcher struct {
	next   docsearch.Fetcher
	delays []time.Duration
	logger *slog.Logger
}

// RetryOption configures a RetryFetcher.
type RetryOption func(*RetryFetcher)

// WithRetryDelays sets the backoff delays between attempts. The number of
// delays determines the number of retries; pass zero durations in tests to
// retry without waiting.
func WithRetryDelays(delays []time.Duration) RetryOption {
	return func(f *RetryFetcher) {
		f.delays = delays
	}
}

// WithRetryLogger sets the logger used to report retry attempts.
func WithRetryLogger(logger *slog.Logger) RetryOption {
	return func(f *RetryFetcher) {
		f.logger = logger
	}
}

// NewRetryFetcher creates a new RetryFetcher around the given fetcher.
// Defaults to DefaultRetryDelays (3 retries, 4 total attempts).
func NewRetryFetcher(next docsearch.Fetcher, opts ...RetryOption) *RetryFetcher {
	f := &RetryFetcher{
		next:   next,
		delays: DefaultRetryDelays(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the URL, retrying failed attempts with backoff.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := f.next.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		// A missing page stays missing; retrying only delays the build.
		if docsearch.ErrorCode(err) == docsearch.ENOTFOUND {
			return "", err
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if err := ctx.Err(); err != nil {
			return "", err
		}

		f.logger.Warn("retrying fetch", "url", url, "attempt", attempt+2, "error", err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}

// Close delegates to the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}
