package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultTimeout   = 8 * time.Second
	DefaultRetries   = 2
	DefaultBackoff   = 200 * time.Millisecond
	defaultUserAgent = "cardsheet/1.0 (+https://github.com/youruser/cardsheet)"

	acceptImage = "image/webp,image/*;q=0.8,*/*;q=0.5"
	acceptHTML  = "text/html,application/xhtml+xml"
	acceptJSON  = "application/json"
)

// Fetcher performs HTTP GETs with a per-attempt timeout and retries on
// transient statuses. It also reads local descriptors so every strategy can
// share it.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	retries int
	backoff time.Duration
	logger  *zap.Logger
}

// FetcherOption customizes a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout sets the timeout for a single attempt.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) { f.timeout = d }
}

// WithRetries sets the number of extra attempts and the first backoff delay.
// The delay doubles on each further attempt.
func WithRetries(n int, backoff time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.retries = n
		f.backoff = backoff
	}
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) FetcherOption {
	return func(f *Fetcher) { f.logger = l }
}

// NewFetcher wraps a shared client. A nil client falls back to
// http.DefaultClient.
func NewFetcher(client *http.Client, opts ...FetcherOption) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	f := &Fetcher{
		client:  client,
		timeout: DefaultTimeout,
		retries: DefaultRetries,
		backoff: DefaultBackoff,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch resolves a descriptor to an outcome. Failures are returned in the
// outcome, not as errors.
func (f *Fetcher) Fetch(ctx context.Context, d Descriptor) Outcome {
	var (
		data []byte
		err  error
	)
	if d.Origin.Remote() {
		data, err = f.Get(ctx, d.Locator, acceptImage)
	} else {
		data, err = os.ReadFile(d.Locator)
		if err == nil && len(data) == 0 {
			err = fmt.Errorf("empty file %s", d.Locator)
		}
	}
	if err != nil {
		f.logger.Debug("descriptor dropped",
			zap.String("locator", d.Locator),
			zap.Stringer("origin", d.Origin),
			zap.Error(err))
		return failed(d, err)
	}
	return succeeded(d, data)
}

// Get downloads url. Statuses 429/500/502/503/504 and network errors are
// retried; any other non-200 status fails immediately.
func (f *Fetcher) Get(ctx context.Context, url, accept string) ([]byte, error) {
	delay := f.backoff
	var lastErr error
	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}
			delay *= 2
		}
		data, retry, err := f.getOnce(ctx, url, accept)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !retry {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrTransient, lastErr)
}

func (f *Fetcher) getOnce(ctx context.Context, url, accept string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", accept)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, retryableStatus(resp.StatusCode), &StatusError{URL: url, Code: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("reading response body: %w", err)
	}
	if len(body) == 0 {
		return nil, false, errors.New("empty response body from " + url)
	}
	return body, false, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
