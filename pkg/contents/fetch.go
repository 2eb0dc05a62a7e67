package contents

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"

	"github.com/hmajid/pkgtop/pkg/buildinfo"
	"github.com/hmajid/pkgtop/pkg/errors"
	"github.com/hmajid/pkgtop/pkg/httputil"
)

const (
	dialTimeout   = 10 * time.Second
	headerTimeout = 10 * time.Second
)

// Options selects which Contents index to fetch.
type Options struct {
	Arch      string // architecture identifier, e.g. "amd64"
	Mirror    string // mirror base URL; DefaultMirror if empty
	Suite     string // suite/release name; DefaultSuite if empty
	Component string // component name; DefaultComponent if empty
}

func (o *Options) setDefaults() {
	if o.Mirror == "" {
		o.Mirror = DefaultMirror
	}
	if o.Suite == "" {
		o.Suite = DefaultSuite
	}
	if o.Component == "" {
		o.Component = DefaultComponent
	}
}

// Fetcher opens Contents index streams over HTTP.
//
// The client bounds connection and response-header latency but not the
// body read: a Contents stream is consumed for minutes, so an overall
// request timeout would cut it off mid-index.
type Fetcher struct {
	client   *http.Client
	agent    string
	attempts int
	delay    time.Duration
	logger   *log.Logger
}

// NewFetcher creates a Fetcher that logs fallback decisions to logger.
func NewFetcher(logger *log.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: dialTimeout}).DialContext,
				ResponseHeaderTimeout: headerTimeout,
			},
		},
		agent:    buildinfo.UserAgent(),
		attempts: 3,
		delay:    time.Second,
		logger:   logger,
	}
}

// decodeFunc wraps a compressed body in a format-specific decompressor.
type decodeFunc func(io.Reader) (io.Reader, io.Closer, error)

func decodeGzip(r io.Reader) (io.Reader, io.Closer, error) {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return nil, nil, err
	}
	return gzr, gzr, nil
}

func decodeXZ(r io.Reader) (io.Reader, io.Closer, error) {
	xzr, err := xz.NewReader(r)
	if err != nil {
		return nil, nil, err
	}
	return xzr, nil, nil
}

// Open fetches the Contents index for opts and returns a line stream over
// its decompressed body. It tries the gzip candidate first and falls back
// to xz. A 404 on a candidate is expected (not every mirror publishes both
// formats) and logged at debug level; transport and decode failures are
// logged and likewise treated as "candidate unavailable". Transient
// failures (connection errors, 5xx) are retried with backoff before a
// candidate is given up on.
//
// If both candidates are unavailable, Open fails with an error naming both
// attempted URLs. There is no retry beyond the two-candidate fallback.
//
// The caller owns the returned stream and must Close it.
func (f *Fetcher) Open(ctx context.Context, opts Options) (*Stream, error) {
	opts.setDefaults()
	gzURL, xzURL := BuildURLs(opts.Arch, opts.Mirror, opts.Suite, opts.Component)

	candidates := []struct {
		url    string
		decode decodeFunc
	}{
		{gzURL, decodeGzip},
		{xzURL, decodeXZ},
	}

	for _, cand := range candidates {
		stream, err := f.open(ctx, cand.url, cand.decode)
		switch {
		case err == nil:
			f.logger.Debug("opened contents stream", "url", cand.url)
			return stream, nil
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case errors.Is(err, errors.ErrCodeNotFound):
			f.logger.Debug("contents file not found", "url", cand.url)
		default:
			f.logger.Error("contents file unavailable", "url", cand.url, "err", err)
		}
	}

	return nil, errors.New(errors.ErrCodeUnavailable,
		"could not find Contents file for %q, tried:\n  %s\n  %s", opts.Arch, gzURL, xzURL)
}

// open fetches one candidate URL and wraps its body in a decompressing
// line stream.
func (f *Fetcher) open(ctx context.Context, url string, decode decodeFunc) (*Stream, error) {
	var body io.ReadCloser
	err := httputil.Retry(ctx, f.attempts, f.delay, func() error {
		var err error
		body, err = f.get(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}

	decoded, closer, err := decode(body)
	if err != nil {
		body.Close()
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decoding %s", url)
	}

	closers := []io.Closer{body}
	if closer != nil {
		closers = append([]io.Closer{closer}, closers...)
	}
	return newStream(url, decoded, closers...), nil
}

// get performs a single GET attempt. Transport failures and 5xx responses
// are wrapped as retryable; 404 maps to the not-found code that triggers
// candidate fallback without retrying.
func (f *Fetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "building request for %s", url)
	}
	req.Header.Set("User-Agent", f.agent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{
			Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetching %s", url),
		}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, errors.New(errors.ErrCodeNotFound, "%s returned 404", url)
	case resp.StatusCode >= 500:
		resp.Body.Close()
		return nil, &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeNetwork, "%s returned status %d", url, resp.StatusCode),
		}
	default:
		resp.Body.Close()
		return nil, errors.New(errors.ErrCodeNetwork, "%s returned status %d", url, resp.StatusCode)
	}
}
