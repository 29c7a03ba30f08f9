package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dtnitsch/site-growth-analyzer/models"
)

// ErrorKind classifies why a fetch failed.
type ErrorKind string

const (
	KindRequest  ErrorKind = "request"
	KindTimeout  ErrorKind = "timeout"
	KindStatus   ErrorKind = "status"
	KindRead     ErrorKind = "read"
	KindTooLarge ErrorKind = "too_large"
)

// FetchError is the single error value surfaced for any failed fetch.
type FetchError struct {
	Kind       ErrorKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("failed to fetch %s: status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Page is a successfully fetched response.
type Page struct {
	Body        []byte
	Elapsed     time.Duration
	FinalURL    string
	StatusCode  int
	ContentType string
}

type Options struct {
	Timeout      time.Duration
	MaxBodyBytes int64
	UserAgent    string
}

type Fetcher struct {
	client       *http.Client
	maxBodyBytes int64
	userAgent    string
}

func NewFetcher(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = models.DefaultFetchTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = models.DefaultMaxBodyBytes
	}
	if opts.UserAgent == "" {
		opts.UserAgent = models.DefaultUserAgent
	}
	return &Fetcher{
		client:       &http.Client{Timeout: opts.Timeout},
		maxBodyBytes: opts.MaxBodyBytes,
		userAgent:    opts.UserAgent,
	}
}

// Fetch GETs url and reads the whole body. Elapsed covers the request and
// the body read. Any non-2xx status is an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindRequest, URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: classify(err), URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{Kind: KindStatus, URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		kind := KindRead
		if classify(err) == KindTimeout {
			kind = KindTimeout
		}
		return nil, &FetchError{Kind: kind, URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if int64(len(body)) > f.maxBodyBytes {
		return nil, &FetchError{Kind: KindTooLarge, URL: url, Err: fmt.Errorf("response body exceeds %d bytes", f.maxBodyBytes)}
	}

	return &Page{
		Body:        body,
		Elapsed:     time.Since(start),
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func classify(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindRequest
}
