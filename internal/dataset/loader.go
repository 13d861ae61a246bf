package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrLoad indicates the dataset could not be fetched or did not validate.
var ErrLoad = errors.New("dataset: load failed")

// Loader fetches and validates the dataset, memoizing the first successful
// load for the process lifetime. Concurrent first calls share one underlying
// fetch. A failed attempt is not memoized: the next call starts a fresh one.
type Loader struct {
	url       string
	http      *http.Client
	validator *Validator
	log       *zap.Logger

	mu       sync.Mutex
	cached   *Dataset
	inflight *loadCall
}

type loadCall struct {
	done chan struct{}
	ds   *Dataset
	err  error
}

// NewLoader builds a loader for the dataset at url.
func NewLoader(url string, logger *zap.Logger) (*Loader, error) {
	v, err := NewValidator()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		url:       url,
		http:      &http.Client{Timeout: 10 * time.Second},
		validator: v,
		log:       logger,
	}, nil
}

// Load returns the memoized dataset, joining the in-flight fetch when one is
// already running. The fetch itself is not bound to the caller's context so
// one cancelled request cannot fail the shared attempt.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	l.mu.Lock()
	if l.cached != nil {
		ds := l.cached
		l.mu.Unlock()
		return ds, nil
	}
	if l.inflight == nil {
		call := &loadCall{done: make(chan struct{})}
		l.inflight = call
		go l.run(call)
	}
	call := l.inflight
	l.mu.Unlock()

	select {
	case <-call.done:
		return call.ds, call.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Loader) run(call *loadCall) {
	ds, err := l.fetch(context.Background())

	l.mu.Lock()
	if err == nil {
		l.cached = ds
	}
	l.inflight = nil
	l.mu.Unlock()

	if err != nil {
		l.log.Error("dataset load failed", zap.String("url", l.url), zap.Error(err))
	} else {
		l.log.Info("dataset loaded", zap.String("url", l.url), zap.Int("states", len(ds.States)))
	}
	call.ds, call.err = ds, err
	close(call.done)
}

func (l *Loader) fetch(ctx context.Context) (*Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrLoad, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch: %v", ErrLoad, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrLoad, resp.StatusCode)
	}

	var ds Dataset
	if err := json.NewDecoder(resp.Body).Decode(&ds); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrLoad, err)
	}
	if err := l.validator.Validate(&ds); err != nil {
		return nil, err
	}
	return &ds, nil
}
