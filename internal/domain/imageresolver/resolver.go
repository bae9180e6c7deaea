// Package imageresolver turns raw image references into loadable URLs,
// memoising resolution results and probing targets with bounded retries.
package imageresolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"brandkit-server-go/internal/domain/imageref"
	"brandkit-server-go/internal/platform/errors"
	"brandkit-server-go/internal/platform/logging"
)

// State is the terminal display state of a resolution request.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "loading"
	}
}

// Result is what a caller renders: either a loadable URL or a placeholder.
type Result struct {
	State State
	URL   string
}

// Request describes one display-context resolution.
type Request struct {
	Source    string
	Thumbnail bool
	// Fallback is consulted once, only after the primary source is
	// exhausted, and only when it differs from Source.
	Fallback string
}

// StorageLookup resolves a bare object filename to a publicly fetchable URL.
type StorageLookup interface {
	PublicURL(ctx context.Context, filename string) (string, error)
}

// Prober verifies that a resolved URL actually serves an image.
type Prober interface {
	Probe(ctx context.Context, url string) error
}

const (
	thumbnailWidth   = "400"
	thumbnailQuality = "80"
)

// Options configures a Resolver. Zero fields fall back to production defaults.
type Options struct {
	Lookup      StorageLookup
	Cache       Cache
	Prober      Prober
	Clock       Clock
	Logger      *logging.Logger
	LoadTimeout time.Duration
	MaxAttempts int
	RetryStep   time.Duration
}

// Resolver resolves, probes, and caches image references.
type Resolver struct {
	lookup      StorageLookup
	cache       Cache
	prober      Prober
	clock       Clock
	logger      *logging.Logger
	loadTimeout time.Duration
	maxAttempts int
	retryStep   time.Duration
}

// New constructs a Resolver.
func New(opts Options) *Resolver {
	if opts.Cache == nil {
		opts.Cache = NewLRUCache(0)
	}
	if opts.Prober == nil {
		opts.Prober = NewHTTPProber(nil)
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}
	if opts.Logger == nil {
		opts.Logger = logging.DefaultLogger
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = 10 * time.Second
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.RetryStep <= 0 {
		opts.RetryStep = time.Second
	}
	return &Resolver{
		lookup:      opts.Lookup,
		cache:       opts.Cache,
		prober:      opts.Prober,
		clock:       opts.Clock,
		logger:      opts.Logger,
		loadTimeout: opts.LoadTimeout,
		maxAttempts: opts.MaxAttempts,
		retryStep:   opts.RetryStep,
	}
}

// Resolve maps a reference to a loadable URL without probing it. Results are
// memoised per (source, thumbnail) pair; cache-busting timestamps are baked
// into the stored URL, so repeated calls return byte-identical strings.
func (r *Resolver) Resolve(ctx context.Context, source string, thumbnail bool) (string, error) {
	ref := imageref.Classify(source)
	if ref.Kind == imageref.KindEmpty {
		return "", errors.New(errors.KindResolver, "resolve", "empty image reference")
	}

	key := CacheKey(source, thumbnail)
	if cached, ok := r.cache.Get(key); ok {
		return cached, nil
	}

	var resolved string
	switch ref.Kind {
	case imageref.KindInline:
		resolved = ref.Value

	case imageref.KindRemoteURL:
		resolved = ref.Value
		if thumbnail && imageref.IsStorageObjectURL(ref.Value) {
			transformed, err := r.thumbnailURL(ref.Value)
			if err != nil {
				return "", errors.Wrap(errors.KindResolver, "resolve", "parse storage URL", err)
			}
			resolved = transformed
		}

	case imageref.KindStoragePath:
		if r.lookup == nil {
			return "", errors.New(errors.KindResolver, "resolve", "no storage lookup configured")
		}
		publicURL, err := r.lookup.PublicURL(ctx, imageref.Filename(ref.Value))
		if err != nil {
			return "", errors.Wrap(errors.KindResolver, "resolve", "storage lookup failed", err)
		}
		resolved = publicURL
		if thumbnail {
			transformed, err := r.thumbnailURL(publicURL)
			if err != nil {
				return "", errors.Wrap(errors.KindResolver, "resolve", "parse public URL", err)
			}
			resolved = transformed
		}
	}

	r.cache.Set(key, resolved)
	return resolved, nil
}

// thumbnailURL attaches rendition parameters plus a cache-busting timestamp.
func (r *Resolver) thumbnailURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	query := parsed.Query()
	query.Set("width", thumbnailWidth)
	query.Set("quality", thumbnailQuality)
	query.Set("t", strconv.FormatInt(r.clock.Now().UnixMilli(), 10))
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// Display runs the full resolve-probe-retry-fallback procedure. It never
// returns an error: every failure path terminates in StateError so the caller
// can render a placeholder.
func (r *Resolver) Display(ctx context.Context, req Request) Result {
	if url, ok := r.attempt(ctx, req.Source, req.Thumbnail); ok {
		return Result{State: StateLoaded, URL: url}
	}

	if req.Fallback != "" && req.Fallback != req.Source {
		r.logger.DebugTag("RESOLVER", "primary source exhausted, trying fallback")
		if url, ok := r.attempt(ctx, req.Fallback, req.Thumbnail); ok {
			return Result{State: StateLoaded, URL: url}
		}
	}

	return Result{State: StateError}
}

// attemptState makes the retry loop's termination explicit.
type attemptState int

const (
	attempting attemptState = iota
	succeeded
	exhausted
)

func (r *Resolver) attempt(ctx context.Context, source string, thumbnail bool) (string, bool) {
	if imageref.Classify(source).Kind == imageref.KindEmpty {
		return "", false
	}

	resolved, err := r.Resolve(ctx, source, thumbnail)
	if err != nil {
		r.logger.WarnTag("RESOLVER", "resolution failed for %q: %v", source, err)
		return "", false
	}

	// Inline payloads carry their own bytes; nothing to probe.
	if strings.HasPrefix(resolved, "data:") {
		return resolved, true
	}

	state := attempting
	for tries := 0; state == attempting; tries++ {
		if tries >= r.maxAttempts {
			state = exhausted
			break
		}
		// Attempt k waits retryStep*k before probing; the first attempt
		// starts immediately.
		if tries > 0 {
			if err := r.clock.Sleep(ctx, r.retryStep*time.Duration(tries)); err != nil {
				state = exhausted
				break
			}
		}

		probeCtx, cancel := context.WithTimeout(ctx, r.loadTimeout)
		probeErr := r.prober.Probe(probeCtx, resolved)
		cancel()

		if probeErr == nil {
			state = succeeded
			break
		}
		r.logger.DebugTag("RESOLVER", "probe attempt %d failed for %q: %v", tries+1, resolved, probeErr)
	}

	return resolved, state == succeeded
}

// HTTPProber loads the URL with a plain GET and treats any 2xx as success.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber builds the production prober. A nil client uses a default
// without its own timeout; the per-attempt deadline comes from the caller.
func NewHTTPProber(client *http.Client) *HTTPProber {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPProber{client: client}
}

func (p *HTTPProber) Probe(ctx context.Context, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "BrandKit-Resolver/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	// Drain a bounded amount so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	return nil
}
