// Package update implements a non-blocking release check against a JSON
// version manifest. It is independent of the parsing packages so a
// program can run the check while its arguments are being parsed and
// only consult the outcome before exiting.
package update

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-json"
)

const (
	defaultTimeout  = 3 * time.Second
	maxManifestSize = 1 << 20
)

// Config describes one check.
type Config struct {
	// ManifestURL points at a JSON document with at least a "version"
	// field; "url" and "notes" are carried through when present.
	ManifestURL string

	// Current is the running version, with or without a leading "v".
	Current string

	// Timeout bounds the whole check. Zero means defaultTimeout.
	Timeout time.Duration

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

type manifest struct {
	Version string `json:"version"`
	URL     string `json:"url"`
	Notes   string `json:"notes"`
}

// Release describes a newer published version.
type Release struct {
	Version string
	URL     string
	Notes   string
}

// Check is a handle to an in-flight or finished check.
type Check struct {
	done    chan struct{}
	release *Release
	cancel  context.CancelFunc
}

// Start launches the check in a goroutine and returns immediately. Any
// failure, a malformed manifest, an unreachable host, an unparseable
// version, resolves the check to "no release"; a version probe must
// never break the host program.
func Start(ctx context.Context, cfg Config) *Check {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)

	c := &Check{done: make(chan struct{}), cancel: cancel}
	go func() {
		defer cancel()
		defer close(c.done)
		c.release = fetch(ctx, cfg)
	}()
	return c
}

// Result reports the outcome without blocking. Before the check
// finishes it returns (nil, false); afterwards it returns the newer
// release, or nil when the running version is current or the check
// failed.
func (c *Check) Result() (*Release, bool) {
	select {
	case <-c.done:
		return c.release, true
	default:
		return nil, false
	}
}

// Wait blocks until the check finishes or ctx is done, then reports the
// release as Result does.
func (c *Check) Wait(ctx context.Context) (*Release, error) {
	select {
	case <-c.done:
		return c.release, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stop abandons an in-flight check.
func (c *Check) Stop() { c.cancel() }

func fetch(ctx context.Context, cfg Config) *Release {
	current, err := semver.NewVersion(cfg.Current)
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.ManifestURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/json")

	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestSize))
	if err != nil {
		return nil
	}
	var m manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return nil
	}

	latest, err := semver.NewVersion(m.Version)
	if err != nil || !latest.GreaterThan(current) {
		return nil
	}
	return &Release{Version: m.Version, URL: m.URL, Notes: m.Notes}
}

// Banner formats a one-line upgrade notice for terminal output.
func Banner(r *Release, program string) string {
	if r.URL != "" {
		return fmt.Sprintf("A new version of %s is available: %s (%s)",
			program, r.Version, r.URL)
	}
	return fmt.Sprintf("A new version of %s is available: %s", program, r.Version)
}
