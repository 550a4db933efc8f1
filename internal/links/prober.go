package links

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Prober performs a single reachability check. Implementations return the
// response status code; transport failures surface as errors. No retries are
// performed, a transient failure degrades the link rather than blocking the
// pipeline.
type Prober interface {
	Probe(ctx context.Context, url string) (int, error)
}

// HTTPProber issues HEAD requests with a per-probe timeout.
type HTTPProber struct {
	client  *http.Client
	timeout time.Duration
}

// NewHTTPProber builds a prober with the given per-probe timeout.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HTTPProber{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Probe issues a HEAD request against url and returns the status code.
func (p *HTTPProber) Probe(ctx context.Context, url string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build probe request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode, nil
}
