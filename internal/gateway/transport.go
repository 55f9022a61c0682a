package gateway

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	if timeout < 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

// pacedDoer spaces outgoing requests with a token bucket. Waiting honors the
// request context, so a canceled view fetch stops queueing immediately.
type pacedDoer struct {
	next    httpDoer
	limiter *rate.Limiter
}

func withPacing(next httpDoer, perSecond float64, burst int) httpDoer {
	if perSecond <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	return &pacedDoer{next: next, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (p *pacedDoer) Do(req *http.Request) (*http.Response, error) {
	if err := p.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return p.next.Do(req)
}
