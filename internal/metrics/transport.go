package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// Transport wraps an http.RoundTripper and records outbound request metrics
// labelled by host, so auth and places traffic show up separately.
type Transport struct {
	Base http.RoundTripper
}

// NewTransport wraps base, defaulting to http.DefaultTransport.
func NewTransport(base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{Base: base}
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()

	defer TrackInFlight()()

	resp, err := t.Base.RoundTrip(r)

	status := StatusError
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	HTTPRequestDuration.WithLabelValues(r.URL.Host, r.Method).Observe(time.Since(start).Seconds())
	HTTPRequestsTotal.WithLabelValues(r.URL.Host, r.Method, status).Inc()

	return resp, err
}

// InstrumentedClient returns an http.Client whose transport records metrics
func InstrumentedClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: NewTransport(nil),
	}
}
