package util

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns the process-wide client used for all remote art
// lookups. The idle pool is sized to the fetch concurrency so parallel
// requests to one CDN reuse connections. Per-request deadlines come from
// the caller's context, so timeout only caps a whole exchange.
func NewHTTPClient(concurrency int, timeout time.Duration) *http.Client {
	if concurrency < 1 {
		concurrency = 1
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          concurrency * 2,
		MaxIdleConnsPerHost:   concurrency,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: time.Second,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}
