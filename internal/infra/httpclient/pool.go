package httpclient

import (
	"net/http"
	"time"
)

// sharedTransport is reused across all pooled clients so the embed, search
// and generate calls of concurrent requests keep their TCP connections warm
// instead of paying a handshake per call.
var sharedTransport = &http.Transport{
	MaxIdleConns:        20,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     120 * time.Second,
	DisableKeepAlives:   false,
}

// NewPooledClient creates an http.Client that shares a connection pool with
// other pooled clients. The timeout is the per-call ceiling; the pipeline
// treats a timeout like any other dependency failure.
func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: sharedTransport,
	}
}
