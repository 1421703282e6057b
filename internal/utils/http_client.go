package utils

import (
	"net/http"
	"time"
)

// NewHTTPClient builds the pooled client shared by the upstream API and
// boundary loaders. Streaming calls pass timeout 0: the request lifetime is
// governed by its context instead.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
