/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/vttc-ratings/s3cache"
)

const cacheKeyPrefix = "webcache"

// NewCachedHttpClient returns an http.Client for fetching results and player
// lists. Responses are cached in bucket when it is set and reachable, and in
// memory otherwise. The origin's cache headers are replaced so that every
// response is cached for maxAge.
func NewCachedHttpClient(ctx context.Context, bucket string,
	region string, maxAge time.Duration) *http.Client {

	var cache httpcache.Cache
	if bucket != "" {
		cache = newS3Cache(ctx, bucket, region)
	}
	if cache == nil {
		cache = httpcache.NewMemoryCache()
	}

	hc := httpcache.NewTransport(cache)
	// we have to inject our own header overrides here in order to override
	// server responses that might indicate caching shouldn't be done
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: http.DefaultTransport,
		Request: func(req *http.Request) {
			if req.Header.Get("User-Agent") == "" {
				req.Header.Set("User-Agent", UserAgent)
			}
		},
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

func newS3Cache(ctx context.Context, bucket string,
	region string) httpcache.Cache {

	client, err := NewS3Client(ctx, region)
	if err != nil {
		log.Printf("httpcache: warning %v; falling back to memory cache", err)
		return nil
	}
	cache := s3cache.New(ctx, client, bucket, cacheKeyPrefix, true)
	if err := cache.Init(); err != nil {
		log.Printf("httpcache: warning failed to init S3 cache: %v; falling back to memory cache",
			err)
		return nil
	}

	return cache
}

// HeaderOverrideTransport rewrites requests and responses passing through
// an underlying RoundTripper.
type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	// Underlying RoundTripper (e.g. default transport or another decorator)
	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don’t stomp on the caller’s original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
