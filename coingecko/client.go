// Package coingecko fetches current and historical crypto prices from the
// CoinGecko API. It is the price oracle of the portfolio engine: callers get
// back whatever the API served, and coverage is enforced by the valuation.
package coingecko

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// Client talks to the CoinGecko API. The zero value works for the public,
// unauthenticated endpoints.
type Client struct {
	// APIKey is the optional demo/pro API key.
	APIKey string
	// BaseURL overrides the API root, mostly for tests.
	BaseURL string
}

func (c *Client) base() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

// diskCache implements a simple disk cache for HTTP responses.
type diskCache struct {
	base http.RoundTripper
	// ttl buckets the cache key: responses expire when the current time
	// moves to the next ttl-sized bucket.
	ttl time.Duration
}

// RoundTrip checks for a cached response on disk first. If a fresh cached
// response is not found, it proceeds with the actual HTTP request and caches
// the new response if it's successful.
func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// the key is unique per ttl bucket, so the local tmp copy expires with it.
	bucket := time.Now().Truncate(c.ttl).Format(time.RFC3339)
	key := fmt.Sprintf("%s %s %s", bucket, req.Method, req.URL.String())
	key = fmt.Sprintf("cryptofolio-%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(os.TempDir(), key))
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}

// newCachingClient returns a client whose responses expire after ttl.
func newCachingClient(ttl time.Duration) *http.Client {
	return &http.Client{Transport: &diskCache{base: http.DefaultTransport, ttl: ttl}}
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}
