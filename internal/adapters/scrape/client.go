package scrape

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// maxBodyBytes caps how much of a booking page we are willing to read.
const maxBodyBytes = 2 << 20

// Client performs single-attempt GETs against third-party booking pages.
// Outbound calls share a rate limiter so a burst of aggregations does not
// hammer the target sites. There are no retries: one timed attempt per
// source per request cycle is final.
type Client struct {
	hc *http.Client
	rl *rate.Limiter
}

func NewClient(timeout time.Duration, rps int) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if rps <= 0 {
		rps = 2
	}
	return &Client{
		hc: &http.Client{Timeout: timeout},
		rl: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// Get fetches the page body. Network errors, timeouts and non-2xx statuses
// all come back as plain errors for the fetcher to fold into an outcome.
func (c *Client) Get(req *http.Request) ([]byte, error) {
	if err := c.rl.Wait(req.Context()); err != nil {
		return nil, err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
