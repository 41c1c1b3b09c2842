// internal/adapters/googlemaps/client.go
package googlemaps

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_chat/internal/adapters/observability"
	"hotel_chat/internal/domain"
)

const (
	DefaultBase = "https://maps.googleapis.com/maps/api"

	lodgingType = "lodging"
	maxAttempts = 4
)

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY is required")
	}
	if base == "" {
		base = DefaultBase
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API ----

// Geocode resolves a free-text place to candidate results, best match first.
func (c *Client) Geocode(ctx context.Context, query string) ([]map[string]any, error) {
	q := url.Values{}
	q.Set("address", query)
	return c.results(ctx, "geocode", "/geocode/json", q)
}

// NearbyLodging returns the first page of lodging around at.
func (c *Client) NearbyLodging(ctx context.Context, at domain.Coords, radiusMeters int) ([]map[string]any, error) {
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%s,%s", ftoa(at.Lat), ftoa(at.Lng)))
	q.Set("radius", strconv.Itoa(radiusMeters))
	q.Set("type", lodgingType)
	return c.results(ctx, "nearbysearch", "/place/nearbysearch/json", q)
}

// ---- Internals ----

var (
	ErrNotFound     = errors.New("googlemaps: not found")
	ErrUnauthorized = errors.New("googlemaps: unauthorized")
	ErrForbidden    = errors.New("googlemaps: forbidden")
)

// APIError is a non-OK status reported inside a 200 response body.
type APIError struct {
	Status  string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "googlemaps: " + e.Status
	}
	return fmt.Sprintf("googlemaps: %s: %s", e.Status, e.Message)
}

type envelope struct {
	Status       string           `json:"status"`
	ErrorMessage string           `json:"error_message"`
	Results      []map[string]any `json:"results"`
}

func (c *Client) results(ctx context.Context, endpoint, path string, q url.Values) ([]map[string]any, error) {
	q.Set("key", c.key)
	var env envelope
	if err := c.get(ctx, endpoint, c.base+path+"?"+q.Encode(), &env); err != nil {
		return nil, err
	}
	switch env.Status {
	case "OK", "":
		return env.Results, nil
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, &APIError{Status: env.Status, Message: env.ErrorMessage}
	}
}

// get performs a GET with client-side rate limiting, retries, and JSON decode into out.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
// Every attempt, retries included, waits on the limiter.
func (c *Client) get(ctx context.Context, endpoint, u string, out any) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if err := c.rl.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return redact(endpoint, err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "hotel-chat/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("googlemaps", endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = redact(endpoint, err)
			if i < maxAttempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("googlemaps", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("decode %s response: %w", endpoint, err)
			}
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < maxAttempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// redact drops the request URL, which carries the API key, from transport
// errors so they can be shown to users and logged.
func redact(endpoint string, err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s request failed: %w", endpoint, ue.Err)
	}
	return err
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff: 200ms doubling per attempt, plus up to 50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
