// Package geocoding resolves event location strings to coordinates through
// the Google Maps Geocoding API, with the same disk cache and rate limiting
// the rest of the pipeline uses.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"portugalRunning/internal/pipeline/cache"
)

const baseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// ErrNoResults means the API answered but found nothing for the query.
var ErrNoResults = errors.New("geocoding: no results")

type Result struct {
	Name     string  `json:"name"`
	Country  string  `json:"country"`
	Locality string  `json:"locality"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

type apiResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress  string `json:"formatted_address"`
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	cache   *cache.Cache
	log     *slog.Logger
}

func New(apiKey, cacheDir string, log *slog.Logger) (*Client, error) {
	c, err := cache.New(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("geocoding: init cache: %w", err)
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(10), 1),
		cache:   c,
		log:     log,
	}, nil
}

// Geocode resolves a free-form location string. Hits are cached under a
// provider-prefixed key so stale caches from other providers never match.
func (c *Client) Geocode(ctx context.Context, location string) (*Result, error) {
	const op = "pipeline.geocoding.Geocode"

	cacheKey := "google:" + strings.ToLower(strings.TrimSpace(location))

	if data, ok := c.cache.Get(cacheKey); ok {
		var r Result
		if err := json.Unmarshal(data, &r); err == nil {
			return &r, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reqURL := fmt.Sprintf("%s?address=%s&key=%s", c.baseURL, url.QueryEscape(location), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var api apiResponse
	if err := json.Unmarshal(body, &api); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}

	switch api.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, ErrNoResults
	default:
		return nil, fmt.Errorf("%s: api status %s: %s", op, api.Status, api.ErrorMessage)
	}

	if len(api.Results) == 0 {
		return nil, ErrNoResults
	}

	result := toResult(location, api)

	if data, err := json.Marshal(result); err == nil {
		if err := c.cache.Put(cacheKey, data); err != nil {
			c.log.Warn("failed to cache geocoding result",
				slog.String("location", location),
				slog.String("error", err.Error()),
			)
		}
	}

	return result, nil
}

func toResult(location string, api apiResponse) *Result {
	best := api.Results[0]

	r := &Result{
		Name: location,
		Lat:  best.Geometry.Location.Lat,
		Lon:  best.Geometry.Location.Lng,
	}

	for _, comp := range best.AddressComponents {
		for _, t := range comp.Types {
			switch t {
			case "country":
				r.Country = comp.LongName
			case "locality":
				r.Locality = comp.LongName
			}
		}
	}

	return r
}
