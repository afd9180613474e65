// Package wpapi is a client for the portugalrunning.com WordPress REST API
// and its EventON calendar exports. Responses are cached on disk so repeated
// pipeline runs do not hammer the upstream site.
package wpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"portugalRunning/internal/pipeline/cache"
)

const DefaultBaseURL = "https://www.portugalrunning.com"

type EventSummary struct {
	ID int `json:"id"`
}

type EventDetail struct {
	ID    int `json:"id"`
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Link         string `json:"link"`
	EventTypeIDs []int  `json:"event_type"`
}

type Term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	cache   *cache.Cache
	log     *slog.Logger
}

// New builds a client caching under cacheDir. The limiter keeps the pipeline
// polite: two requests per second, small burst.
func New(baseURL, cacheDir string, log *slog.Logger) (*Client, error) {
	c, err := cache.New(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("wpapi: init cache: %w", err)
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(2), 2),
		cache:   c,
		log:     log,
	}, nil
}

// EventsPage fetches one page of event listings; a 400 from WordPress means
// the page is past the end and yields an empty slice.
func (c *Client) EventsPage(ctx context.Context, page int) ([]EventSummary, error) {
	const op = "pipeline.wpapi.EventsPage"

	url := fmt.Sprintf("%s/wp-json/wp/v2/ajde_events?page=%d", c.baseURL, page)

	body, status, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if status == http.StatusBadRequest {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d for page %d", op, status, page)
	}

	var events []EventSummary
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("%s: decode page %d: %w", op, page, err)
	}

	return events, nil
}

// EventDetail fetches one event's WordPress record.
func (c *Client) EventDetail(ctx context.Context, id int) (*EventDetail, error) {
	const op = "pipeline.wpapi.EventDetail"

	url := fmt.Sprintf("%s/wp-json/wp/v2/ajde_events/%d", c.baseURL, id)

	body, status, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d for event %d", op, status, id)
	}

	var detail EventDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("%s: decode event %d: %w", op, id, err)
	}

	return &detail, nil
}

// EventICS fetches the event's calendar export.
func (c *Client) EventICS(ctx context.Context, id int) (string, error) {
	const op = "pipeline.wpapi.EventICS"

	url := fmt.Sprintf("%s/export-events/%d_0/", c.baseURL, id)

	body, status, err := c.get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("%s: unexpected status %d for event %d", op, status, id)
	}

	return string(body), nil
}

// TermNames resolves event_type taxonomy term IDs to their display names.
func (c *Client) TermNames(ctx context.Context, ids []int) ([]string, error) {
	const op = "pipeline.wpapi.TermNames"

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		url := fmt.Sprintf("%s/wp-json/wp/v2/event_type/%d", c.baseURL, id)

		body, status, err := c.get(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if status != http.StatusOK {
			c.log.Warn("term lookup failed",
				slog.String("op", op),
				slog.Int("term_id", id),
				slog.Int("status", status),
			)
			continue
		}

		var term Term
		if err := json.Unmarshal(body, &term); err != nil {
			return nil, fmt.Errorf("%s: decode term %d: %w", op, id, err)
		}

		names = append(names, term.Name)
	}

	return names, nil
}

// get serves from cache when possible, otherwise rate-limits and fetches.
// Only 200 responses are cached.
func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	if body, ok := c.cache.Get(url); ok {
		return body, http.StatusOK, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	if resp.StatusCode == http.StatusOK {
		if err := c.cache.Put(url, body); err != nil {
			c.log.Warn("failed to cache response", slog.String("url", url), slog.String("error", err.Error()))
		}
	}

	return body, resp.StatusCode, nil
}
