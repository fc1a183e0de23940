package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Category filter for restaurants in the places taxonomy.
const restaurantCategory = "13065"

const defaultSearchLimit = 3

// Client talks to the places search/detail API. It is stateless per call and
// safe for concurrent use.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	apiVersion string
}

type ClientOption func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithAPIVersion overrides the pinned API version header.
func WithAPIVersion(version string) ClientOption {
	return func(c *Client) {
		c.apiVersion = version
	}
}

// NewClient initializes a places API client with a short request deadline.
func NewClient(apiKey string, options ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		apiKey:     apiKey,
		baseURL:    "https://places-api.foursquare.com",
		apiVersion: "2025-06-17",
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Places-Api-Version", c.apiVersion)
}

// Search looks up restaurants near a location. An empty result set is a valid
// outcome, not an error.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]PlaceSummary, error) {
	const op = "places.Search"

	query := "restaurant"
	if req.Cuisine != "" {
		query = req.Cuisine + " restaurant"
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("near", req.Location)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("categories", restaurantCategory)

	var response searchResponse
	if err := c.get(ctx, op, "/places/search?"+params.Encode(), &response); err != nil {
		return nil, err
	}

	summaries := make([]PlaceSummary, 0, len(response.Results))
	for _, result := range response.Results {
		name := result.Name
		if name == "" {
			name = "Unknown"
		}
		summaries = append(summaries, PlaceSummary{Name: name, ID: result.PlaceID})
	}

	log.Debug().Str("location", req.Location).Str("cuisine", req.Cuisine).
		Int("count", len(summaries)).Msg("places search completed")

	return summaries, nil
}

// Detail fetches the detail record for one place identifier. A 404 surfaces as
// ErrNotFound, a soft miss.
func (c *Client) Detail(ctx context.Context, id string) (*PlaceDetail, error) {
	const op = "places.Detail"

	path := fmt.Sprintf("/places/%s?fields=%s",
		url.PathEscape(id),
		url.QueryEscape("name,tel,location,hours,website,rating"))

	var response detailResponse
	if err := c.get(ctx, op, path, &response); err != nil {
		return nil, err
	}

	return response.toDetail(), nil
}

func (c *Client) get(ctx context.Context, op string, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := classifyStatus(op, resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	return nil
}

// classifyStatus maps every non-2xx status onto the failure taxonomy. Both
// Search and Detail go through it so call sites handle the same variants.
func classifyStatus(op string, resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := time.Second
		if header := resp.Header.Get("Retry-After"); header != "" {
			if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
				retryAfter = time.Duration(seconds) * time.Second
			}
		}
		log.Warn().Str("op", op).Dur("retry_after", retryAfter).Msg("rate limited by places service")
		return &RateLimitError{RetryAfter: retryAfter}
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	default:
		return &UpstreamError{Op: op, Status: resp.StatusCode}
	}
}
