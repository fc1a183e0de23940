package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", WithBaseURL(server.URL))
}

func TestSearchReturnsSummaries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places/search", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "2025-06-17", r.Header.Get("X-Places-Api-Version"))
		assert.Equal(t, "italian restaurant", r.URL.Query().Get("query"))
		assert.Equal(t, "downtown austin", r.URL.Query().Get("near"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Equal(t, "13065", r.URL.Query().Get("categories"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"name":"Trattoria Lisina","fsq_place_id":"4b5e662af964a52060c928e3"},
			{"name":"Juliet","fsq_place_id":"5a1b2c3d4e5f6a7b8c9d0e1f"}
		]}`))
	})

	summaries, err := client.Search(context.Background(), SearchRequest{
		Location: "downtown austin",
		Cuisine:  "italian",
		Limit:    2,
	})
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Trattoria Lisina", summaries[0].Name)
	assert.Equal(t, "4b5e662af964a52060c928e3", summaries[0].ID)
}

func TestSearchDefaultsQueryAndLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "restaurant", r.URL.Query().Get("query"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	_, err := client.Search(context.Background(), SearchRequest{Location: "chicago"})
	require.NoError(t, err)
}

func TestSearchZeroResultsIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	summaries, err := client.Search(context.Background(), SearchRequest{Location: "nowhere"})
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestSearchRateLimitedCarriesRetryAfter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Search(context.Background(), SearchRequest{Location: "austin"})
	var rateLimited *RateLimitError
	require.ErrorAs(t, err, &rateLimited)
	assert.Equal(t, 3*time.Second, rateLimited.RetryAfter)
	assert.True(t, IsRetryable(err))
}

func TestSearchRateLimitedDefaultsToOneSecond(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Search(context.Background(), SearchRequest{Location: "austin"})
	var rateLimited *RateLimitError
	require.ErrorAs(t, err, &rateLimited)
	assert.Equal(t, time.Second, rateLimited.RetryAfter)
}

func TestSearchUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Search(context.Background(), SearchRequest{Location: "austin"})
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusInternalServerError, upstream.Status)
	assert.True(t, IsRetryable(err))
}

func TestDetailReturnsFullRecord(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places/4b5e662af964a52060c928e3", r.URL.Path)
		assert.Equal(t, "name,tel,location,hours,website,rating", r.URL.Query().Get("fields"))
		_, _ = w.Write([]byte(`{
			"name":"Trattoria Lisina",
			"tel":"+15551234567",
			"location":{"formatted_address":"13308 FM 150 W, Driftwood, TX 78619"},
			"hours":{"display":"Mon-Sun 11:00-21:00"},
			"website":"https://example.com",
			"rating":8.7
		}`))
	})

	detail, err := client.Detail(context.Background(), "4b5e662af964a52060c928e3")
	require.NoError(t, err)
	assert.Equal(t, "Trattoria Lisina", detail.Name)
	assert.Equal(t, "+15551234567", detail.Phone)
	assert.Equal(t, "13308 FM 150 W, Driftwood, TX 78619", detail.Address)
	assert.Equal(t, "Mon-Sun 11:00-21:00", detail.Hours)
	require.NotNil(t, detail.Rating)
	assert.InDelta(t, 8.7, *detail.Rating, 0.001)
}

func TestDetailMissingFieldsFallBack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Juliet"}`))
	})

	detail, err := client.Detail(context.Background(), "5a1b2c3d4e5f6a7b8c9d0e1f")
	require.NoError(t, err)
	assert.Equal(t, "Juliet", detail.Name)
	assert.Equal(t, "Address not available", detail.Address)
	assert.Equal(t, "Hours not available", detail.Hours)
	assert.Empty(t, detail.Phone)
	assert.Nil(t, detail.Rating)
}

func TestDetailNotFoundIsSoftMiss(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Detail(context.Background(), "gone")
	require.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, IsRetryable(err))
}

func TestDetailRateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Detail(context.Background(), "4b5e662af964a52060c928e3")
	var rateLimited *RateLimitError
	require.ErrorAs(t, err, &rateLimited)
}
