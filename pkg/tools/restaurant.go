package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/go-go-golems/clara/pkg/places"
	"github.com/go-go-golems/clara/pkg/retry"
)

const (
	rateLimitedReply    = "I'm getting too many requests right now. Please wait a moment and try again."
	searchTroubleReply  = "I'm having trouble searching right now. Please try again in a moment."
	detailTroubleReply  = "I'm having trouble looking that up right now. Please try again in a moment."
	noResultsReply      = "I couldn't find any restaurants in that area. Could you try a different location?"
	detailNotFoundReply = "I couldn't find that restaurant. It may no longer exist."
)

// SearchArgs are the arguments for search_restaurants.
type SearchArgs struct {
	Location string `json:"location" jsonschema:"description=The area to search (a place name like downtown austin or a lat/lon pair)"`
	Cuisine  string `json:"cuisine,omitempty" jsonschema:"description=Optional cuisine type such as italian or sushi"`
	Limit    int    `json:"limit,omitempty" jsonschema:"description=Maximum number of results,default=3"`
}

// NewSearchTool builds search_restaurants. Searches go through the retry
// policy; exhausted retries become an apology instead of propagating.
func NewSearchTool(client *places.Client, policy retry.Policy) Definition {
	return Definition{
		Name:        "search_restaurants",
		Description: "Search for restaurants near a location.",
		Schema:      reflectSchema(&SearchArgs{}),
		Handler: func(ctx context.Context, raw json.RawMessage) Result {
			var args SearchArgs
			if err := unmarshalArgs(raw, &args); err != nil || strings.TrimSpace(args.Location) == "" {
				return Result{
					Speech: "I didn't catch where to search. Could you tell me the location again?",
				}
			}

			summaries, err := retry.Do(ctx, policy, func(ctx context.Context) ([]places.PlaceSummary, error) {
				return client.Search(ctx, places.SearchRequest{
					Location: args.Location,
					Cuisine:  args.Cuisine,
					Limit:    args.Limit,
				})
			})
			if err != nil {
				var rateLimited *places.RateLimitError
				if errors.As(err, &rateLimited) {
					return Result{Speech: rateLimitedReply}
				}
				return Result{Speech: searchTroubleReply}
			}

			if len(summaries) == 0 {
				return Result{Speech: noResultsReply, Success: true}
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Found %d restaurants. To get details, call get_restaurant_details with the ID value:", len(summaries))
			for _, summary := range summaries {
				fmt.Fprintf(&b, "\n- %s [ID: %s]", summary.Name, summary.ID)
			}
			return Result{Speech: b.String(), Success: true}
		},
	}
}

// DetailArgs are the arguments for get_restaurant_details.
type DetailArgs struct {
	PlaceID string `json:"place_id" jsonschema:"description=The opaque place ID from search results. Never pass a restaurant name."`
}

// NewDetailTool builds get_restaurant_details. The place-ID guard runs before
// any network call: the calling runtime is a language model prone to passing
// the restaurant name where the opaque identifier is required.
func NewDetailTool(client *places.Client) Definition {
	return Definition{
		Name:        "get_restaurant_details",
		Description: "Get details about a specific restaurant including phone number, address and hours.",
		Schema:      reflectSchema(&DetailArgs{}),
		Handler: func(ctx context.Context, raw json.RawMessage) Result {
			var args DetailArgs
			if err := unmarshalArgs(raw, &args); err != nil {
				return Result{Speech: invalidPlaceIDReply(args.PlaceID)}
			}
			if !isValidPlaceID(args.PlaceID) {
				return Result{Speech: invalidPlaceIDReply(args.PlaceID)}
			}

			detail, err := client.Detail(ctx, args.PlaceID)
			if err != nil {
				switch {
				case errors.Is(err, places.ErrNotFound):
					return Result{Speech: detailNotFoundReply, Success: true}
				default:
					var rateLimited *places.RateLimitError
					if errors.As(err, &rateLimited) {
						return Result{Speech: rateLimitedReply}
					}
					return Result{Speech: detailTroubleReply}
				}
			}

			return Result{Speech: formatDetail(detail), Success: true}
		},
	}
}

// isValidPlaceID is a last-resort correctness net, not a full validator: a
// real identifier is a compact token, while a restaurant name is not.
func isValidPlaceID(id string) bool {
	if id == "" || len(id) > 30 {
		return false
	}
	return !strings.ContainsFunc(id, unicode.IsSpace)
}

func invalidPlaceIDReply(id string) string {
	return fmt.Sprintf("Error: %q is not a valid place ID. Use the ID value from the search results (for example 4b5e662af964a52060c928e3), not the restaurant name.", id)
}

func formatDetail(detail *places.PlaceDetail) string {
	lines := []string{
		detail.Name,
		"Address: " + detail.Address,
	}
	if detail.Phone != "" {
		lines = append(lines, "Phone: "+detail.Phone)
	}
	lines = append(lines, "Hours: "+detail.Hours)
	if detail.Rating != nil {
		lines = append(lines, fmt.Sprintf("Rating: %g/10", *detail.Rating))
	}
	return strings.Join(lines, "\n")
}

func unmarshalArgs(raw json.RawMessage, out interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
