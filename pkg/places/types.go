package places

// PlaceSummary is a single search hit. ID is the opaque identifier assigned by
// the places service; it is the only valid input for Detail and must never be
// confused with the display name.
type PlaceSummary struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// PlaceDetail describes one place. Every field has a defined fallback so that
// partial upstream responses never produce nulls downstream.
type PlaceDetail struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Phone   string   `json:"phone,omitempty"`
	Hours   string   `json:"hours"`
	Website string   `json:"website,omitempty"`
	Rating  *float64 `json:"rating,omitempty"`
}

// SearchRequest carries the parameters for a restaurant search. Location is
// passed through verbatim (place name or "lat,lon"); no geocoding happens
// locally.
type SearchRequest struct {
	Location string
	Cuisine  string
	Limit    int
}

const (
	addressFallback = "Address not available"
	hoursFallback   = "Hours not available"
)

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Name    string `json:"name"`
	PlaceID string `json:"fsq_place_id"`
}

type detailResponse struct {
	Name     string `json:"name"`
	Tel      string `json:"tel"`
	Location struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"location"`
	Hours struct {
		Display string `json:"display"`
	} `json:"hours"`
	Website string   `json:"website"`
	Rating  *float64 `json:"rating"`
}

func (r *detailResponse) toDetail() *PlaceDetail {
	d := &PlaceDetail{
		Name:    r.Name,
		Address: r.Location.FormattedAddress,
		Phone:   r.Tel,
		Hours:   r.Hours.Display,
		Website: r.Website,
		Rating:  r.Rating,
	}
	if d.Name == "" {
		d.Name = "Unknown"
	}
	if d.Address == "" {
		d.Address = addressFallback
	}
	if d.Hours == "" {
		d.Hours = hoursFallback
	}
	return d
}
