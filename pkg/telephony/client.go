package telephony

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// The dial deadline is generous: CreateSIPParticipant waits for the far end to
// answer, which can take the better part of a minute.
const dialTimeout = 2 * time.Minute

// Client is the HTTP implementation of RoomService against the provider's
// control API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiSecret  string
}

type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client (used by tests).
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient initializes a telephony control client.
func NewClient(baseURL, apiKey, apiSecret string, options ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: dialTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

var _ RoomService = (*Client)(nil)

// CreateSIPParticipant dials the destination through the named trunk and waits
// until the call is answered. Every failure collapses into ErrCallFailed.
func (c *Client) CreateSIPParticipant(ctx context.Context, req SIPParticipantRequest) error {
	resp, err := c.post(ctx, "/twirp/livekit.SIP/CreateSIPParticipant", req)
	if err != nil {
		log.Error().Err(err).Str("room", req.RoomName).Msg("sip participant request failed")
		return errors.Wrap(ErrCallFailed, err.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().Int("status", resp.StatusCode).Str("room", req.RoomName).
			Msg("sip participant rejected by provider")
		return errors.Wrapf(ErrCallFailed, "provider returned status %d", resp.StatusCode)
	}
	return nil
}

// DeleteRoom tears a room down. A provider 404 means the room is already gone,
// which counts as success.
func (c *Client) DeleteRoom(ctx context.Context, room string) error {
	resp, err := c.post(ctx, "/twirp/livekit.RoomService/DeleteRoom", map[string]string{"room": room})
	if err != nil {
		return errors.Wrap(err, "delete room")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		log.Debug().Str("room", room).Msg("room already deleted")
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("delete room: provider returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	return c.httpClient.Do(req)
}
