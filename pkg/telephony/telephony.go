package telephony

import (
	"context"

	"github.com/pkg/errors"
)

// ErrCallFailed is the single opaque failure for an outbound dial. Callers
// only learn success or failure; provider-internal detail stays in the logs.
var ErrCallFailed = errors.New("call failed")

// SIPParticipantRequest describes an outbound call to bridge into a room.
type SIPParticipantRequest struct {
	RoomName            string `json:"room_name"`
	TrunkID             string `json:"sip_trunk_id"`
	CallTo              string `json:"sip_call_to"`
	ParticipantIdentity string `json:"participant_identity"`
	WaitUntilAnswered   bool   `json:"wait_until_answered"`
}

// RoomService is the capability surface this system needs from the telephony
// provider: bridge a SIP participant into a room, and tear a room down.
type RoomService interface {
	// CreateSIPParticipant dials a number through an outbound trunk and
	// bridges the far end into the room. It blocks until the far end answers
	// or the provider times out.
	CreateSIPParticipant(ctx context.Context, req SIPParticipantRequest) error

	// DeleteRoom removes a room, ending the call. Deleting an already-gone
	// room is success.
	DeleteRoom(ctx context.Context, room string) error
}
