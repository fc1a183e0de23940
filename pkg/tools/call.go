package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/clara/pkg/telephony"
	"github.com/go-go-golems/clara/pkg/transfer"
)

const callEndedReply = "Call ended"

// TransferArgs are the arguments for call_transfer.
type TransferArgs struct {
	PhoneNumber string `json:"phone_number" jsonschema:"description=The restaurant's phone number in format +1XXXXXXXXXX"`
}

// NewTransferTool builds call_transfer for one room. The destination actually
// dialed is decided by the orchestrator; the spoken result always references
// the number the caller asked for.
func NewTransferTool(orchestrator *transfer.Orchestrator, room string) Definition {
	return Definition{
		Name:        "call_transfer",
		Description: "Transfer the call to connect the user with a restaurant.",
		Schema:      reflectSchema(&TransferArgs{}),
		Handler: func(ctx context.Context, raw json.RawMessage) Result {
			var args TransferArgs
			if err := unmarshalArgs(raw, &args); err != nil || strings.TrimSpace(args.PhoneNumber) == "" {
				return Result{
					Speech: "I need the restaurant's phone number to connect you. Could you ask me for its details first?",
				}
			}

			outcome := orchestrator.Transfer(ctx, room, args.PhoneNumber)
			return Result{Speech: outcome.Message, Success: outcome.Connected}
		},
	}
}

// NewEndCallTool builds end_call for one room. Ending a call must never
// appear to fail from the caller's perspective, so the reply is constant and
// the tool reports success even when room deletion does not.
func NewEndCallTool(rooms telephony.RoomService, room string) Definition {
	return Definition{
		Name:        "end_call",
		Description: "End the current call when the user wants to hang up.",
		Schema:      reflectSchema(&struct{}{}),
		Handler: func(ctx context.Context, _ json.RawMessage) Result {
			if err := rooms.DeleteRoom(ctx, room); err != nil {
				log.Error().Err(err).Str("room", room).Msg("end_call failed to delete room")
			}
			return Result{Speech: callEndedReply, Success: true}
		},
	}
}
