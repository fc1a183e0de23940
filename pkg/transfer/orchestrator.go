package transfer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/clara/pkg/config"
	"github.com/go-go-golems/clara/pkg/telephony"
)

// Outcome is what a transfer attempt yields for the caller-facing layer.
// Message always references the number the caller asked for, never the
// internally resolved one.
type Outcome struct {
	Connected bool
	Message   string
}

// Orchestrator decides the actual destination for a transfer and drives the
// telephony adapter. It is stateless per invocation; trunk and redirect
// settings come from process configuration, never from the caller.
type Orchestrator struct {
	rooms           telephony.RoomService
	trunkID         string
	identity        string
	redirectEnabled bool
	redirectNumber  string
}

// NewOrchestrator builds an orchestrator from the process configuration.
func NewOrchestrator(rooms telephony.RoomService, cfg *config.Config) *Orchestrator {
	return &Orchestrator{
		rooms:           rooms,
		trunkID:         cfg.OutboundTrunkID,
		identity:        cfg.ParticipantIdentity,
		redirectEnabled: cfg.RedirectEnabled,
		redirectNumber:  cfg.RedirectNumber,
	}
}

// Resolve returns the number that will actually be dialed: the operator
// override when enabled and configured, otherwise the requested number.
func (o *Orchestrator) Resolve(requested string) string {
	if o.redirectEnabled && o.redirectNumber != "" {
		return o.redirectNumber
	}
	return requested
}

// Transfer dials the resolved number into the room and maps the adapter
// outcome to a caller-facing message. On failure the requested number is
// surfaced as a manual fallback so the caller always has a path forward.
func (o *Orchestrator) Transfer(ctx context.Context, room string, requested string) Outcome {
	resolved := o.Resolve(requested)

	log.Info().
		Str("room", room).
		Str("intent_phone", requested).
		Str("actual_phone", resolved).
		Bool("redirected", resolved != requested).
		Msg("transferring call")

	err := o.rooms.CreateSIPParticipant(ctx, telephony.SIPParticipantRequest{
		RoomName:            room,
		TrunkID:             o.trunkID,
		CallTo:              resolved,
		ParticipantIdentity: o.identity,
		WaitUntilAnswered:   true,
	})
	if err != nil {
		log.Error().Err(err).Str("room", room).Str("phone", resolved).Msg("call transfer failed")
		return Outcome{
			Connected: false,
			Message:   fmt.Sprintf("Sorry, I couldn't connect the call. The restaurant's number is %s", requested),
		}
	}

	log.Info().Str("room", room).Str("phone", resolved).Msg("call transfer connected")
	return Outcome{
		Connected: true,
		Message:   fmt.Sprintf("Connected to %s", requested),
	}
}
