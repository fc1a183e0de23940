package tools

import (
	"github.com/go-go-golems/clara/pkg/places"
	"github.com/go-go-golems/clara/pkg/retry"
	"github.com/go-go-golems/clara/pkg/telephony"
	"github.com/go-go-golems/clara/pkg/transfer"
)

// Toolbox bundles the adapters the concierge tools need. One toolbox serves
// the whole process; registries are built per room because call_transfer and
// end_call are bound to a room.
type Toolbox struct {
	Places    *places.Client
	Rooms     telephony.RoomService
	Transfers *transfer.Orchestrator

	// SearchPolicy guards search_restaurants only; all other tools hit their
	// adapter exactly once.
	SearchPolicy retry.Policy
}

// NewToolbox wires a toolbox with the standard search retry budget.
func NewToolbox(placesClient *places.Client, rooms telephony.RoomService, transfers *transfer.Orchestrator) *Toolbox {
	return &Toolbox{
		Places:       placesClient,
		Rooms:        rooms,
		Transfers:    transfers,
		SearchPolicy: retry.NewPolicy(places.IsRetryable),
	}
}

// RegistryFor builds the tool registry for one room.
func (t *Toolbox) RegistryFor(room string) *Registry {
	registry := NewRegistry()
	_ = registry.Register(NewSearchTool(t.Places, t.SearchPolicy))
	_ = registry.Register(NewDetailTool(t.Places))
	_ = registry.Register(NewTransferTool(t.Transfers, room))
	_ = registry.Register(NewEndCallTool(t.Rooms, room))
	return registry
}
