package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/clara/pkg/events"
)

const unknownToolReply = "I can't do that. I can search for restaurants, look up their details, or connect your call."

// Dispatcher routes named tool invocations from the conversational runtime to
// registered handlers. Every invocation emits a start/end log and event pair;
// the returned string is always safe to speak verbatim.
type Dispatcher struct {
	registry  *Registry
	publisher *events.Publisher
	room      string
}

// NewDispatcher binds a registry to one room. publisher may be nil.
func NewDispatcher(registry *Registry, publisher *events.Publisher, room string) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		publisher: publisher,
		room:      room,
	}
}

// Tools lists the definitions the runtime may bind to, sorted by name.
func (d *Dispatcher) Tools() []Definition {
	return d.registry.List()
}

// Dispatch runs one tool invocation. Within it, handler call, result
// formatting and logging are strictly sequential.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args json.RawMessage) string {
	def, err := d.registry.Get(name)
	if err != nil {
		log.Warn().Str("tool", name).Str("room", d.room).Msg("unknown tool requested")
		return unknownToolReply
	}

	log.Info().Str("tool", name).Str("room", d.room).Msg("tool_start")
	d.publisher.PublishBlind(events.NewToolStart(name, d.room))

	start := time.Now()
	result := def.Handler(ctx, args)
	elapsed := time.Since(start)

	log.Info().Str("tool", name).Str("room", d.room).
		Bool("success", result.Success).Dur("duration", elapsed).Msg("tool_end")
	d.publisher.PublishBlind(events.NewToolEnd(name, d.room, result.Success, elapsed))

	return result.Speech
}
