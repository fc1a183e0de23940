package session

import (
	"context"

	"github.com/go-go-golems/clara/pkg/tools"
)

// RuntimeOptions selects the speech/model/voice configuration for one
// session. The values are opaque capability handles owned by the runtime;
// this layer only picks and passes them.
type RuntimeOptions struct {
	STTModel string
	LLMModel string
	TTSModel string
	VAD      string
}

// DefaultRuntimeOptions is the standard concierge configuration.
func DefaultRuntimeOptions() RuntimeOptions {
	return RuntimeOptions{
		STTModel: "nova-3",
		LLMModel: "gpt-4o",
		TTSModel: "sonic-3",
		VAD:      "silero",
	}
}

// StartOptions is everything a runtime needs to serve one room: the agent
// persona, the model configuration, and the tool surface it may invoke.
type StartOptions struct {
	Instructions string
	Options      RuntimeOptions
	Tools        *tools.Dispatcher
}

// Runtime is the conversational runtime collaborator: it turns speech into
// tool invocations and tool results back into speech. Implementations live
// outside this module.
type Runtime interface {
	// Start binds the runtime to a room and begins serving the call.
	Start(ctx context.Context, room string, opts StartOptions) error

	// Generate asks the runtime to produce one utterance following the given
	// instructions.
	Generate(ctx context.Context, instructions string) error

	Close() error
}

// RuntimeFactory produces a fresh runtime instance per session.
type RuntimeFactory func() Runtime
