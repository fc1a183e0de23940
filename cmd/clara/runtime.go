package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/clara/pkg/session"
)

// logRuntime stands in for the provider's conversational runtime: it records
// lifecycle transitions without doing any speech work.
//
// TODO: replace with the provider runtime SDK integration (bind
// StartOptions.Tools to its function-calling mechanism).
type logRuntime struct {
	room string
}

var _ session.Runtime = (*logRuntime)(nil)

func newRuntimeFactory() session.RuntimeFactory {
	return func() session.Runtime {
		return &logRuntime{}
	}
}

func (r *logRuntime) Start(_ context.Context, room string, opts session.StartOptions) error {
	r.room = room
	log.Info().
		Str("room", room).
		Str("stt", opts.Options.STTModel).
		Str("llm", opts.Options.LLMModel).
		Str("tts", opts.Options.TTSModel).
		Int("tools", len(opts.Tools.Tools())).
		Msg("runtime started")
	return nil
}

func (r *logRuntime) Generate(_ context.Context, instructions string) error {
	log.Info().Str("room", r.room).Str("instructions", instructions).Msg("runtime generate")
	return nil
}

func (r *logRuntime) Close() error {
	log.Debug().Str("room", r.room).Msg("runtime closed")
	return nil
}
