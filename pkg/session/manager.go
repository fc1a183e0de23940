package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/clara/pkg/events"
	"github.com/go-go-golems/clara/pkg/tools"
)

// Session binds one runtime instance to one room. It lives until the room
// ends or the end-call tool deletes it.
type Session struct {
	ID     string
	Room   string
	Source string

	runtime    Runtime
	dispatcher *tools.Dispatcher
}

// Dispatcher exposes the session's tool surface (used by tests and debug
// tooling; the runtime receives it through StartOptions).
func (s *Session) Dispatcher() *tools.Dispatcher {
	return s.dispatcher
}

func (s *Session) Close() error {
	return s.runtime.Close()
}

// Manager creates sessions for inbound room events.
type Manager struct {
	toolbox    *tools.Toolbox
	publisher  *events.Publisher
	newRuntime RuntimeFactory
	options    RuntimeOptions
}

// NewManager wires a session manager. publisher may be nil.
func NewManager(toolbox *tools.Toolbox, publisher *events.Publisher, newRuntime RuntimeFactory, options RuntimeOptions) *Manager {
	return &Manager{
		toolbox:    toolbox,
		publisher:  publisher,
		newRuntime: newRuntime,
		options:    options,
	}
}

// StartSession builds a session for a room, starts the runtime against it and
// issues the scripted greeting. Any startup failure is logged and the session
// abandoned; reconnection, if any, is the transport's responsibility.
func (m *Manager) StartSession(ctx context.Context, room string) (*Session, error) {
	source := "web"
	if strings.HasPrefix(room, "call-") {
		source = "sip"
	}
	log.Info().Str("room", room).Str("source", source).Msg("session_start")

	registry := m.toolbox.RegistryFor(room)
	dispatcher := tools.NewDispatcher(registry, m.publisher, room)

	runtime := m.newRuntime()
	sess := &Session{
		ID:         uuid.NewString(),
		Room:       room,
		Source:     source,
		runtime:    runtime,
		dispatcher: dispatcher,
	}

	opts := StartOptions{
		Instructions: Instructions,
		Options:      m.options,
		Tools:        dispatcher,
	}
	if err := runtime.Start(ctx, room, opts); err != nil {
		m.abandon(room, "runtime start", runtime, err)
		return nil, err
	}

	if err := runtime.Generate(ctx, GreetingInstructions); err != nil {
		m.abandon(room, "greeting", runtime, err)
		return nil, err
	}

	log.Info().Str("room", room).Str("session_id", sess.ID).Msg("session_ready")
	return sess, nil
}

// abandon logs the failure kind and message and discards the session. No
// retry happens here.
func (m *Manager) abandon(room, stage string, runtime Runtime, err error) {
	log.Error().
		Str("room", room).
		Str("stage", stage).
		Str("kind", fmt.Sprintf("%T", err)).
		Err(err).
		Msg("session startup failed, abandoning")
	_ = runtime.Close()
}

// JobSource yields room names for inbound calls.
type JobSource interface {
	// Next blocks until a room is available or the context ends.
	Next(ctx context.Context) (string, error)
}

// ChannelSource is a JobSource fed in-process.
type ChannelSource struct {
	ch chan string
}

func NewChannelSource(buffer int) *ChannelSource {
	return &ChannelSource{ch: make(chan string, buffer)}
}

// Enqueue hands a room to the job loop. It reports false when the queue is
// full.
func (c *ChannelSource) Enqueue(room string) bool {
	select {
	case c.ch <- room:
		return true
	default:
		return false
	}
}

func (c *ChannelSource) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case room := <-c.ch:
		return room, nil
	}
}

// Run serves sessions until the context ends. Each session runs in its own
// goroutine; one failed startup never blocks the next call.
func (m *Manager) Run(ctx context.Context, source JobSource) error {
	for {
		room, err := source.Next(ctx)
		if err != nil {
			return err
		}
		go func(room string) {
			if _, err := m.StartSession(ctx, room); err != nil {
				log.Warn().Str("room", room).Err(err).Msg("session not started")
			}
		}(room)
	}
}
