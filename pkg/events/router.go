package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog/log"
)

// Router owns an in-process pubsub and a watermill router so operators can
// attach handlers to the tool event stream.
type Router struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber

	logger watermill.LoggerAdapter
	router *message.Router
}

type RouterOption func(*Router)

// WithLogger routes watermill's own logging somewhere other than the default
// nop logger.
func WithLogger(logger watermill.LoggerAdapter) RouterOption {
	return func(r *Router) {
		r.logger = logger
	}
}

// NewRouter builds an in-process event router.
func NewRouter(options ...RouterOption) (*Router, error) {
	ret := &Router{
		logger: watermill.NopLogger{},
	}
	for _, option := range options {
		option(ret)
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, ret.logger)
	ret.Publisher = pubSub
	ret.Subscriber = pubSub

	router, err := message.NewRouter(message.RouterConfig{}, ret.logger)
	if err != nil {
		return nil, err
	}
	ret.router = router

	return ret, nil
}

// AddHandler subscribes a no-publish handler to the tools topic.
func (r *Router) AddHandler(name string, f func(msg *message.Message) error) {
	r.router.AddNoPublisherHandler(name, Topic, r.Subscriber, f)
}

// Run blocks until the context is cancelled.
func (r *Router) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running closes when the router has started all handlers.
func (r *Router) Running() chan struct{} {
	return r.router.Running()
}

func (r *Router) Close() error {
	if err := r.Publisher.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close pubsub")
	}
	return r.router.Close()
}

// LogEvents is a ready-made handler that writes each tool event to the
// structured log at debug level.
func LogEvents(msg *message.Message) error {
	e, err := ParseEvent(msg.Payload)
	if err != nil {
		log.Warn().Err(err).Str("message_id", msg.UUID).Msg("unparseable tool event")
		return nil
	}
	log.Debug().
		Str("type", string(e.Type)).
		Str("tool", e.Tool).
		Str("room", e.Room).
		Bool("success", e.Success).
		Msg("tool event")
	return nil
}
