package events

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog/log"
)

// Publisher serializes events and hands them to a watermill publisher,
// stamping each outgoing message with a sequence number in publish order.
type Publisher struct {
	publisher message.Publisher

	mu       sync.Mutex
	sequence uint64
}

// NewPublisher wraps a watermill publisher for the tools topic.
func NewPublisher(publisher message.Publisher) *Publisher {
	return &Publisher{publisher: publisher}
}

// Publish sends one event. Serialization happens here.
func (p *Publisher) Publish(e Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("sequence_number", strconv.FormatUint(p.sequence, 10))
	p.sequence++

	return p.publisher.Publish(Topic, msg)
}

// PublishBlind sends one event and only logs on failure. Tool dispatch uses
// this: observability must never affect tool results.
func (p *Publisher) PublishBlind(e Event) {
	if p == nil {
		return
	}
	if err := p.Publish(e); err != nil {
		log.Warn().Err(err).Str("tool", e.Tool).Msg("failed to publish tool event")
	}
}
