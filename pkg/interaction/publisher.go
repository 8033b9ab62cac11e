package interaction

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publisher emits interaction log entries onto the event bus. The emit is
// a side effect of request handling: failures are reported to the caller
// but must never fail the request itself.
type Publisher struct {
	publisher message.Publisher
}

// NewPublisher wraps a watermill publisher for the interaction topic
func NewPublisher(publisher message.Publisher) *Publisher {
	return &Publisher{publisher: publisher}
}

// Publish serializes the entry and puts it on the interaction topic
func (p *Publisher) Publish(_ context.Context, entry LogEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return p.publisher.Publish(Topic, message.NewMessage(watermill.NewUUID(), payload))
}
