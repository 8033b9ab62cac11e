package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"support-assistant-be/internal/constant"
	"support-assistant-be/internal/pkg/logger"
	"support-assistant-be/pkg/interaction"
)

// IInteractionConsumerService drains the interaction topic into the log
// file and the in-memory stats aggregate served by the monitor endpoint.
type IInteractionConsumerService interface {
	Consume(ctx context.Context) error
}

type interactionConsumerService struct {
	pubSub *gochannel.GoChannel
	stats  *interaction.StatsAggregate
	logger logger.ILogger
}

func NewInteractionConsumerService(
	pubSub *gochannel.GoChannel,
	stats *interaction.StatsAggregate,
	log logger.ILogger,
) IInteractionConsumerService {
	return &interactionConsumerService{
		pubSub: pubSub,
		stats:  stats,
		logger: log,
	}
}

func (cs *interactionConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, interaction.Topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *interactionConsumerService) processMessage(msg *message.Message) {
	var entry interaction.LogEntry
	if err := json.Unmarshal(msg.Payload, &entry); err != nil {
		cs.logger.Error(constant.LogModuleMonitor, "failed to unmarshal interaction entry", map[string]interface{}{
			"message_uuid": msg.UUID,
			"error":        err.Error(),
		})
		msg.Ack() // invalid payloads would otherwise retry forever
		return
	}

	cs.stats.Record(entry)

	cs.logger.Info(constant.LogModuleMonitor, "chatbot interaction", map[string]interface{}{
		"interaction_id":   entry.InteractionID,
		"identity":         entry.Identity,
		"message":          entry.Message,
		"answer":           entry.Answer,
		"confidence":       entry.Confidence,
		"source_count":     entry.SourceCount,
		"outcome":          entry.Outcome(),
		"clarifying":       entry.Clarifying,
		"escalation_type":  entry.EscalationType,
		"response_time_ms": entry.ResponseTimeMs,
	})

	msg.Ack()
}
