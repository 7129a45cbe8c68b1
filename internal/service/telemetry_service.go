package service

import (
	"context"
	"encoding/json"
	"time"

	"bookmark-reorder-be/internal/pkg/logger"
	"bookmark-reorder-be/pkg/events"
	natspub "bookmark-reorder-be/pkg/nats"
	"bookmark-reorder-be/pkg/reorder"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// telemetryMessage is the wire shape of one drag telemetry event on the bus.
type telemetryMessage struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload"`
}

// TelemetrySink bridges the reorder engine to the telemetry bus. Record never
// blocks the drag path: publishing happens on its own goroutine and a failed
// publish is logged and dropped.
type TelemetrySink struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewTelemetrySink(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) reorder.Sink {
	return &TelemetrySink{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

func (s *TelemetrySink) Record(event events.Event) {
	payload, err := json.Marshal(telemetryMessage{
		Type:       event.EventType(),
		OccurredAt: event.Timestamp(),
		Payload:    event.Payload(),
	})
	if err != nil {
		s.logger.Warn("telemetry", "failed to marshal telemetry event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
		return
	}

	go func() {
		msg := message.NewMessage(watermill.NewUUID(), payload)
		if err := s.pubSub.Publish(s.topicName, msg); err != nil {
			s.logger.Warn("telemetry", "failed to publish telemetry event", map[string]interface{}{
				"event_type": event.EventType(),
				"error":      err.Error(),
			})
		}
	}()
}

type ITelemetryService interface {
	Consume(ctx context.Context) error
}

// telemetryService drains the in-process telemetry topic, writes each event to
// the structured log and, when a NATS publisher is wired, forwards it to the
// durable stream for external consumers.
type telemetryService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	publisher *natspub.Publisher
	logger    logger.ILogger
}

func NewTelemetryService(
	pubSub *gochannel.GoChannel,
	topicName string,
	publisher *natspub.Publisher,
	log logger.ILogger,
) ITelemetryService {
	return &telemetryService{
		pubSub:    pubSub,
		topicName: topicName,
		publisher: publisher,
		logger:    log,
	}
}

func (ts *telemetryService) Consume(ctx context.Context) error {
	messages, err := ts.pubSub.Subscribe(ctx, ts.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ts.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ts *telemetryService) processMessage(ctx context.Context, msg *message.Message) {
	var payload telemetryMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		ts.logger.Warn("telemetry", "failed to unmarshal telemetry message", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack malformed messages to prevent infinite retry
		msg.Ack()
		return
	}

	ts.logger.Info("telemetry", payload.Type, payload.Payload)

	if ts.publisher != nil {
		event := events.BaseEvent{
			Type:       payload.Type,
			Data:       payload.Payload,
			OccurredAt: payload.OccurredAt,
		}
		if err := ts.publisher.Publish(ctx, event); err != nil {
			ts.logger.Warn("telemetry", "failed to forward event to NATS", map[string]interface{}{
				"event_type": payload.Type,
				"error":      err.Error(),
			})
		}
	}

	msg.Ack()
}
