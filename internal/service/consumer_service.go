package service

import (
	"context"
	"encoding/json"

	"tobacco-catalog-be/internal/dto"
	"tobacco-catalog-be/internal/entity"
	"tobacco-catalog-be/internal/pkg/logger"
	"tobacco-catalog-be/internal/repository/unitofwork"
	"tobacco-catalog-be/pkg/events"
	pktNats "tobacco-catalog-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process catalog topic: every event is stored
// in catalog_events, written to the audit log and, when NATS is configured,
// forwarded to the CATALOG stream.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	auditLogger    logger.ILogger
	logger         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	auditLogger logger.ILogger,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		auditLogger:    auditLogger,
		logger:         logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// gochannel redelivers a nack immediately, so every path acks
	defer msg.Ack()

	var payload dto.CatalogEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CATALOG_CONSUMER", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		return
	}

	cs.auditLogger.Info("CATALOG_AUDIT", payload.Type, map[string]interface{}{
		"event_id": payload.Id.String(),
		"name":     payload.TobaccoName,
		"payload":  payload.Payload,
	})

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	err := uow.CatalogEventRepository().Create(ctx, &entity.CatalogEvent{
		Id:          payload.Id,
		Type:        payload.Type,
		TobaccoName: payload.TobaccoName,
		Payload:     payload.Payload,
		OccurredAt:  payload.OccurredAt,
	})
	if err != nil {
		cs.logger.Error("CATALOG_CONSUMER", "Failed to store catalog event", map[string]interface{}{
			"event_id": payload.Id.String(),
			"error":    err.Error(),
		})
	}

	if cs.eventPublisher != nil {
		evt := events.BaseEvent{
			Type:       payload.Type,
			Data:       payload.Payload,
			OccurredAt: payload.OccurredAt,
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.logger.Warn("CATALOG_CONSUMER", "Failed to forward catalog event to NATS", map[string]interface{}{
				"type":  payload.Type,
				"error": err.Error(),
			})
		}
	}
}
