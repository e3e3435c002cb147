package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Astemirdum/pinjam-rt/pkg/kafka"
	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type stats func(ctx context.Context, event kafka.EventLoan) error

type Consumer struct {
	statsHandler stats
	log          *zap.Logger
}

func NewConsumer(stats stats, log *zap.Logger) *Consumer {
	return &Consumer{
		statsHandler: stats,
		log:          log.Named("consumer"),
	}
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks undecodable messages so they are skipped. A handler
// failure ends the claim without marking, so the next session resumes from
// the failed offset.
func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var event kafka.EventLoan
			if err := json.Unmarshal(message.Value, &event); err != nil {
				consumer.log.Error("decode loan event", zap.Error(err), zap.Int64("offset", message.Offset))
				session.MarkMessage(message, "")
				continue
			}

			if err := consumer.statsHandler(session.Context(), event); err != nil {
				consumer.log.Error("consumer.statsHandler", zap.Error(err), zap.Int64("offset", message.Offset))
				return fmt.Errorf("stats offset %d: %w", message.Offset, err)
			}

			consumer.log.Debug("Message claimed:", zap.String("value", string(message.Value)), zap.Time("timestamp", message.Timestamp), zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
