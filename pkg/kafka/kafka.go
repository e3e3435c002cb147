package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/IBM/sarama"
)

const (
	LoanTopic          = "loan-events"
	StatsConsumerGroup = "loan-stats"
)

type Config struct {
	Addrs   []string `yaml:"addrs" envconfig:"ADDRS" default:"localhost:9092"`
	Enabled bool     `yaml:"enabled" envconfig:"ENABLED"`
}

type EventType string

const (
	EventSubmitted EventType = "SUBMITTED"
	EventDecided   EventType = "DECIDED"
	EventCleared   EventType = "CLEARED"
)

// EventLoan is published by the loans service after every registry mutation.
type EventLoan struct {
	EventUid  string    `json:"eventUid"`
	Timestamp time.Time `json:"timestamp"`
	EventType EventType `json:"eventType"`
	LoanID    int       `json:"loanId,omitempty"`
	ItemType  string    `json:"itemType,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	Status    string    `json:"status,omitempty"`
	// Count is the number of records removed by a CLEARED event.
	Count int `json:"count,omitempty"`
}

func NewSyncProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Retry.Max = 3

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	defaultCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.BalanceStrategyRoundRobin}

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume runs the consumer group session loop until ctx is done or the group is closed.
func Consume(ctx context.Context, group sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, topics ...string) error {
	for {
		if err := group.Consume(ctx, topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func CreateTopics(cfg Config, topics ...string) error {
	admin, err := sarama.NewClusterAdmin(cfg.Addrs, sarama.NewConfig())
	if err != nil {
		return err
	}
	defer admin.Close()

	for _, topic := range topics {
		err := admin.CreateTopic(topic, &sarama.TopicDetail{
			NumPartitions:     1,
			ReplicationFactor: 1,
		}, false)
		var topicErr *sarama.TopicError
		if errors.As(err, &topicErr) && topicErr.Err == sarama.ErrTopicAlreadyExists {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
