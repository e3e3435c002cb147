package publisher

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/Astemirdum/pinjam-rt/pkg/circuit_breaker"
	"github.com/Astemirdum/pinjam-rt/pkg/kafka"
	"github.com/IBM/sarama"
)

type Publisher interface {
	Publish(ctx context.Context, event kafka.EventLoan) error
}

type Kafka struct {
	producer sarama.SyncProducer
	topic    string
	cb       circuit_breaker.CircuitBreaker
}

func NewKafka(producer sarama.SyncProducer, topic string) *Kafka {
	return &Kafka{
		producer: producer,
		topic:    topic,
		cb: circuit_breaker.New(circuit_breaker.Config{
			Window:       10,
			FailureRatio: 0.5,
			Cooldown:     30 * time.Second,
			Probes:       3,
		}),
	}
}

// Publish sends the event keyed by loan id so events of one loan stay ordered.
// While the broker keeps failing, calls fail fast with circuit_breaker.ErrOpen.
func (p *Kafka) Publish(_ context.Context, event kafka.EventLoan) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(strconv.Itoa(event.LoanID)),
		Value:     sarama.ByteEncoder(data),
		Timestamp: event.Timestamp,
	}
	return p.cb.Call(func() error {
		_, _, err := p.producer.SendMessage(msg)
		return err
	})
}

// Noop is used when kafka is disabled.
type Noop struct{}

func (Noop) Publish(context.Context, kafka.EventLoan) error { return nil }
