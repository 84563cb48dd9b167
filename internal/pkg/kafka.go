package pkg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

var ErrNoBrokers = errors.New("no kafka brokers configured")

// EventProducer 群组事件生产者，发布 outbox 的事件行
type EventProducer struct {
	writer *kafka.Writer
	topic  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func NewEventProducer(cfg KafkaConfig) (*EventProducer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: 5 * time.Second,
		Async:        false,
	}
	return &EventProducer{writer: w, topic: cfg.Topic}, nil
}

func (p *EventProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// Publish 按群组 id 做 key，同一群组的事件落同一分区保序
func (p *EventProducer) Publish(ctx context.Context, groupID uint64, payload []byte) error {
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", groupID)),
		Value: payload,
	}
	return p.writer.WriteMessages(ctx, msg)
}
