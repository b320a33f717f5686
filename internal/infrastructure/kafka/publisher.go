package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type RewardEventPublisher struct {
	writer *kafka.Writer
}

func NewRewardEventPublisher(brokers []string, topic string) *RewardEventPublisher {
	return &RewardEventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *RewardEventPublisher) PublishRewardEvent(event RewardEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.CustomerID),
		Value: msg,
		Time:  time.Now(),
	})
}

func (p *RewardEventPublisher) Close() error {
	return p.writer.Close()
}
