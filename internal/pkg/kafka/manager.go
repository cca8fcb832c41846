package kafka

import (
	"Ripple/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	publishConsumer sarama.ConsumerGroup
	publishHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	publishHandler sarama.ConsumerGroupHandler,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	publishConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaPublishConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		publishConsumer: publishConsumer,
		publishHandler:  publishHandler,
	}, nil
}

// Start 启动所有消费者，阻塞直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaPublishConsumer.Topic
		log.Info("Post publish consumer started", "topic", topic)
		for {
			if err := m.publishConsumer.Consume(ctx, []string{topic}, m.publishHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.publishConsumer.Close(); err != nil {
		log.Error("Failed to close publish consumer", "err", err)
	}

	return nil
}
