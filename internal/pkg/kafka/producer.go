package kafka

import (
	"Ripple/internal/api/config"
	"context"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// PublishMessage 定时发布队列中的消息体
type PublishMessage struct {
	PostID uint64 `json:"post_id"`
}

type PublishProducer interface {
	EnqueuePost(ctx context.Context, postID uint64) error
	Close() error
}

type publishProducerImpl struct {
	producer sarama.SyncProducer
	topic    string
}

func NewPublishProducer(cfg *config.Config) (PublishProducer, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &publishProducerImpl{
		producer: producer,
		topic:    cfg.KafkaPublishConsumer.Topic,
	}, nil
}

// EnqueuePost 将到期帖子投递到发布队列，以帖子 ID 作为分区键保证同帖有序
func (s *publishProducerImpl) EnqueuePost(ctx context.Context, postID uint64) error {
	msg := PublishMessage{PostID: postID}
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	partition, offset, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(postID, 10)),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "post enqueued for publishing",
		"postID", postID, "partition", partition, "offset", offset)
	return nil
}

func (s *publishProducerImpl) Close() error {
	return s.producer.Close()
}
