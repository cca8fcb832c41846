package kafka

import (
	"Ripple/internal/job"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// PublishHandler 消费发布队列，逐条驱动帖子发布
type PublishHandler struct {
	publisher *job.PostPublisher
}

func NewPublishHandler(publisher *job.PostPublisher) *PublishHandler {
	return &PublishHandler{publisher: publisher}
}

func (s *PublishHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post publish consumer setup")
	return nil
}

func (s *PublishHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post publish consumer cleanup")
	return nil
}

func (s *PublishHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			var publishMsg PublishMessage
			if err := json.Unmarshal(msg.Value, &publishMsg); err != nil {
				log.Error("unmarshal publish message error", "err", err)
				session.MarkMessage(msg, "")
				continue
			}

			// 发布器内部自带重试，最终失败只记录日志，不阻塞队列
			if err := s.publisher.Publish(session.Context(), publishMsg.PostID); err != nil {
				log.Error("publish post failed permanently", "postID", publishMsg.PostID, "err", err)
			}
			session.MarkMessage(msg, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
