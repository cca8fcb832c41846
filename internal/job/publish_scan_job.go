package job

import (
	"Ripple/internal/pkg/kafka"
	"Ripple/internal/pkg/logger"
	"Ripple/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// PublishScanJob 定时扫描到期的未发布帖子并投递到发布队列
type PublishScanJob struct {
	postRepo repository.PostRepo
	producer kafka.PublishProducer
}

func NewPublishScanJob(postRepo repository.PostRepo, producer kafka.PublishProducer) *PublishScanJob {
	return &PublishScanJob{
		postRepo: postRepo,
		producer: producer,
	}
}

func (s *PublishScanJob) Run() {
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, uuid.NewString())

	ids, err := s.postRepo.GetDuePostIDs(ctx, time.Now())
	if err != nil {
		log.ErrorContext(ctx, "scan due posts failed", "err", err)
		return
	}
	if len(ids) == 0 {
		return
	}

	log.InfoContext(ctx, "due posts found", "count", len(ids))

	for _, id := range ids {
		if err := s.producer.EnqueuePost(ctx, id); err != nil {
			// 入队失败不中断，下一轮扫描会再次捞起该帖子
			log.ErrorContext(ctx, "enqueue post failed", "postID", id, "err", err)
		}
	}
}
