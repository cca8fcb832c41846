package job

import (
	"Ripple/internal/repository"
	"context"
	log "log/slog"
	"time"
)

const (
	publishMaxAttempts = 3
	publishBaseDelay   = 500 * time.Millisecond
)

// PostPublisher 执行单个帖子的发布动作，数据库失败时指数退避重试
type PostPublisher struct {
	postRepo  repository.PostRepo
	baseDelay time.Duration
}

func NewPostPublisher(postRepo repository.PostRepo) *PostPublisher {
	return &PostPublisher{
		postRepo:  postRepo,
		baseDelay: publishBaseDelay,
	}
}

// Publish 将帖子置为已发布，发布动作幂等：
// 帖子已发布或已被删除时更新零行，视为正常结束
func (s *PostPublisher) Publish(ctx context.Context, postID uint64) error {
	var lastErr error
	delay := s.baseDelay

	for attempt := 1; attempt <= publishMaxAttempts; attempt++ {
		rows, err := s.postRepo.MarkPublished(ctx, postID)
		if err == nil {
			if rows == 0 {
				log.InfoContext(ctx, "post already published or gone, skipping", "postID", postID)
				return nil
			}
			log.InfoContext(ctx, "post published", "postID", postID)
			return nil
		}

		lastErr = err
		log.WarnContext(ctx, "publish attempt failed",
			"postID", postID, "attempt", attempt, "err", err)

		if attempt == publishMaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	log.ErrorContext(ctx, "giving up publishing post", "postID", postID, "err", lastErr)
	return lastErr
}
