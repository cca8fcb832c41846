package job

import (
	"Ripple/internal/repository"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakePostRepo 只实现发布相关的方法，其余方法不会被调用
type fakePostRepo struct {
	repository.PostRepo

	rows     int64
	failures int
	calls    int
}

func (f *fakePostRepo) MarkPublished(ctx context.Context, id uint64) (int64, error) {
	f.calls++
	if f.calls <= f.failures {
		return 0, errors.New("connection refused")
	}
	return f.rows, nil
}

func TestPostPublisher_Publish(t *testing.T) {
	t.Run("FirstAttemptSucceeds", func(t *testing.T) {
		repo := &fakePostRepo{rows: 1}
		publisher := &PostPublisher{postRepo: repo, baseDelay: time.Millisecond}

		err := publisher.Publish(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, 1, repo.calls)
	})

	t.Run("RecoversAfterTransientFailures", func(t *testing.T) {
		repo := &fakePostRepo{rows: 1, failures: 2}
		publisher := &PostPublisher{postRepo: repo, baseDelay: time.Millisecond}

		err := publisher.Publish(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, 3, repo.calls)
	})

	t.Run("GivesUpAfterMaxAttempts", func(t *testing.T) {
		repo := &fakePostRepo{rows: 1, failures: 10}
		publisher := &PostPublisher{postRepo: repo, baseDelay: time.Millisecond}

		err := publisher.Publish(context.Background(), 1)
		assert.Error(t, err)
		assert.Equal(t, publishMaxAttempts, repo.calls)
	})

	t.Run("AlreadyPublishedIsNoop", func(t *testing.T) {
		// 帖子已发布或已删除时更新零行，不算错误
		repo := &fakePostRepo{rows: 0}
		publisher := &PostPublisher{postRepo: repo, baseDelay: time.Millisecond}

		err := publisher.Publish(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, 1, repo.calls)
	})

	t.Run("ContextCancelled", func(t *testing.T) {
		repo := &fakePostRepo{rows: 1, failures: 10}
		publisher := &PostPublisher{postRepo: repo, baseDelay: time.Hour}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := publisher.Publish(ctx, 1)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
