package cron

import (
	"Ripple/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine         *cron.Cron
	publishScanJob *job.PublishScanJob
}

func NewCronManager(publishScanJob *job.PublishScanJob) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds()),
		publishScanJob: publishScanJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	// 每分钟扫描到期的定时发布帖子
	if _, err := s.engine.AddJob("0 * * * * *", s.publishScanJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
