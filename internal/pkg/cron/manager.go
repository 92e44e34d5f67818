package cron

import (
	"fmt"
	log "log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	mu     sync.Mutex
	engine *cron.Cron
	job    cron.Job
	spec   string
}

// NewCronManager at 为本地挂钟时间 HH:MM
func NewCronManager(dailyJob cron.Job, at string) (*Manager, error) {
	spec, err := dailySpec(at)
	if err != nil {
		return nil, err
	}
	return &Manager{
		job:  dailyJob,
		spec: spec,
	}, nil
}

// Rebuild 以指定时区原子重建唯一的定时任务：先停旧引擎再建新引擎，不会累积重复任务。
// 时区非法时回退到 UTC。
func (s *Manager) Rebuild(timezone string) error {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Warn("invalid timezone for scheduler, falling back to UTC", "timezone", timezone, "err", err)
		loc = time.UTC
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine != nil {
		s.engine.Stop()
	}

	engine := cron.New(cron.WithSeconds(), cron.WithLocation(loc))
	if _, err = engine.AddJob(s.spec, s.job); err != nil {
		return err
	}
	engine.Start()
	s.engine = engine

	log.Info("Cron 定时任务引擎启动", "spec", s.spec, "timezone", loc.String())
	return nil
}

func (s *Manager) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine != nil {
		log.Info("Cron 定时任务引擎停止")
		s.engine.Stop()
	}
}

// EntryCount 当前已注册的任务数，应恒为 1
func (s *Manager) EntryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return 0
	}
	return len(s.engine.Entries())
}

func dailySpec(at string) (string, error) {
	parts := strings.Split(at, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid schedule time %q, want HH:MM", at)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid schedule hour %q", parts[0])
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid schedule minute %q", parts[1])
	}
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}
