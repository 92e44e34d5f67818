package job

import (
	"SommPulse/internal/pkg/logger"
	"SommPulse/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

type DailyUpdateJob struct {
	pipelineSvc service.PipelineService
}

func NewDailyUpdateJob(pipelineSvc service.PipelineService) *DailyUpdateJob {
	return &DailyUpdateJob{pipelineSvc: pipelineSvc}
}

// Run 每日定时入口：任何错误只记录不上抛，保证调度循环不受单日失败影响
func (s *DailyUpdateJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "daily update job panic", "panic", r)
		}
	}()

	result, err := s.pipelineSvc.RunUpdate(ctx, nil, nil)
	if err != nil {
		log.ErrorContext(ctx, "daily update job error", "err", err)
	}
	if result != nil {
		log.InfoContext(ctx, "daily update job finished",
			"start", result.StartDate,
			"end", result.EndDate,
			"new_orders", result.NewOrders,
			"new_club_signups", result.NewClubSignups)
	}
}
