package service

import (
	"SommPulse/internal/pkg/consts"
	"SommPulse/internal/pkg/redis"
	"SommPulse/internal/pkg/util"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	updateLockTTL    = 2 * time.Hour
	bootstrapLockTTL = 6 * time.Hour
	progressTTL      = 24 * time.Hour
)

// UpdateResult 一次管道运行的观测结果
type UpdateResult struct {
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	NewOrders      int    `json:"newOrders"`
	NewClubSignups int    `json:"newClubSignups"`
}

// PipelineService 串行化整条分析管道：摄取 → 设置更新 → 重算。
// 同一时刻只允许一次运行，通过 Redis 锁保证。
type PipelineService interface {
	RunUpdate(ctx context.Context, start, end *time.Time) (*UpdateResult, error)
	Recalculate(ctx context.Context) error
	Bootstrap(ctx context.Context, periodStart time.Time) error
	BootstrapProgress(ctx context.Context) (string, error)
}

type pipelineServiceImpl struct {
	ingestSvc   IngestService
	scoreSvc    ScoreService
	baselineSvc BaselineService
	settingsSvc SettingsService
}

func NewPipelineService(
	ingestSvc IngestService,
	scoreSvc ScoreService,
	baselineSvc BaselineService,
	settingsSvc SettingsService,
) PipelineService {
	return &pipelineServiceImpl{
		ingestSvc:   ingestSvc,
		scoreSvc:    scoreSvc,
		baselineSvc: baselineSvc,
		settingsSvc: settingsSvc,
	}
}

// RunUpdate 摄取窗口内的新数据并重算当前统计周期的得分。
// start 缺省取上次更新时间，end 缺省取今天；摄取失败不阻止重算，错误最后上抛。
func (s *pipelineServiceImpl) RunUpdate(ctx context.Context, start, end *time.Time) (*UpdateResult, error) {
	unlock, err := s.acquireLock(ctx, updateLockTTL)
	if err != nil {
		return nil, err
	}
	defer unlock()

	today := todayDate()

	endDate := today
	if end != nil {
		endDate = *end
	}
	var startDate time.Time
	if start != nil {
		startDate = *start
	} else if last, ok := s.settingsSvc.LastOrderUpdate(ctx); ok {
		startDate = last
	} else {
		startDate, err = s.settingsSvc.PeriodStart(ctx, today)
		if err != nil {
			return nil, err
		}
	}
	if startDate.After(endDate) {
		return nil, ErrInvalidDateRange
	}

	result := &UpdateResult{
		StartDate: util.FormatDate(startDate),
		EndDate:   util.FormatDate(endDate),
	}

	var feedErr error
	result.NewOrders, err = s.ingestSvc.IngestOrders(ctx, startDate, endDate)
	if err != nil {
		feedErr = err
	}
	result.NewClubSignups, err = s.ingestSvc.IngestClubSignups(ctx, startDate, endDate)
	if err != nil {
		feedErr = err
	}

	// 只有跑到当天为止的更新才推进水位
	if feedErr == nil && endDate.Equal(today) {
		if err = s.settingsSvc.MarkUpdated(ctx, endDate); err != nil {
			return result, err
		}
	}

	periodStart, err := s.settingsSvc.PeriodStart(ctx, today)
	if err != nil {
		return result, err
	}
	if err = s.scoreSvc.Recompute(ctx, periodStart, today); err != nil {
		return result, err
	}

	log.InfoContext(ctx, "pipeline update finished",
		"start", result.StartDate,
		"end", result.EndDate,
		"new_orders", result.NewOrders,
		"new_club_signups", result.NewClubSignups)
	return result, feedErr
}

// Recalculate 只重算当前统计周期，不拉取新数据
func (s *pipelineServiceImpl) Recalculate(ctx context.Context) error {
	unlock, err := s.acquireLock(ctx, updateLockTTL)
	if err != nil {
		return err
	}
	defer unlock()

	today := todayDate()
	periodStart, err := s.settingsSvc.PeriodStart(ctx, today)
	if err != nil {
		return err
	}
	return s.scoreSvc.Recompute(ctx, periodStart, today)
}

// Bootstrap 一次性初始化：摄取参考窗口（periodStart 前 366 天）与当前周期的数据，
// 把发现的全部销售设为在册，构建基线，完成首次重算。进度写入 Redis 供前端轮询。
func (s *pipelineServiceImpl) Bootstrap(ctx context.Context, periodStart time.Time) error {
	unlock, err := s.acquireLock(ctx, bootstrapLockTTL)
	if err != nil {
		return err
	}
	defer unlock()

	fail := func(stage string, err error) error {
		s.setProgress(ctx, "failed:"+stage)
		log.ErrorContext(ctx, "bootstrap failed", "stage", stage, "err", err)
		return err
	}

	today := todayDate()
	refStart := periodStart.AddDate(0, 0, -consts.RefWindowDays)
	refEnd := periodStart.AddDate(0, 0, -1)

	s.setProgress(ctx, "fetching_reference_orders")
	if _, err = s.ingestSvc.IngestOrders(ctx, refStart, refEnd); err != nil {
		return fail("fetching_reference_orders", err)
	}

	s.setProgress(ctx, "fetching_reference_clubs")
	if _, err = s.ingestSvc.IngestClubSignups(ctx, refStart, refEnd); err != nil {
		return fail("fetching_reference_clubs", err)
	}

	s.setProgress(ctx, "fetching_current_orders")
	if _, err = s.ingestSvc.IngestOrders(ctx, periodStart, today); err != nil {
		return fail("fetching_current_orders", err)
	}

	s.setProgress(ctx, "fetching_current_clubs")
	if _, err = s.ingestSvc.IngestClubSignups(ctx, periodStart, today); err != nil {
		return fail("fetching_current_clubs", err)
	}

	s.setProgress(ctx, "setting_active_associates")
	associates, err := s.settingsSvc.AllAssociates(ctx)
	if err != nil {
		return fail("setting_active_associates", err)
	}
	if len(associates) > 0 {
		if err = s.settingsSvc.SetActiveAssociates(ctx, associates); err != nil {
			return fail("setting_active_associates", err)
		}
	}

	s.setProgress(ctx, "normalizing_baseline")
	if err = s.baselineSvc.BuildBaseline(ctx, refStart, refEnd); err != nil {
		return fail("normalizing_baseline", err)
	}

	s.setProgress(ctx, "calculating_scores")
	if err = s.scoreSvc.Recompute(ctx, periodStart, today); err != nil {
		return fail("calculating_scores", err)
	}

	if err = s.settingsSvc.MarkUpdated(ctx, today); err != nil {
		return fail("finalizing", err)
	}

	s.setProgress(ctx, "complete")
	log.InfoContext(ctx, "bootstrap complete",
		"period_start", util.FormatDate(periodStart),
		"ref_start", util.FormatDate(refStart),
		"ref_end", util.FormatDate(refEnd))
	return nil
}

func (s *pipelineServiceImpl) BootstrapProgress(ctx context.Context) (string, error) {
	return redis.GetValue(ctx, consts.BootstrapProgressKey)
}

func (s *pipelineServiceImpl) acquireLock(ctx context.Context, ttl time.Duration) (func(), error) {
	token := uuid.NewString()
	locked, err := redis.TryLock(ctx, consts.PipelineLockKey, token, ttl, 1)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrPipelineBusy
	}
	return func() { redis.UnLock(ctx, consts.PipelineLockKey, token) }, nil
}

func (s *pipelineServiceImpl) setProgress(ctx context.Context, stage string) {
	if err := redis.SetWithExpiration(ctx, consts.BootstrapProgressKey, stage, progressTTL); err != nil {
		log.WarnContext(ctx, "failed to record bootstrap progress", "stage", stage, "err", err)
	}
}

func todayDate() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
