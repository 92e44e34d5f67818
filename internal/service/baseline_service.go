package service

import (
	"SommPulse/internal/model"
	"SommPulse/internal/pkg/consts"
	"SommPulse/internal/pkg/util"
	"SommPulse/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type BaselineService interface {
	BuildBaseline(ctx context.Context, start, end time.Time) error
	GetWindow(ctx context.Context, start, end time.Time) ([]*model.RefDay, error)
}

type baselineServiceImpl struct {
	orderRepo   repository.OrderRepo
	refRepo     repository.RefRepo
	settingsSvc SettingsService
}

func NewBaselineService(
	orderRepo repository.OrderRepo,
	refRepo repository.RefRepo,
	settingsSvc SettingsService,
) BaselineService {
	return &baselineServiceImpl{
		orderRepo:   orderRepo,
		refRepo:     refRepo,
		settingsSvc: settingsSvc,
	}
}

type baselineCell struct {
	mon int
	dow int
}

type cellStat struct {
	sum   float64
	count int
}

// BuildBaseline 基于历史订单构建平滑的期望营收面。
// 每个 (月份, 星期) 单元的解析顺序：自身均值（至少 2 个样本）→ 相邻月份均值 → 全局星期均值 → 0。
// 所有回退都从第一步的原始日营收面计算，结果一次性整窗替换。
func (s *baselineServiceImpl) BuildBaseline(ctx context.Context, start, end time.Time) error {
	if start.After(end) {
		return ErrInvalidDateRange
	}

	totals, err := s.orderRepo.GetDailyTotals(ctx, start, end)
	if err != nil {
		return err
	}
	rawByDate := make(map[string]float64, len(totals))
	for _, row := range totals {
		rawByDate[row.OrderDate] = row.Total
	}

	fiscalStartMonth := s.fiscalStartMonth(ctx)

	// 第一步：原始日营收面，附带星期编码、月份和权重
	rows := make([]*model.RefDay, 0, consts.RefWindowDays)
	util.EachDay(start, end, func(d time.Time) {
		rows = append(rows, &model.RefDay{
			Date:    d,
			Dow:     util.DowCode(d),
			Mon:     int(d.Month()),
			FiscMon: util.FiscalMonth(int(d.Month()), fiscalStartMonth),
			TtlEarn: rawByDate[util.FormatDate(d)],
			DayWght: util.DayWeight(d),
		})
	})

	// 第二步：对严格为正的原始值统计每个单元和每个星期的均值
	cellStats := make(map[baselineCell]*cellStat)
	dowStats := make(map[int]*cellStat)
	for _, row := range rows {
		if row.TtlEarn <= 0 {
			continue
		}
		addStat(cellStats, baselineCell{mon: row.Mon, dow: row.Dow}, row.TtlEarn)
		addDowStat(dowStats, row.Dow, row.TtlEarn)
	}

	// 第三步：逐单元解析平滑值
	resolved := make(map[baselineCell]float64)
	for mon := 1; mon <= 12; mon++ {
		for dow := 1; dow <= 7; dow++ {
			cell := baselineCell{mon: mon, dow: dow}
			resolved[cell] = resolveCell(cell, cellStats, dowStats)
		}
	}

	// 第四步：把解析值写回每一行并整窗替换
	for _, row := range rows {
		row.TtlEarn = resolved[baselineCell{mon: row.Mon, dow: row.Dow}]
	}
	if err = s.refRepo.ReplaceWindow(ctx, start, end, rows); err != nil {
		return err
	}

	log.InfoContext(ctx, "baseline rebuilt",
		"start", util.FormatDate(start),
		"end", util.FormatDate(end),
		"days", len(rows))
	return nil
}

func (s *baselineServiceImpl) GetWindow(ctx context.Context, start, end time.Time) ([]*model.RefDay, error) {
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}
	return s.refRepo.GetWindow(ctx, start, end)
}

func (s *baselineServiceImpl) fiscalStartMonth(ctx context.Context) int {
	yearType, err := s.settingsSvc.Get(ctx, consts.SettingYearType)
	if err != nil || yearType != consts.YearTypeFiscal {
		return 1
	}
	raw, err := s.settingsSvc.Get(ctx, consts.SettingFiscalYearStart)
	if err != nil {
		return 1
	}
	month, _, err := parseFiscalStart(raw)
	if err != nil {
		return 1
	}
	return month
}

func resolveCell(cell baselineCell, cellStats map[baselineCell]*cellStat, dowStats map[int]*cellStat) float64 {
	if stat, ok := cellStats[cell]; ok && stat.count >= 2 {
		return stat.sum / float64(stat.count)
	}

	// 相邻月份：同一星期，月份前后各一，12 月与 1 月回绕
	prev, next := util.AdjacentMonths(cell.mon)
	adjSum, adjCount := 0.0, 0
	for _, mon := range []int{prev, next} {
		if stat, ok := cellStats[baselineCell{mon: mon, dow: cell.dow}]; ok {
			adjSum += stat.sum
			adjCount += stat.count
		}
	}
	if adjCount > 0 {
		return adjSum / float64(adjCount)
	}

	if stat, ok := dowStats[cell.dow]; ok && stat.count > 0 {
		return stat.sum / float64(stat.count)
	}
	return 0
}

func addStat(stats map[baselineCell]*cellStat, cell baselineCell, value float64) {
	stat, ok := stats[cell]
	if !ok {
		stat = &cellStat{}
		stats[cell] = stat
	}
	stat.sum += value
	stat.count++
}

func addDowStat(stats map[int]*cellStat, dow int, value float64) {
	stat, ok := stats[dow]
	if !ok {
		stat = &cellStat{}
		stats[dow] = stat
	}
	stat.sum += value
	stat.count++
}
