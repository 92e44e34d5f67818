package service

import (
	"SommPulse/internal/model"
	"SommPulse/internal/pkg/util"
	"SommPulse/internal/repository"
	"context"
	log "log/slog"
	"sort"
	"time"
)

const (
	signupBonusPoints  = 50.0
	experienceCapDays  = 365.0
	experienceMaxBonus = 0.20
)

type ScoreService interface {
	Recompute(ctx context.Context, start, end time.Time) error
	GetScores(ctx context.Context, start, end time.Time, associates []string) ([]*model.SommScore, error)
	GetSummary(ctx context.Context, start, end time.Time, associates []string) ([]*repository.ScoreSummary, error)
}

type scoreServiceImpl struct {
	orderRepo   repository.OrderRepo
	clubRepo    repository.ClubRepo
	scoreRepo   repository.ScoreRepo
	settingsSvc SettingsService
}

func NewScoreService(
	orderRepo repository.OrderRepo,
	clubRepo repository.ClubRepo,
	scoreRepo repository.ScoreRepo,
	settingsSvc SettingsService,
) ScoreService {
	return &scoreServiceImpl{
		orderRepo:   orderRepo,
		clubRepo:    clubRepo,
		scoreRepo:   scoreRepo,
		settingsSvc: settingsSvc,
	}
}

// CalculateExperienceBonus 按累计出勤天数线性爬坡的资历加成，一年封顶 20%
func CalculateExperienceBonus(daysWorked int) float64 {
	if daysWorked <= 0 {
		return 0
	}
	ramp := float64(daysWorked) / experienceCapDays
	if ramp > 1 {
		ramp = 1
	}
	return ramp * experienceMaxBonus
}

type rawScore struct {
	associate string
	score     float64
}

// Recompute 对闭区间内的每个日期重算得分并整体替换。
// 幂等：同一数据上重复调用产生完全相同的行；空阵容的日期不触达。
func (s *scoreServiceImpl) Recompute(ctx context.Context, start, end time.Time) error {
	if start.After(end) {
		return ErrInvalidDateRange
	}

	revenueRows, err := s.orderRepo.GetDailyRevenue(ctx, start, end)
	if err != nil {
		return err
	}
	signupRows, err := s.clubRepo.GetDailySignupCounts(ctx, start, end)
	if err != nil {
		return err
	}
	workDayRows, err := s.orderRepo.GetWorkDays(ctx, end)
	if err != nil {
		return err
	}
	activeList, err := s.settingsSvc.ActiveAssociates(ctx)
	if err != nil {
		return err
	}

	active := make(map[string]struct{}, len(activeList))
	for _, name := range activeList {
		active[name] = struct{}{}
	}

	// 日期 -> 销售 -> 当日营收
	revenueByDate := make(map[string]map[string]float64)
	for _, row := range revenueRows {
		byAssoc, ok := revenueByDate[row.WorkDate]
		if !ok {
			byAssoc = make(map[string]float64)
			revenueByDate[row.WorkDate] = byAssoc
		}
		byAssoc[row.SalesAssociate] = row.TotalRevenue
	}

	signupsByDate := make(map[string]map[string]int)
	for _, row := range signupRows {
		byAssoc, ok := signupsByDate[row.SignupDate]
		if !ok {
			byAssoc = make(map[string]int)
			signupsByDate[row.SignupDate] = byAssoc
		}
		byAssoc[row.SalesAssociate] = row.TotalSignups
	}

	// 销售 -> 出勤日期升序列表，资历按严格早于当日的出勤天数计
	workDays := make(map[string][]string)
	for _, row := range workDayRows {
		workDays[row.SalesAssociate] = append(workDays[row.SalesAssociate], row.WorkDate)
	}
	for _, days := range workDays {
		sort.Strings(days)
	}

	dates := make([]string, 0, len(revenueByDate))
	for date := range revenueByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	touched := make([]time.Time, 0, len(dates))
	scoreRows := make([]*model.SommScore, 0)

	for _, dateStr := range dates {
		date, err := util.ParseDate(dateStr)
		if err != nil {
			log.WarnContext(ctx, "skipping unparsable work date", "date", dateStr, "err", err)
			continue
		}

		byAssoc := revenueByDate[dateStr]
		cohort := make([]string, 0, len(byAssoc))
		for associate := range byAssoc {
			if _, ok := active[associate]; ok {
				cohort = append(cohort, associate)
			}
		}
		if len(cohort) == 0 {
			// 当日没有在册销售出单，不产生得分行，也不删除旧行
			continue
		}
		sort.Strings(cohort)

		teamRevenue := 0.0
		for _, associate := range cohort {
			teamRevenue += byAssoc[associate]
		}
		avgRevenue := teamRevenue / float64(len(cohort))
		dayWeight := util.DayWeight(date)

		raws := make([]rawScore, 0, len(cohort))
		for _, associate := range cohort {
			revenueScore := 0.0
			if avgRevenue > 0 {
				revenueScore = ((byAssoc[associate] - avgRevenue) / avgRevenue) * 50
			}

			bonus := CalculateExperienceBonus(daysWorkedBefore(workDays[associate], dateStr))
			dailyScore := revenueScore * dayWeight * (1 + bonus)

			if signups, ok := signupsByDate[dateStr]; ok {
				dailyScore += float64(signups[associate]) * signupBonusPoints * (1 + bonus)
			}

			raws = append(raws, rawScore{associate: associate, score: dailyScore})
		}

		touched = append(touched, date)
		scoreRows = append(scoreRows, normalizeDay(date, raws)...)
	}

	if len(touched) == 0 {
		log.InfoContext(ctx, "recompute touched no dates",
			"start", util.FormatDate(start), "end", util.FormatDate(end))
		return nil
	}

	if err = s.scoreRepo.ReplaceForDates(ctx, touched, scoreRows); err != nil {
		return err
	}

	log.InfoContext(ctx, "scores recomputed",
		"start", util.FormatDate(start),
		"end", util.FormatDate(end),
		"dates", len(touched),
		"rows", len(scoreRows))
	return nil
}

func (s *scoreServiceImpl) GetScores(ctx context.Context, start, end time.Time, associates []string) ([]*model.SommScore, error) {
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}
	return s.scoreRepo.GetByDateRange(ctx, start, end, associates)
}

func (s *scoreServiceImpl) GetSummary(ctx context.Context, start, end time.Time, associates []string) ([]*repository.ScoreSummary, error) {
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}
	return s.scoreRepo.GetSummary(ctx, start, end, associates)
}

// normalizeDay 当日阵容内做 min-max 归一化到 [0,100]；全员原始分相同（含单人阵容）时一律 50
func normalizeDay(date time.Time, raws []rawScore) []*model.SommScore {
	minScore, maxScore := raws[0].score, raws[0].score
	for _, raw := range raws[1:] {
		if raw.score < minScore {
			minScore = raw.score
		}
		if raw.score > maxScore {
			maxScore = raw.score
		}
	}

	scoreRange := maxScore - minScore
	rows := make([]*model.SommScore, 0, len(raws))
	for _, raw := range raws {
		normalized := 50.0
		if scoreRange != 0 {
			normalized = ((raw.score - minScore) / scoreRange) * 100
			// 浮点边界防护
			if normalized < 0 {
				normalized = 0
			} else if normalized > 100 {
				normalized = 100
			}
		}
		rows = append(rows, &model.SommScore{
			ScoreDate:      date,
			SalesAssociate: raw.associate,
			DailyScore:     normalized,
		})
	}
	return rows
}

// daysWorkedBefore 严格早于 date 的出勤天数，days 已升序
func daysWorkedBefore(days []string, date string) int {
	return sort.SearchStrings(days, date)
}
