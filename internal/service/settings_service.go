package service

import (
	"SommPulse/internal/pkg/consts"
	"SommPulse/internal/pkg/redis"
	"SommPulse/internal/pkg/util"
	"SommPulse/internal/repository"
	"context"
	"sort"
	"time"

	"github.com/goccy/go-json"
)

const associateCacheTTL = 10 * time.Minute

type SettingsService interface {
	SeedDefaults(ctx context.Context) error
	All(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, key string) (string, error)

	Timezone(ctx context.Context) string
	SetTimezone(ctx context.Context, tz string) error
	SetYearType(ctx context.Context, yearType string) error
	SetFiscalYearStart(ctx context.Context, start string) error

	ActiveAssociates(ctx context.Context) ([]string, error)
	SetActiveAssociates(ctx context.Context, names []string) error
	HiddenAssociates(ctx context.Context) ([]string, error)
	SetHiddenAssociates(ctx context.Context, names []string) error
	AllAssociates(ctx context.Context) ([]string, error)

	PeriodStart(ctx context.Context, now time.Time) (time.Time, error)
	LastOrderUpdate(ctx context.Context) (time.Time, bool)
	MarkUpdated(ctx context.Context, end time.Time) error
}

type settingsServiceImpl struct {
	settingRepo repository.SettingRepo
	orderRepo   repository.OrderRepo
	clubRepo    repository.ClubRepo
}

func NewSettingsService(
	settingRepo repository.SettingRepo,
	orderRepo repository.OrderRepo,
	clubRepo repository.ClubRepo,
) SettingsService {
	return &settingsServiceImpl{
		settingRepo: settingRepo,
		orderRepo:   orderRepo,
		clubRepo:    clubRepo,
	}
}

func (s *settingsServiceImpl) SeedDefaults(ctx context.Context) error {
	return s.settingRepo.SeedDefaults(ctx, map[string]string{
		consts.SettingTimezone:         "UTC",
		consts.SettingYearType:         consts.YearTypeCalendar,
		consts.SettingActiveAssociates: "[]",
		consts.SettingHiddenAssociates: "[]",
		consts.SettingFiscalYearStart:  "01-01",
	})
}

func (s *settingsServiceImpl) All(ctx context.Context) (map[string]string, error) {
	return s.settingRepo.GetAll(ctx)
}

func (s *settingsServiceImpl) Get(ctx context.Context, key string) (string, error) {
	value, found, err := s.settingRepo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrSettingNotFound
	}
	return value, nil
}

func (s *settingsServiceImpl) Timezone(ctx context.Context) string {
	value, found, err := s.settingRepo.Get(ctx, consts.SettingTimezone)
	if err != nil || !found || value == "" {
		return "UTC"
	}
	return value
}

func (s *settingsServiceImpl) SetTimezone(ctx context.Context, tz string) error {
	if _, err := time.LoadLocation(tz); err != nil {
		return ErrTimezoneInvalid
	}
	return s.settingRepo.Upsert(ctx, consts.SettingTimezone, tz)
}

func (s *settingsServiceImpl) SetYearType(ctx context.Context, yearType string) error {
	if yearType != consts.YearTypeCalendar && yearType != consts.YearTypeFiscal {
		return ErrYearTypeInvalid
	}
	return s.settingRepo.Upsert(ctx, consts.SettingYearType, yearType)
}

func (s *settingsServiceImpl) SetFiscalYearStart(ctx context.Context, start string) error {
	if _, _, err := parseFiscalStart(start); err != nil {
		return ErrParamInvalid
	}
	return s.settingRepo.Upsert(ctx, consts.SettingFiscalYearStart, start)
}

func (s *settingsServiceImpl) ActiveAssociates(ctx context.Context) ([]string, error) {
	return s.associateList(ctx, consts.SettingActiveAssociates, consts.ActiveAssociatesKey)
}

func (s *settingsServiceImpl) SetActiveAssociates(ctx context.Context, names []string) error {
	return s.setAssociateList(ctx, consts.SettingActiveAssociates, consts.ActiveAssociatesKey, names)
}

func (s *settingsServiceImpl) HiddenAssociates(ctx context.Context) ([]string, error) {
	return s.associateList(ctx, consts.SettingHiddenAssociates, consts.HiddenAssociatesKey)
}

func (s *settingsServiceImpl) SetHiddenAssociates(ctx context.Context, names []string) error {
	return s.setAssociateList(ctx, consts.SettingHiddenAssociates, consts.HiddenAssociatesKey, names)
}

// AllAssociates 订单和俱乐部数据里出现过的全部销售名单
func (s *settingsServiceImpl) AllAssociates(ctx context.Context) ([]string, error) {
	fromOrders, err := s.orderRepo.GetAllAssociates(ctx)
	if err != nil {
		return nil, err
	}
	fromClubs, err := s.clubRepo.GetAllAssociates(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(fromOrders)+len(fromClubs))
	names := make([]string, 0, len(fromOrders)+len(fromClubs))
	for _, name := range append(fromOrders, fromClubs...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *settingsServiceImpl) associateList(ctx context.Context, key, cacheKey string) ([]string, error) {
	if cached, err := redis.GetValue(ctx, cacheKey); err == nil && cached != "" {
		var names []string
		if err = json.Unmarshal([]byte(cached), &names); err == nil {
			return names, nil
		}
	}

	value, found, err := s.settingRepo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found || value == "" {
		return []string{}, nil
	}

	var names []string
	if err = json.Unmarshal([]byte(value), &names); err != nil {
		return nil, err
	}

	_ = redis.SetWithExpiration(ctx, cacheKey, value, associateCacheTTL)
	return names, nil
}

func (s *settingsServiceImpl) setAssociateList(ctx context.Context, key, cacheKey string, names []string) error {
	if names == nil {
		names = []string{}
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return err
	}
	if err = s.settingRepo.Upsert(ctx, key, string(raw)); err != nil {
		return err
	}
	// 写入后让缓存失效
	_ = redis.DeleteKey(ctx, cacheKey)
	return nil
}

// PeriodStart 当前统计周期的起始日：日历年取 1 月 1 日，财年取最近一次财年起始日
func (s *settingsServiceImpl) PeriodStart(ctx context.Context, now time.Time) (time.Time, error) {
	yearType, _, err := s.settingRepo.Get(ctx, consts.SettingYearType)
	if err != nil {
		return time.Time{}, err
	}

	if yearType == consts.YearTypeFiscal {
		raw, found, err := s.settingRepo.Get(ctx, consts.SettingFiscalYearStart)
		if err != nil {
			return time.Time{}, err
		}
		if found {
			if month, day, perr := parseFiscalStart(raw); perr == nil {
				start := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, time.UTC)
				if start.After(now) {
					start = start.AddDate(-1, 0, 0)
				}
				return start, nil
			}
		}
	}

	return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func (s *settingsServiceImpl) LastOrderUpdate(ctx context.Context) (time.Time, bool) {
	value, found, err := s.settingRepo.Get(ctx, consts.SettingLastOrderUpdate)
	if err != nil || !found {
		return time.Time{}, false
	}
	t, err := util.ParseDate(value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (s *settingsServiceImpl) MarkUpdated(ctx context.Context, end time.Time) error {
	value := util.FormatDate(end)
	if err := s.settingRepo.Upsert(ctx, consts.SettingLastOrderUpdate, value); err != nil {
		return err
	}
	return s.settingRepo.Upsert(ctx, consts.SettingLastClubUpdate, value)
}

// parseFiscalStart 支持 MM-DD 和 YYYY-MM-DD 两种写法
func parseFiscalStart(raw string) (int, int, error) {
	if t, err := time.Parse("01-02", raw); err == nil {
		return int(t.Month()), t.Day(), nil
	}
	t, err := util.ParseDate(raw)
	if err != nil {
		return 0, 0, err
	}
	return int(t.Month()), t.Day(), nil
}
