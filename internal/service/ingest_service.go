package service

import (
	"SommPulse/internal/api/config"
	"SommPulse/internal/model"
	"SommPulse/internal/pkg/feed"
	"SommPulse/internal/pkg/util"
	"SommPulse/internal/repository"
	"context"
	log "log/slog"
	"time"
)

const defaultBatchSize = 25

type IngestService interface {
	IngestOrders(ctx context.Context, start, end time.Time) (int, error)
	IngestClubSignups(ctx context.Context, start, end time.Time) (int, error)
}

type ingestServiceImpl struct {
	feedClient         feed.Client
	orderRepo          repository.OrderRepo
	clubRepo           repository.ClubRepo
	batchSize          int
	excludedVendors    map[string]struct{}
	excludedAssociates map[string]struct{}
}

func NewIngestService(
	feedClient feed.Client,
	orderRepo repository.OrderRepo,
	clubRepo repository.ClubRepo,
	cfg *config.IngestConfig,
) IngestService {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &ingestServiceImpl{
		feedClient:         feedClient,
		orderRepo:          orderRepo,
		clubRepo:           clubRepo,
		batchSize:          batchSize,
		excludedVendors:    toSet(cfg.ExcludedVendors),
		excludedAssociates: toSet(cfg.ExcludedAssociates),
	}
}

// IngestOrders 按日期闭区间分页拉取订单并做 insert-only 合并，返回新插入的行数。
// 拉取失败时停止翻页，已提交的批次保留，返回部分计数和 ErrFeedUnavailable。
func (s *ingestServiceImpl) IngestOrders(ctx context.Context, start, end time.Time) (int, error) {
	if start.After(end) {
		return 0, ErrInvalidDateRange
	}

	startStr, endStr := util.FormatDate(start), util.FormatDate(end)
	inserted := 0
	batch := make([]*model.Order, 0, s.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.orderRepo.CreateBatch(ctx, batch); err != nil {
			return err
		}
		inserted += len(batch)
		log.InfoContext(ctx, "order batch committed", "batch", len(batch), "total", inserted)
		batch = batch[:0]
		return nil
	}

	cursor := ""
	for {
		page, err := s.feedClient.FetchOrders(ctx, cursor, startStr, endStr)
		if err != nil {
			if ferr := flush(); ferr != nil {
				return inserted, ferr
			}
			log.ErrorContext(ctx, "order feed fetch failed", "cursor", cursor, "err", err)
			return inserted, ErrFeedUnavailable
		}

		for _, rec := range page.Orders {
			order, ok := s.normalizeOrder(ctx, &rec)
			if !ok {
				continue
			}

			exists, err := s.orderRepo.ExistsByOrderNumber(ctx, order.OrderNumber)
			if err != nil {
				return inserted, err
			}
			if exists {
				continue
			}

			batch = append(batch, order)
			if len(batch) >= s.batchSize {
				if err = flush(); err != nil {
					return inserted, err
				}
			}
		}

		if page.Cursor == "" {
			break
		}
		cursor = page.Cursor
	}

	if err := flush(); err != nil {
		return inserted, err
	}
	return inserted, nil
}

// IngestClubSignups 同 IngestOrders，针对会员注册记录
func (s *ingestServiceImpl) IngestClubSignups(ctx context.Context, start, end time.Time) (int, error) {
	if start.After(end) {
		return 0, ErrInvalidDateRange
	}

	startStr, endStr := util.FormatDate(start), util.FormatDate(end)
	inserted := 0
	batch := make([]*model.ClubSignup, 0, s.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.clubRepo.CreateBatch(ctx, batch); err != nil {
			return err
		}
		inserted += len(batch)
		log.InfoContext(ctx, "club signup batch committed", "batch", len(batch), "total", inserted)
		batch = batch[:0]
		return nil
	}

	cursor := ""
	for {
		page, err := s.feedClient.FetchClubSignups(ctx, cursor, startStr, endStr)
		if err != nil {
			if ferr := flush(); ferr != nil {
				return inserted, ferr
			}
			log.ErrorContext(ctx, "club feed fetch failed", "cursor", cursor, "err", err)
			return inserted, ErrFeedUnavailable
		}

		for _, rec := range page.ClubMemberships {
			signup, ok := s.normalizeClubSignup(ctx, &rec)
			if !ok {
				continue
			}

			exists, err := s.clubRepo.ExistsByExternalID(ctx, signup.ExternalID)
			if err != nil {
				return inserted, err
			}
			if exists {
				continue
			}

			batch = append(batch, signup)
			if len(batch) >= s.batchSize {
				if err = flush(); err != nil {
					return inserted, err
				}
			}
		}

		if page.Cursor == "" {
			break
		}
		cursor = page.Cursor
	}

	if err := flush(); err != nil {
		return inserted, err
	}
	return inserted, nil
}

// normalizeOrder 应用订单过滤规则：渠道排除、零金额排除、日期截断
func (s *ingestServiceImpl) normalizeOrder(ctx context.Context, rec *feed.OrderRecord) (*model.Order, bool) {
	if rec.ExternalOrderVendor != nil {
		if _, excluded := s.excludedVendors[*rec.ExternalOrderVendor]; excluded {
			return nil, false
		}
	}

	subtotal := centsToDollars(rec.SubTotal)
	if subtotal == 0 {
		return nil, false
	}

	paidDate, err := util.ParseFeedDate(rec.OrderPaidDate)
	if err != nil {
		log.WarnContext(ctx, "skipping order with bad paid date", "order_number", rec.OrderNumber, "err", err)
		return nil, false
	}

	var associate *string
	if rec.SalesAssociate != nil && rec.SalesAssociate.Name != "" {
		name := rec.SalesAssociate.Name
		associate = &name
	}

	return &model.Order{
		OrderNumber:    rec.OrderNumber,
		OrderPaidDate:  paidDate,
		Subtotal:       subtotal,
		TipTotal:       centsToDollars(rec.TipTotal),
		SalesAssociate: associate,
	}, true
}

// normalizeClubSignup 应用注册过滤规则：无销售或销售在排除名单内则丢弃
func (s *ingestServiceImpl) normalizeClubSignup(ctx context.Context, rec *feed.ClubRecord) (*model.ClubSignup, bool) {
	if rec.SalesAssociate == nil || rec.SalesAssociate.Name == "" {
		return nil, false
	}
	if _, excluded := s.excludedAssociates[rec.SalesAssociate.Name]; excluded {
		return nil, false
	}

	signupDate, err := util.ParseFeedDate(rec.SignupDate)
	if err != nil {
		log.WarnContext(ctx, "skipping club signup with bad date", "external_id", rec.ID, "err", err)
		return nil, false
	}

	clubName := ""
	if rec.Club != nil {
		clubName = rec.Club.Title
	}

	return &model.ClubSignup{
		ExternalID:     rec.ID,
		ClubName:       clubName,
		SignupDate:     signupDate,
		SalesAssociate: rec.SalesAssociate.Name,
	}, true
}

func centsToDollars(cents *int64) float64 {
	if cents == nil {
		return 0
	}
	return float64(*cents) / 100
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
