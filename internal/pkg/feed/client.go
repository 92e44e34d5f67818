package feed

import (
	"SommPulse/internal/api/config"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// 接口首页的游标约定值
const startCursor = "start"

// Client 外部商务平台的分页拉取抽象
type Client interface {
	FetchOrders(ctx context.Context, cursor, start, end string) (*OrderPage, error)
	FetchClubSignups(ctx context.Context, cursor, start, end string) (*ClubPage, error)
}

type restyClient struct {
	http *resty.Client
}

func NewClient(cfg *config.FeedConfig) Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("tenant", cfg.Tenant).
		SetHeader("Authorization", "Basic "+cfg.AuthToken)

	return &restyClient{http: client}
}

func (s *restyClient) FetchOrders(ctx context.Context, cursor, start, end string) (*OrderPage, error) {
	if cursor == "" {
		cursor = startCursor
	}

	var page OrderPage
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("cursor", cursor).
		SetQueryParam("channel", "POS").
		SetQueryParam("orderPaidDate", "btw:"+start+"|"+end).
		SetResult(&page).
		Get("/v1/order")
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch orders: unexpected status %d", resp.StatusCode())
	}
	return &page, nil
}

func (s *restyClient) FetchClubSignups(ctx context.Context, cursor, start, end string) (*ClubPage, error) {
	if cursor == "" {
		cursor = startCursor
	}

	var page ClubPage
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("cursor", cursor).
		SetQueryParam("signupDate", "btw:"+start+"|"+end).
		SetResult(&page).
		Get("/v1/club-membership")
	if err != nil {
		return nil, fmt.Errorf("fetch club signups: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch club signups: unexpected status %d", resp.StatusCode())
	}
	return &page, nil
}
