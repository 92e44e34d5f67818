package handler

import (
	"SommPulse/internal/api/dto"
	"SommPulse/internal/pkg/response"
	"SommPulse/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

// Rescheduler 时区变更后重建定时任务
type Rescheduler interface {
	Rebuild(timezone string) error
}

type SettingsHandler struct {
	settingsSvc service.SettingsService
	rescheduler Rescheduler
}

func NewSettingsHandler(settingsSvc service.SettingsService, rescheduler Rescheduler) *SettingsHandler {
	return &SettingsHandler{
		settingsSvc: settingsSvc,
		rescheduler: rescheduler,
	}
}

func (s *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := s.settingsSvc.All(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, settings)
}

func (s *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	if req.Timezone != nil {
		if err := s.settingsSvc.SetTimezone(ctx, *req.Timezone); err != nil {
			response.Error(c, err)
			return
		}
		// 时区生效后按新时区重排每日任务
		if err := s.rescheduler.Rebuild(*req.Timezone); err != nil {
			log.ErrorContext(ctx, "failed to rebuild schedule", "timezone", *req.Timezone, "err", err)
		}
	}
	if req.YearType != nil {
		if err := s.settingsSvc.SetYearType(ctx, *req.YearType); err != nil {
			response.Error(c, err)
			return
		}
	}
	if req.FiscalYearStart != nil {
		if err := s.settingsSvc.SetFiscalYearStart(ctx, *req.FiscalYearStart); err != nil {
			response.Error(c, err)
			return
		}
	}
	if req.ActiveAssociates != nil {
		if err := s.settingsSvc.SetActiveAssociates(ctx, *req.ActiveAssociates); err != nil {
			response.Error(c, err)
			return
		}
	}
	if req.HiddenAssociates != nil {
		if err := s.settingsSvc.SetHiddenAssociates(ctx, *req.HiddenAssociates); err != nil {
			response.Error(c, err)
			return
		}
	}

	settings, err := s.settingsSvc.All(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, settings)
}

func (s *SettingsHandler) GetAssociates(c *gin.Context) {
	ctx := c.Request.Context()

	all, err := s.settingsSvc.AllAssociates(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	active, err := s.settingsSvc.ActiveAssociates(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	hidden, err := s.settingsSvc.HiddenAssociates(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.AssociatesResponse{
		All:    all,
		Active: active,
		Hidden: hidden,
	})
}
