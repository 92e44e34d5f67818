package handler

import (
	"SommPulse/internal/api/dto"
	"SommPulse/internal/pkg/logger"
	"SommPulse/internal/pkg/response"
	"SommPulse/internal/pkg/util"
	"SommPulse/internal/service"
	"context"
	"errors"
	"io"
	log "log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PipelineHandler struct {
	pipelineSvc service.PipelineService
}

func NewPipelineHandler(pipelineSvc service.PipelineService) *PipelineHandler {
	return &PipelineHandler{
		pipelineSvc: pipelineSvc,
	}
}

// ManualUpdate 手动触发一次增量更新，省略日期或空请求体时从上次水位跑到今天
func (s *PipelineHandler) ManualUpdate(c *gin.Context) {
	var req dto.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, err)
		return
	}

	var start, end *time.Time
	if req.StartDate != "" {
		t, err := util.ParseDate(req.StartDate)
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		start = &t
	}
	if req.EndDate != "" {
		t, err := util.ParseDate(req.EndDate)
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		end = &t
	}

	result, err := s.pipelineSvc.RunUpdate(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *PipelineHandler) Recalculate(c *gin.Context) {
	if err := s.pipelineSvc.Recalculate(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Bootstrap 初始化耗时较长，后台执行，进度通过 /bootstrap/progress 轮询
func (s *PipelineHandler) Bootstrap(c *gin.Context) {
	var req dto.BootstrapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	periodStart, err := util.ParseDate(req.PeriodStart)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	traceID := "bootstrap-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)
	go func() {
		if err := s.pipelineSvc.Bootstrap(ctx, periodStart); err != nil {
			log.ErrorContext(ctx, "bootstrap run failed", "err", err)
		}
	}()

	response.Success(c, gin.H{"traceId": traceID})
}

func (s *PipelineHandler) BootstrapProgress(c *gin.Context) {
	progress, err := s.pipelineSvc.BootstrapProgress(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if progress == "" {
		progress = "idle"
	}
	response.Success(c, gin.H{"progress": progress})
}
