package handler

import (
	"SommPulse/internal/api/dto"
	"SommPulse/internal/pkg/response"
	"SommPulse/internal/pkg/util"
	"SommPulse/internal/service"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type ScoreHandler struct {
	scoreSvc    service.ScoreService
	baselineSvc service.BaselineService
}

func NewScoreHandler(scoreSvc service.ScoreService, baselineSvc service.BaselineService) *ScoreHandler {
	return &ScoreHandler{
		scoreSvc:    scoreSvc,
		baselineSvc: baselineSvc,
	}
}

func (s *ScoreHandler) GetScores(c *gin.Context) {
	start, end, associates, err := bindScoreQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	scores, err := s.scoreSvc.GetScores(c.Request.Context(), start, end, associates)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, scores)
}

func (s *ScoreHandler) GetSummary(c *gin.Context) {
	start, end, associates, err := bindScoreQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := s.scoreSvc.GetSummary(c.Request.Context(), start, end, associates)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

func (s *ScoreHandler) GetBaseline(c *gin.Context) {
	start, end, _, err := bindScoreQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	window, err := s.baselineSvc.GetWindow(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, window)
}

func bindScoreQuery(c *gin.Context) (time.Time, time.Time, []string, error) {
	var query dto.ScoreQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return time.Time{}, time.Time{}, nil, err
	}

	start, err := util.ParseDate(query.Start)
	if err != nil {
		return time.Time{}, time.Time{}, nil, service.ErrParamInvalid
	}
	end, err := util.ParseDate(query.End)
	if err != nil {
		return time.Time{}, time.Time{}, nil, service.ErrParamInvalid
	}

	var associates []string
	if query.Associates != "" {
		for _, name := range strings.Split(query.Associates, ",") {
			if name = strings.TrimSpace(name); name != "" {
				associates = append(associates, name)
			}
		}
	}
	return start, end, associates, nil
}
