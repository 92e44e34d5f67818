package api

import "SommPulse/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	ScoreHandler    *handler.ScoreHandler
	PipelineHandler *handler.PipelineHandler
	SettingsHandler *handler.SettingsHandler
}
