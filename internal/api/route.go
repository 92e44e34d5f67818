package api

import (
	"SommPulse/internal/api/middleware"
	"SommPulse/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		scoreGroup := apiGroup.Group("/scores")
		{
			scoreGroup.GET("", group.ScoreHandler.GetScores)
			scoreGroup.GET("/summary", group.ScoreHandler.GetSummary)
		}

		apiGroup.GET("/baseline", group.ScoreHandler.GetBaseline)
		apiGroup.GET("/associates", group.SettingsHandler.GetAssociates)

		pipelineGroup := apiGroup.Group("/pipeline")
		{
			pipelineGroup.POST("/update", group.PipelineHandler.ManualUpdate)
			pipelineGroup.POST("/recalculate", group.PipelineHandler.Recalculate)
			pipelineGroup.POST("/bootstrap", group.PipelineHandler.Bootstrap)
			pipelineGroup.GET("/bootstrap/progress", group.PipelineHandler.BootstrapProgress)
		}

		settingsGroup := apiGroup.Group("/settings")
		{
			settingsGroup.GET("", group.SettingsHandler.GetSettings)
			settingsGroup.PUT("", group.SettingsHandler.UpdateSettings)
		}
	}

	return r
}
