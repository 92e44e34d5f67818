package wire

import (
	"SommPulse/internal/api"
	"SommPulse/internal/api/config"
	"SommPulse/internal/api/handler"
	"SommPulse/internal/job"
	"SommPulse/internal/pkg/cron"
	"SommPulse/internal/pkg/feed"
	"SommPulse/internal/repository"
	"SommPulse/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router   *gin.Engine
	DB       *gorm.DB
	CronMgr  *cron.Manager
	Settings service.SettingsService
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	orderRepo := repository.NewOrderRepo(db)
	clubRepo := repository.NewClubRepo(db)
	refRepo := repository.NewRefRepo(db)
	scoreRepo := repository.NewScoreRepo(db)
	settingRepo := repository.NewSettingRepo(db)

	settingsService := service.NewSettingsService(settingRepo, orderRepo, clubRepo)

	feedClient := feed.NewClient(&cfg.Feed)
	ingestService := service.NewIngestService(feedClient, orderRepo, clubRepo, &cfg.Ingest)
	baselineService := service.NewBaselineService(orderRepo, refRepo, settingsService)
	scoreService := service.NewScoreService(orderRepo, clubRepo, scoreRepo, settingsService)
	pipelineService := service.NewPipelineService(ingestService, scoreService, baselineService, settingsService)

	dailyJob := job.NewDailyUpdateJob(pipelineService)
	cronMgr, err := cron.NewCronManager(dailyJob, cfg.Schedule.At)
	if err != nil {
		return nil, err
	}

	handlers := &api.HandlersGroup{
		ScoreHandler:    handler.NewScoreHandler(scoreService, baselineService),
		PipelineHandler: handler.NewPipelineHandler(pipelineService),
		SettingsHandler: handler.NewSettingsHandler(settingsService, cronMgr),
	}

	router := api.SetupRouter(handlers)

	return &ApplicationContainer{
		Router:   router,
		DB:       db,
		CronMgr:  cronMgr,
		Settings: settingsService,
	}, nil
}
