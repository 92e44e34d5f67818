package logger

import (
	log "log/slog"
	"os"
)

func InitLogger() {
	hStdout := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: log.LevelInfo})
	logger := log.New(&ContextHandler{hStdout})
	log.SetDefault(logger)
}
