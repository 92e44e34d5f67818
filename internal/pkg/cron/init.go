package cron

import log "log/slog"

func InitCron(mgr *Manager, timezone string) error {
	log.Info("Cron Jobs starting...")
	return mgr.Rebuild(timezone)
}
