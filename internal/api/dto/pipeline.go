package dto

// UpdateRequest 手动触发一次数据更新
type UpdateRequest struct {
	StartDate string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// BootstrapRequest 一次性初始化，periodStart 为统计周期起始日
type BootstrapRequest struct {
	PeriodStart string `json:"period_start" binding:"required,datetime=2006-01-02"`
}
