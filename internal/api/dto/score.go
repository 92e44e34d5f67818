package dto

// ScoreQuery 得分与基线查询参数，日期为闭区间
type ScoreQuery struct {
	Start      string `form:"start" binding:"required,datetime=2006-01-02"`
	End        string `form:"end" binding:"required,datetime=2006-01-02"`
	Associates string `form:"associates"` // 逗号分隔，可选
}
