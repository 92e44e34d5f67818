package dto

// UpdateSettingsRequest 只更新出现的字段
type UpdateSettingsRequest struct {
	Timezone         *string   `json:"timezone"`
	YearType         *string   `json:"yearType" binding:"omitempty,oneof=calendar fiscal"`
	FiscalYearStart  *string   `json:"fiscalYearStart"`
	ActiveAssociates *[]string `json:"activeAssociates"`
	HiddenAssociates *[]string `json:"hiddenAssociates"`
}

// AssociatesResponse 全部/在册/隐藏销售名单
type AssociatesResponse struct {
	All    []string `json:"all"`
	Active []string `json:"active"`
	Hidden []string `json:"hidden"`
}
