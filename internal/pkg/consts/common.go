package consts

// settings 表的键
const (
	SettingTimezone         = "timezone"
	SettingYearType         = "year_type"
	SettingActiveAssociates = "active_associates"
	SettingHiddenAssociates = "hidden_associates"
	SettingFiscalYearStart  = "fiscal_year_start"
	SettingLastOrderUpdate  = "last_order_update"
	SettingLastClubUpdate   = "last_club_update"
)

const (
	YearTypeCalendar = "calendar"
	YearTypeFiscal   = "fiscal"
)

// 参考基线窗口长度：正好覆盖一整年
const RefWindowDays = 366
