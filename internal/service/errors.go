package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
	BadGateway          = 502
)

var (
	ErrParamInvalid     = errors.New("参数错误")
	ErrInvalidDateRange = errors.New("日期范围无效")
	ErrTimezoneInvalid  = errors.New("时区无效")
	ErrYearTypeInvalid  = errors.New("年度类型无效")
	ErrSettingNotFound  = errors.New("设置项不存在")
	ErrFeedUnavailable  = errors.New("外部数据源不可用")
	ErrPipelineBusy     = errors.New("数据管道正在运行，请稍后重试")
	UnExpectedError     = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:     BadRequest,
	ErrInvalidDateRange: BadRequest,
	ErrTimezoneInvalid:  BadRequest,
	ErrYearTypeInvalid:  BadRequest,
	ErrSettingNotFound:  NotFound,
	ErrFeedUnavailable:  BadGateway,
	ErrPipelineBusy:     Conflict,
	UnExpectedError:     InternalServerError,
}
