package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// FeedConfig 外部商务平台接口配置
type FeedConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Tenant    string `mapstructure:"tenant"`
	AuthToken string `mapstructure:"auth_token"`
	Timeout   int    `mapstructure:"timeout"` // 单页请求超时，秒
}

// IngestConfig 数据摄取规则配置
type IngestConfig struct {
	BatchSize          int      `mapstructure:"batch_size"`
	ExcludedVendors    []string `mapstructure:"excluded_vendors"`
	ExcludedAssociates []string `mapstructure:"excluded_associates"`
}

// ScheduleConfig 每日任务调度配置
type ScheduleConfig struct {
	At string `mapstructure:"at"` // 本地时间 HH:MM
}
