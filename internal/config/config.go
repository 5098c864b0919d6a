// Package config 提供应用程序的配置加载和管理功能
// 使用 TOML 格式的配置文件，支持多路径查找
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// MainConfig 主配置，包含应用基本信息
type MainConfig struct {
	AppName string `toml:"appName"` // 应用名称，用于日志标识等
	Host    string `toml:"host"`    // 服务器监听地址，如 "0.0.0.0"
	Port    int    `toml:"port"`    // 服务器监听端口，如 8000
}

// MysqlConfig MySQL 数据库连接配置
type MysqlConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"` // 无密码留空
	Db       int    `toml:"db"`
}

// LogConfig 日志配置，使用 lumberjack 进行日志轮转
type LogConfig struct {
	LogPath    string `toml:"logPath"`    // 日志文件存储目录
	FileName   string `toml:"fileName"`   // 日志文件名
	MaxSize    int    `toml:"maxSize"`    // 单个日志文件最大大小（MB）
	MaxBackups int    `toml:"maxBackups"` // 保留旧日志文件的最大个数
	MaxAge     int    `toml:"maxAge"`     // 保留旧日志文件的最大天数
	Level      string `toml:"level"`      // 日志级别：debug, info, warn, error
}

// HubConfig 广播中心配置
type HubConfig struct {
	MessageMode string  `toml:"messageMode"` // 消息模式："channel" 或 "kafka"
	ChannelSize int     `toml:"channelSize"` // 订阅者发送缓冲大小
	SendRate    float64 `toml:"sendRate"`    // 单连接每秒可发送的消息数
	SendBurst   int     `toml:"sendBurst"`   // 单连接突发发送上限
}

// KafkaConfig Kafka 消息队列配置（messageMode = "kafka" 时使用）
type KafkaConfig struct {
	HostPort  string        `toml:"hostPort"`  // Kafka 服务器地址，如 "localhost:9092"
	HubTopic  string        `toml:"hubTopic"`  // 广播事件主题
	Partition int           `toml:"partition"` // 分区数
	Timeout   time.Duration `toml:"timeout"`   // 超时时间
}

// SupportConfig 客服工单配置
type SupportConfig struct {
	SharedSecret   string `toml:"sharedSecret"`   // 跨站签名共享密钥
	PushToken      string `toml:"pushToken"`      // 服务端直推接口的静态令牌
	MaxForwardSkew int    `toml:"maxForwardSkew"` // 签名允许的最大前向偏移（秒），默认 120
}

// FilterConfig 敏感词过滤配置
type FilterConfig struct {
	ReloadOnStart bool `toml:"reloadOnStart"` // 启动时是否立即加载规则快照
}

// RelationConfig 好友关系配置
type RelationConfig struct {
	NicknameMaxLength int  `toml:"nicknameMaxLength"` // 好友备注最大长度
	AutoAcceptMutual  bool `toml:"autoAcceptMutual"`  // 双方互发申请时是否自动成为好友
}

// MessageConfig 私信配置
type MessageConfig struct {
	MaxLength int `toml:"maxLength"` // 私信内容最大长度
	PageSize  int `toml:"pageSize"`  // 历史消息默认分页大小
}

// NotificationConfig 通知配置
type NotificationConfig struct {
	TitleMaxLength   int `toml:"titleMaxLength"`   // 标题最大长度
	MessageMaxLength int `toml:"messageMaxLength"` // 正文最大长度
}

// JWTConfig JWT 认证配置
type JWTConfig struct {
	Secret             string `toml:"secret"`             // JWT 签名密钥，建议 32 字符以上
	AccessTokenExpiry  int    `toml:"accessTokenExpiry"`  // Access Token 有效期（分钟）
	RefreshTokenExpiry int    `toml:"refreshTokenExpiry"` // Refresh Token 有效期（小时）
}

// SnowflakeConfig 雪花算法配置
type SnowflakeConfig struct {
	MachineID int64 `toml:"machineId"` // 节点 ID，范围 0-1023，分布式部署时每台机器需唯一
}

// Config 应用程序总配置，聚合所有子配置
type Config struct {
	MainConfig         `toml:"mainConfig"`
	MysqlConfig        `toml:"mysqlConfig"`
	RedisConfig        `toml:"redisConfig"`
	LogConfig          `toml:"logConfig"`
	HubConfig          `toml:"hubConfig"`
	KafkaConfig        `toml:"kafkaConfig"`
	SupportConfig      `toml:"supportConfig"`
	FilterConfig       `toml:"filterConfig"`
	RelationConfig     `toml:"relationConfig"`
	MessageConfig      `toml:"messageConfig"`
	NotificationConfig `toml:"notificationConfig"`
	JWTConfig          `toml:"jwtConfig"`
	SnowflakeConfig    `toml:"snowflakeConfig"`
}

// config 全局配置单例，延迟加载
var config *Config

// LoadConfig 从多个候选路径加载配置文件
// 按顺序尝试加载，找到第一个可用的配置文件即停止
func LoadConfig() error {
	// 候选配置文件路径（优先加载本地配置）
	paths := []string{
		"configs/config_local.toml",
		"configs/config.toml",
		"../../configs/config_local.toml",
		"../../configs/config.toml",
	}

	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			return nil
		}
	}

	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// GetConfig 获取全局配置实例（单例模式）
// 首次调用时会自动加载配置文件
func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig() // 忽略加载错误，使用默认值
		config.fillDefaults()
	}
	return config
}

// fillDefaults 对缺省项兜底，零值会让限流和分页不可用
func (c *Config) fillDefaults() {
	if c.HubConfig.ChannelSize <= 0 {
		c.HubConfig.ChannelSize = 100
	}
	if c.HubConfig.SendRate <= 0 {
		c.HubConfig.SendRate = 10
	}
	if c.HubConfig.SendBurst <= 0 {
		c.HubConfig.SendBurst = 20
	}
	if c.SupportConfig.MaxForwardSkew <= 0 {
		c.SupportConfig.MaxForwardSkew = 120
	}
	if c.RelationConfig.NicknameMaxLength <= 0 {
		c.RelationConfig.NicknameMaxLength = 30
	}
	if c.MessageConfig.MaxLength <= 0 {
		c.MessageConfig.MaxLength = 2000
	}
	if c.MessageConfig.PageSize <= 0 {
		c.MessageConfig.PageSize = 50
	}
	if c.NotificationConfig.TitleMaxLength <= 0 {
		c.NotificationConfig.TitleMaxLength = 100
	}
	if c.NotificationConfig.MessageMaxLength <= 0 {
		c.NotificationConfig.MessageMaxLength = 1000
	}
}
