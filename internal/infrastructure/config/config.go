package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Media   MediaConfig   `mapstructure:"media"`
	Storage StorageConfig `mapstructure:"storage"`
	Upload  UploadConfig  `mapstructure:"upload"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Mode     string `mapstructure:"mode"`      // debug | release | test
	BasePath string `mapstructure:"base_path"` // 文件管理页面的挂载前缀
}

type MediaConfig struct {
	Root string `mapstructure:"root"` // 媒体根目录
}

type StorageConfig struct {
	Type  string             `mapstructure:"type"` // local | alist | s3
	Alist AlistStorageConfig `mapstructure:"alist"`
	S3    S3StorageConfig    `mapstructure:"s3"`
}

type AlistStorageConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Token    string `mapstructure:"token"`     // 预先签发的token,为空时使用账号密码登录
	RootPath string `mapstructure:"root_path"` // AList 上对应媒体根目录的路径
	QPS      int    `mapstructure:"qps"`       // 每秒请求数限制,0 表示不限制
}

type S3StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"` // 所有 key 的前缀
}

type UploadConfig struct {
	MaxSizeMB         int64         `mapstructure:"max_size_mb"`
	AllowedExtensions []string      `mapstructure:"allowed_extensions"` // 为空表示不限制
	DeniedExtensions  []string      `mapstructure:"denied_extensions"`
	AllowedMIMETypes  []string      `mapstructure:"allowed_mime_types"` // 支持前缀,如 "image/"
	Overwrite         bool          `mapstructure:"overwrite"`          // 同名文件直接覆盖
	RateLimitQPS      int           `mapstructure:"rate_limit_qps"`     // 上传接口每秒请求数,0 表示不限制
	Cleanup           CleanupConfig `mapstructure:"cleanup"`
}

type CleanupConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Cron        string `mapstructure:"cron"`
	MaxAgeHours int    `mapstructure:"max_age_hours"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Output     string `mapstructure:"output"`
	Format     string `mapstructure:"format"`
	FilePath   string `mapstructure:"file_path"`
	Colorize   bool   `mapstructure:"colorize"`
	AddSource  bool   `mapstructure:"add_source"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// EnvPrefix 环境变量前缀,例如 FILEMANAGER_MEDIA_ROOT
const EnvPrefix = "FILEMANAGER"

// LoadConfig 加载配置,configFile 为空时在 ./configs 和当前目录查找 config.yaml
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_path", "/filemanager")

	v.SetDefault("media.root", "./media")

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.alist.base_url", "http://localhost:5244")
	v.SetDefault("storage.alist.root_path", "/")
	v.SetDefault("storage.alist.qps", 50)
	v.SetDefault("storage.s3.region", "us-east-1")

	v.SetDefault("upload.max_size_mb", 100)
	v.SetDefault("upload.allowed_extensions", []string{})
	v.SetDefault("upload.denied_extensions", []string{"exe", "bat", "cmd", "com", "msi", "scr", "sh"})
	v.SetDefault("upload.allowed_mime_types", []string{})
	v.SetDefault("upload.overwrite", false)
	v.SetDefault("upload.rate_limit_qps", 10)
	v.SetDefault("upload.cleanup.enabled", true)
	v.SetDefault("upload.cleanup.cron", "@every 1h")
	v.SetDefault("upload.cleanup.max_age_hours", 24)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file_path", "./logs/filemanager.log")
	v.SetDefault("log.colorize", true)
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Validate 校验配置
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "local":
		if c.Media.Root == "" {
			return errors.New("media.root is required for local storage")
		}
	case "alist":
		if c.Storage.Alist.BaseURL == "" {
			return errors.New("storage.alist.base_url is required")
		}
		if c.Storage.Alist.Token == "" && c.Storage.Alist.Username == "" {
			return errors.New("storage.alist needs a token or a username")
		}
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return errors.New("storage.s3.bucket is required")
		}
	default:
		return fmt.Errorf("unknown storage.type: %q", c.Storage.Type)
	}

	if c.Upload.MaxSizeMB <= 0 {
		return errors.New("upload.max_size_mb must be positive")
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("server.base_path must start with '/': %q", c.Server.BasePath)
	}
	return nil
}

// MountPath 去掉末尾斜杠的挂载前缀,挂载在根路径时为 ""
func (s ServerConfig) MountPath() string {
	return strings.TrimRight(s.BasePath, "/")
}

// MaxUploadBytes 单次上传允许的最大字节数
func (u UploadConfig) MaxUploadBytes() int64 {
	return u.MaxSizeMB << 20
}
