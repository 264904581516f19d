package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	pkglogger "github.com/voin/voin-backend/pkg/logger"
	"gopkg.in/yaml.v3"
)

// Config 애플리케이션 전체 설정
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	JWT           JWTConfig           `yaml:"jwt"`
	CORS          CORSConfig          `yaml:"cors"`
	Kakao         KakaoConfig         `yaml:"kakao"`
	Storage       StorageConfig       `yaml:"storage"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	OpenAI        OpenAIConfig        `yaml:"openai"`
	WebSocket     WebSocketConfig     `yaml:"websocket"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
	Env  string `yaml:"env"`
}

type DatabaseConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	DBName          string `yaml:"dbname"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
}

// GetDSN MySQL DSN 생성
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.DBName)
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	ExpiresIn int    `yaml:"expires_in"` // minutes
	RefreshIn int    `yaml:"refresh_in"` // minutes
}

type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

type KakaoConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURI  string `yaml:"redirect_uri"`
	AuthHost     string `yaml:"auth_host"`
	APIHost      string `yaml:"api_host"`
}

type StorageConfig struct {
	Driver          string `yaml:"driver"` // local | s3
	LocalDir        string `yaml:"local_dir"`
	PublicPrefix    string `yaml:"public_prefix"`
	MaxSize         int64  `yaml:"max_size"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	CDNURL          string `yaml:"cdn_url"`
	BasePath        string `yaml:"base_path"`
	ForcePathStyle  bool   `yaml:"force_path_style"`
}

type ElasticsearchConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Addresses []string `yaml:"addresses"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
	Index     string   `yaml:"index"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type WebSocketConfig struct {
	AllowedOrigins string `yaml:"allowed_origins"`
}

// RateLimitConfig 분당 허용 요청 수. Redis 가 없으면 적용되지 않는다.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	ClassifyPerMinute int `yaml:"classify_per_minute"`
}

// IsDevelopment 개발 환경 여부
func (c *Config) IsDevelopment() bool {
	switch c.Server.Env {
	case "", "local", "dev", "development":
		return true
	}
	return false
}

// Load YAML 설정 파일을 읽고 환경변수로 덮어쓴다
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("설정 파일 읽기 실패: %w", err)
	}
	return Parse(data)
}

// Parse ${VAR} 확장 후 YAML 파싱, 환경변수 오버라이드, 기본값 적용, 검증
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("설정 파일 파싱 실패: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Server.Env, "APP_ENV")
	overrideInt(&cfg.Server.Port, "PORT")

	overrideString(&cfg.Database.Host, "DB_HOST")
	overrideInt(&cfg.Database.Port, "DB_PORT")
	overrideString(&cfg.Database.User, "DB_USER")
	overrideString(&cfg.Database.Password, "DB_PASSWORD")
	overrideString(&cfg.Database.DBName, "DB_NAME")

	overrideString(&cfg.Redis.Host, "REDIS_HOST")
	overrideInt(&cfg.Redis.Port, "REDIS_PORT")
	overrideString(&cfg.Redis.Password, "REDIS_PASSWORD")

	overrideString(&cfg.JWT.Secret, "JWT_SECRET")
	overrideString(&cfg.CORS.AllowOrigins, "CORS_ALLOW_ORIGINS")

	overrideString(&cfg.Kakao.ClientID, "KAKAO_CLIENT_ID")
	overrideString(&cfg.Kakao.ClientSecret, "KAKAO_CLIENT_SECRET")
	overrideString(&cfg.Kakao.RedirectURI, "KAKAO_REDIRECT_URI")

	overrideString(&cfg.Storage.Driver, "STORAGE_DRIVER")
	overrideString(&cfg.Storage.AccessKeyID, "S3_ACCESS_KEY_ID")
	overrideString(&cfg.Storage.SecretAccessKey, "S3_SECRET_ACCESS_KEY")
	overrideString(&cfg.Storage.Bucket, "S3_BUCKET")

	overrideString(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "local"
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 10
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 50
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 10
	}
	if cfg.JWT.ExpiresIn == 0 {
		cfg.JWT.ExpiresIn = 1440 // 1일
	}
	if cfg.JWT.RefreshIn == 0 {
		cfg.JWT.RefreshIn = 20160 // 14일
	}
	if cfg.Kakao.AuthHost == "" {
		cfg.Kakao.AuthHost = "https://kauth.kakao.com"
	}
	if cfg.Kakao.APIHost == "" {
		cfg.Kakao.APIHost = "https://kapi.kakao.com"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "local"
	}
	if cfg.Storage.LocalDir == "" {
		cfg.Storage.LocalDir = "uploads/images/profiles"
	}
	if cfg.Storage.PublicPrefix == "" {
		cfg.Storage.PublicPrefix = "/images/profiles"
	}
	if cfg.Storage.MaxSize == 0 {
		cfg.Storage.MaxSize = 5 * 1024 * 1024
	}
	if cfg.Elasticsearch.Index == "" {
		cfg.Elasticsearch.Index = "voin-cards"
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.RateLimit.RequestsPerMinute == 0 {
		cfg.RateLimit.RequestsPerMinute = 120
	}
	if cfg.RateLimit.ClassifyPerMinute == 0 {
		cfg.RateLimit.ClassifyPerMinute = 10
	}
}

// Validate 필수 설정 검증
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret 설정이 필요합니다")
	}
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage.driver=s3 에는 storage.bucket 설정이 필요합니다")
		}
	default:
		return fmt.Errorf("지원하지 않는 storage.driver: %s", c.Storage.Driver)
	}
	return nil
}

// LogResolved 실제 적용된 설정을 시크릿을 가린 채로 기록
func LogResolved(cfg *Config) {
	pkglogger.GetLogger().Info().
		Str("env", cfg.Server.Env).
		Int("port", cfg.Server.Port).
		Str("db", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)).
		Str("db_password", mask(cfg.Database.Password)).
		Str("redis", fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)).
		Str("jwt_secret", mask(cfg.JWT.Secret)).
		Int("jwt_expires_in", cfg.JWT.ExpiresIn).
		Str("kakao_client_id", mask(cfg.Kakao.ClientID)).
		Str("storage_driver", cfg.Storage.Driver).
		Bool("elasticsearch", cfg.Elasticsearch.Enabled).
		Bool("openai", cfg.OpenAI.APIKey != "").
		Msg("resolved config")
}

func mask(s string) string {
	if s == "" {
		return "(empty)"
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
