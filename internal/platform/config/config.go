package config

import (
	"time"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
	Web         WebConfig         `yaml:"web"`
	Database    DatabaseConfig    `yaml:"database"`
	Auth        AuthConfig        `yaml:"auth"`
	ObjectStore ObjectStoreConfig `yaml:"object_store"`
	Generation  GenerationConfig  `yaml:"generation"`
	Resolver    ResolverConfig    `yaml:"resolver"`
	Export      ExportConfig      `yaml:"export"`
}

type ServerConfig struct {
	IP   string `yaml:"ip" env:"SERVER_IP"`
	Port int    `yaml:"port" env:"SERVER_PORT"`
}

type LogConfig struct {
	Level string `yaml:"log_level" env:"LOG_LEVEL"`
	Dir   string `yaml:"log_dir" env:"LOG_DIR"`
	File  string `yaml:"log_file" env:"LOG_FILE"`
}

type WebConfig struct {
	StaticDir string `yaml:"static_dir" env:"WEB_STATIC_DIR"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" env:"DATABASE_PATH"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	Expiry    time.Duration `yaml:"expiry" env:"AUTH_EXPIRY"`
	Store     StoreConfig   `yaml:"store"`
}

type StoreConfig struct {
	Type  string           `yaml:"type" env:"AUTH_STORE_TYPE"`
	Redis RedisStoreConfig `yaml:"redis,omitempty"`
}

type RedisStoreConfig struct {
	Addr     string `yaml:"addr" env:"AUTH_REDIS_ADDR"`
	Password string `yaml:"password,omitempty" env:"AUTH_REDIS_PASSWORD"`
	DB       int    `yaml:"db,omitempty" env:"AUTH_REDIS_DB"`
	Prefix   string `yaml:"prefix,omitempty" env:"AUTH_REDIS_PREFIX"`
}

type ObjectStoreConfig struct {
	Endpoint      string `yaml:"endpoint" env:"S3_ENDPOINT"`
	AccessKey     string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey     string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	Bucket        string `yaml:"bucket" env:"S3_BUCKET"`
	UseSSL        bool   `yaml:"use_ssl" env:"S3_USE_SSL"`
	PublicBaseURL string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
}

type GenerationConfig struct {
	BaseURL       string  `yaml:"url" env:"GENERATION_URL"`
	APIKey        string  `yaml:"api_key" env:"GENERATION_API_KEY"`
	ImageModel    string  `yaml:"image_model" env:"GENERATION_IMAGE_MODEL"`
	TextModel     string  `yaml:"text_model" env:"GENERATION_TEXT_MODEL"`
	ImageSize     string  `yaml:"image_size" env:"GENERATION_IMAGE_SIZE"`
	Temperature   float64 `yaml:"temperature"`
	MaxConcurrent int     `yaml:"max_concurrent"`
}

type ResolverConfig struct {
	CacheSize   int           `yaml:"cache_size"`
	LoadTimeout time.Duration `yaml:"load_timeout"`
	MaxAttempts int           `yaml:"max_attempts"`
	RetryStep   time.Duration `yaml:"retry_step"`
}

type ExportConfig struct {
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}
