// Package config предоставляет структуры и функции для загрузки конфигурации
// сервера, клиента и уведомителя из YAML-файла с переопределением через окружение.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Окружения.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	JWTToken                `yaml:"jwttoken"`
	RabbitMQ                `yaml:"rabbitmq"`
	DefaultAdmin            `yaml:"default_admin"`
	Client                  `yaml:"client"`
	Notifier                `yaml:"notifier"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	RateLimit   float64       `yaml:"rate_limit" env-default:"10"` // Запросов в секунду с одного адреса
	RateBurst   int           `yaml:"rate_burst" env-default:"20"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env-default:"5m"`
}

// JWTToken структура для выпуска и проверки API-ключей.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
}

// RabbitMQ структура для подключения уведомителя к брокеру.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Retries    int           `yaml:"retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// DefaultAdmin — учётная запись администратора, создаваемая при первом запуске сервера.
type DefaultAdmin struct {
	Username string `yaml:"username" env:"DEFAULT_ADMIN_USERNAME" env-default:"admin"`
	Password string `yaml:"password" env:"DEFAULT_ADMIN_PASSWORD"`
	FullName string `yaml:"full_name" env-default:"Main administrator"`
	Currency string `yaml:"currency" env-default:"$"`
}

// Client — настройки клиента rentalctl.
type Client struct {
	BackendURL      string        `yaml:"backend_url" env:"BACKEND_URL" env-default:"http://localhost:8080"`
	APIKey          string        `yaml:"api_key" env:"API_KEY"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env-default:"10s"`
	RestoreTimeout  time.Duration `yaml:"restore_timeout" env-default:"5s"`
	SnapshotBackend string        `yaml:"snapshot_backend" env:"SNAPSHOT_BACKEND" env-default:"sqlite"`
	SnapshotPath    string        `yaml:"snapshot_path" env:"SNAPSHOT_PATH" env-default:"rentalctl.db"`
	SnapshotKey     string        `yaml:"snapshot_key" env:"SNAPSHOT_KEY"` // Идентификатор клиента в общем Redis
}

// Notifier — настройки периодического уведомителя.
type Notifier struct {
	Interval       time.Duration `yaml:"interval" env-default:"12h"`
	MetricsAddress string        `yaml:"metrics_address" env:"NOTIFIER_METRICS_ADDRESS" env-default:":9091"`
}

// MustLoad загружает конфиг из файла, указанного в CONFIG_PATH, и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// Load читает конфиг из файла. Значения из окружения имеют приоритет.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: cannot read config: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"MigrationsPath: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"Client:\n"+
			"  BackendURL: %s\n"+
			"  RestoreTimeout: %s\n"+
			"  SnapshotBackend: %s\n",
		c.Env,
		c.MigrationsPath,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.AddressRedis,
		c.DB,
		c.BackendURL,
		c.RestoreTimeout,
		c.SnapshotBackend,
	)
}
