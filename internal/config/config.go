package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	Migrations MigrationsConfig `toml:"migrations"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто - только stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SchedulingConfig окно по умолчанию и часовой пояс салона
type SchedulingConfig struct {
	WindowStart string `toml:"window_start"` // первый слот, HH:MM
	WindowEnd   string `toml:"window_end"`   // последний слот, HH:MM
	Timezone    string `toml:"timezone"`     // IANA, например Europe/Moscow
}

// RateLimitConfig ограничение частоты на изменяющие эндпоинты
type RateLimitConfig struct {
	Enabled    bool    `toml:"enabled"`
	RPS        float64 `toml:"rps"`
	Burst      int     `toml:"burst"`
	IdleTTL    int     `toml:"idle_ttl"`    // секунды
	TrustProxy bool    `toml:"trust_proxy"` // брать IP клиента из X-Forwarded-For
}

type MigrationsConfig struct {
	Enabled bool `toml:"enabled"`
}

// Load читает TOML файл, затем .env (если есть) и переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "barber_booking",
		},
		Scheduling: SchedulingConfig{
			WindowStart: string(domain.DefaultWindowStart),
			WindowEnd:   string(domain.DefaultWindowEnd),
			Timezone:    "UTC",
		},
		RateLimit: RateLimitConfig{
			RPS:     5,
			Burst:   10,
			IdleTTL: 600,
		},
	}
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", key, v, err)
		}
		*dst = n
		return nil
	}

	setString("DB_HOST", &c.Database.Host)
	setString("DB_USER", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_NAME", &c.Database.DBName)
	setString("LOG_LEVEL", &c.Logs.Level)
	setString("SCHEDULING_TIMEZONE", &c.Scheduling.Timezone)

	if err := setInt("DB_PORT", &c.Database.Port); err != nil {
		return err
	}
	return setInt("HTTP_PORT", &c.Server.HTTPPort)
}

// Validate проверяет обязательные поля и согласованность окна
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return errors.New("database host, dbname and user are required")
	}

	if _, err := c.DefaultWindow(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("rate_limit.rps and rate_limit.burst must be positive")
	}

	return nil
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// DefaultWindow окно по умолчанию для мастеров без своего расписания
func (c *Config) DefaultWindow() (domain.OperatingWindow, error) {
	start, err := types.NewTimeStringFromString(c.Scheduling.WindowStart)
	if err != nil {
		return domain.OperatingWindow{}, fmt.Errorf("scheduling.window_start: %w", err)
	}
	end, err := types.NewTimeStringFromString(c.Scheduling.WindowEnd)
	if err != nil {
		return domain.OperatingWindow{}, fmt.Errorf("scheduling.window_end: %w", err)
	}

	if start.Minutes()%domain.SlotGranularityMinutes != 0 || end.Minutes()%domain.SlotGranularityMinutes != 0 {
		return domain.OperatingWindow{}, fmt.Errorf("scheduling window must be on the %d-minute grid", domain.SlotGranularityMinutes)
	}
	if end.IsBefore(start) {
		return domain.OperatingWindow{}, errors.New("scheduling.window_end is before window_start")
	}

	return domain.OperatingWindow{Start: start, End: end}, nil
}

// Location часовой пояс, в котором сравниваются слоты с текущим временем
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Scheduling.Timezone)
	if err != nil {
		return nil, fmt.Errorf("scheduling.timezone: %w", err)
	}
	return loc, nil
}
