// Package config 從環境變數 (以及可選的 .env 檔) 載入服務設定。
package config

import (
	"fmt"
	"time"

	"mess-booking/internal/model"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// MinJWTSecretLength 是 JWT_SECRET 的最短長度
const MinJWTSecretLength = 16

type Config struct {
	DatabaseURL   string `env:"DATABASE_URL,required,notEmpty"`
	RedisAddr     string `env:"REDIS_ADDR,required,notEmpty"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	Env        string `env:"APP_ENV" envDefault:"development"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	// 餐點日期以此時區的午夜為界
	Timezone    string `env:"MESS_TIMEZONE" envDefault:"Local"`
	WorkerCount int    `env:"WORKER_COUNT" envDefault:"4"`

	BreakfastPrice int64 `env:"BREAKFAST_PRICE" envDefault:"50"`
	LunchPrice     int64 `env:"LUNCH_PRICE" envDefault:"100"`
	DinnerPrice    int64 `env:"DINNER_PRICE" envDefault:"100"`

	MenuCacheTTL time.Duration `env:"MENU_CACHE_TTL" envDefault:"10m"`

	// cron 表達式，空字串表示不排程
	BillingSchedule string `env:"BILLING_SCHEDULE"`

	LoginRateLimit float64 `env:"LOGIN_RATE_LIMIT" envDefault:"5"`
	LoginRateBurst int     `env:"LOGIN_RATE_BURST" envDefault:"10"`
}

// loadDotenv 可在測試中替換
var loadDotenv = func() error { return godotenv.Load() }

// Load 讀取 .env (若存在) 並把環境變數解析成 Config
func Load() (*Config, error) {
	// .env 不存在時直接使用環境變數
	_ = loadDotenv()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes, got %d", MinJWTSecretLength, len(c.JWTSecret))
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("invalid TOKEN_TTL: %s", c.TokenTTL)
	}
	if c.Env != "development" && c.Env != "production" {
		return fmt.Errorf("invalid APP_ENV %q: want development or production", c.Env)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("invalid WORKER_COUNT: %d", c.WorkerCount)
	}
	if c.BreakfastPrice < 0 || c.LunchPrice < 0 || c.DinnerPrice < 0 {
		return fmt.Errorf("meal prices must not be negative")
	}
	if c.LoginRateLimit <= 0 || c.LoginRateBurst <= 0 {
		return fmt.Errorf("login rate limit and burst must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.BillingSchedule != "" {
		if _, err := cron.ParseStandard(c.BillingSchedule); err != nil {
			return fmt.Errorf("invalid BILLING_SCHEDULE: %w", err)
		}
	}
	return nil
}

// IsDevelopment 在 APP_ENV=development 時為 true
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Location 解析 MESS_TIMEZONE
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid MESS_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Prices 回傳設定的每餐單價
func (c Config) Prices() model.Prices {
	return model.Prices{Breakfast: c.BreakfastPrice, Lunch: c.LunchPrice, Dinner: c.DinnerPrice}
}
