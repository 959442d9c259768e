package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config - структура для хранения конфигураций приложения
type Config struct {
	ServerAddress   string        `mapstructure:"SERVER_ADDRESS"`
	PostgresConn    string        `mapstructure:"POSTGRES_CONN"`
	PostgresUser    string        `mapstructure:"POSTGRES_USERNAME"`
	PostgresPass    string        `mapstructure:"POSTGRES_PASSWORD"`
	PostgresHost    string        `mapstructure:"POSTGRES_HOST"`
	PostgresPort    string        `mapstructure:"POSTGRES_PORT"`
	PostgresDB      string        `mapstructure:"POSTGRES_DATABASE"`
	MigrationURL    string        `mapstructure:"MIGRATION_URL"`
	DBMaxConns      int32         `mapstructure:"DB_MAX_CONNS"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	PricingWindow   int           `mapstructure:"PRICING_WINDOW"`
}

var configKeys = []string{
	"SERVER_ADDRESS", "POSTGRES_CONN", "POSTGRES_USERNAME", "POSTGRES_PASSWORD",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_DATABASE", "MIGRATION_URL",
	"DB_MAX_CONNS", "REQUEST_TIMEOUT", "SHUTDOWN_TIMEOUT", "JWT_SECRET",
	"LOG_LEVEL", "PRICING_WINDOW",
}

// LoadConfig загружает конфигурацию из файла app.env, переменные окружения имеют приоритет.
// Отсутствие файла не ошибка: всё можно задать через окружение.
func LoadConfig(path string) (cfg Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("MIGRATION_URL", "file://db/migration")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REQUEST_TIMEOUT", 5*time.Second)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PRICING_WINDOW", 100)

	v.AutomaticEnv()
	// Unmarshal видит только известные ключи, поэтому ключи без значения по умолчанию привязываются явно.
	for _, key := range configKeys {
		if err = v.BindEnv(key); err != nil {
			return
		}
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
	}

	if err = v.Unmarshal(&cfg); err != nil {
		return
	}
	err = cfg.validate()
	return
}

func (c Config) validate() error {
	if c.PostgresConn == "" {
		return errors.New("POSTGRES_CONN is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	return nil
}
