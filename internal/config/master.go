package config

import (
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	DebugMode       bool
	HTTPConfig      *HTTPConfig
	LogConfig       *LogConfig
	DatabaseConfig  *DatabaseConfig
	RedisConfig     *RedisConfig
	ExecutorConfig  *ExecutorConfig
	AuditorConfig   *AuditorConfig
	RegistryConfig  *RegistryConfig
	PassTokenConfig *PassTokenConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:       os.Getenv("DEBUG_MODE") == "true",
		HTTPConfig:      NewHTTPConfig(),
		LogConfig:       NewLogConfig(),
		DatabaseConfig:  NewDatabaseConfig(),
		RedisConfig:     NewRedisConfig(),
		ExecutorConfig:  NewExecutorConfig(),
		AuditorConfig:   NewAuditorConfig(),
		RegistryConfig:  NewRegistryConfig(),
		PassTokenConfig: NewPassTokenConfig(),
	}
}

type HTTPConfig struct {
	Port        int
	ServiceName string
}

func NewHTTPConfig() *HTTPConfig {
	return &HTTPConfig{
		Port:        getIntEnv("PORT", 8080),
		ServiceName: getEnv("SERVICE_NAME", "skillsnap"),
	}
}

type LogConfig struct {
	Level  string
	Format string
}

func NewLogConfig() *LogConfig {
	return &LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}
}

// getEnv gets an environment variable with a fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an environment variable as an integer with a fallback
func getIntEnv(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return intValue
}

func getSecondsEnv(key string, fallback time.Duration) time.Duration {
	sec := getIntEnv(key, -1)
	if sec <= 0 {
		return fallback
	}
	return time.Duration(sec) * time.Second
}

func getBoolEnv(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}
