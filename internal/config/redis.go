package config

import "time"

type RedisConfig struct {
	Enabled  bool
	DB       int
	Url      string
	Password string
	CacheTTL time.Duration
}

func NewRedisConfig() *RedisConfig {
	return &RedisConfig{
		Enabled:  getBoolEnv("REDIS_ENABLED", true),
		DB:       getIntEnv("REDIS_DB", 0),
		Url:      getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		CacheTTL: getSecondsEnv("CERT_CACHE_TTL_SEC", time.Hour),
	}
}
