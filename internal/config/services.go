package config

import "time"

type ExecutorConfig struct {
	BaseURL  string
	Language string
	Version  string
	Timeout  time.Duration
}

func NewExecutorConfig() *ExecutorConfig {
	return &ExecutorConfig{
		BaseURL:  getEnv("PISTON_URL", "https://emkc.org/api/v2/piston"),
		Language: getEnv("PISTON_LANGUAGE", "python"),
		Version:  getEnv("PISTON_VERSION", "3.10.0"),
		Timeout:  getSecondsEnv("EXECUTION_TIMEOUT_SEC", 30*time.Second),
	}
}

type AuditorConfig struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

func NewAuditorConfig() *AuditorConfig {
	return &AuditorConfig{
		BaseURL: getEnv("GEMINI_URL", "https://generativelanguage.googleapis.com"),
		Model:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		APIKey:  getEnv("GEMINI_API_KEY", ""),
		Timeout: getSecondsEnv("AUDIT_TIMEOUT_SEC", 20*time.Second),
	}
}

type RegistryConfig struct {
	MintAttempts     int
	VerifyPathPrefix string
}

func NewRegistryConfig() *RegistryConfig {
	attempts := getIntEnv("REGISTRY_MINT_ATTEMPTS", 3)
	if attempts < 1 {
		attempts = 1
	}
	return &RegistryConfig{
		MintAttempts:     attempts,
		VerifyPathPrefix: getEnv("VERIFY_PATH_PREFIX", "/api/verify/"),
	}
}
