package config

import "time"

// PassTokenConfig controls the signed proof handed out for a passed attempt.
// Enforce makes certify refuse requests that do not carry a matching token.
type PassTokenConfig struct {
	Secret  string
	Issuer  string
	TTL     time.Duration
	Enforce bool
}

func NewPassTokenConfig() *PassTokenConfig {
	return &PassTokenConfig{
		Secret:  getEnv("PASS_TOKEN_SECRET", ""),
		Issuer:  getEnv("PASS_TOKEN_ISSUER", "skillsnap"),
		TTL:     getSecondsEnv("PASS_TOKEN_TTL_SEC", 15*time.Minute),
		Enforce: getBoolEnv("CERTIFY_REQUIRE_PASS_TOKEN", false),
	}
}
