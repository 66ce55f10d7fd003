package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        int
	LogLevel    string
	APIKey      string
	CORSOrigins []string
	// Narration
	NarrationProvider string
	NarrationTimeout  time.Duration
	NarrationLang     string
	GTTSBaseURL       string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIVoice       string
	// Terminal front end
	AudioPlayer  string
	DebugLogPath string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              envInt("PORT", 8080),
		LogLevel:          envStr("LOG_LEVEL", "info"),
		APIKey:            envStr("API_KEY", ""),
		CORSOrigins:       envList("CORS_ORIGINS", []string{"*"}),
		NarrationProvider: strings.ToLower(envStr("NARRATION_PROVIDER", "gtts")),
		NarrationTimeout:  envDuration("NARRATION_TIMEOUT", 5*time.Second),
		NarrationLang:     envStr("NARRATION_LANG", "en"),
		GTTSBaseURL:       envStr("GTTS_BASE_URL", "https://translate.google.com"),
		OpenAIAPIKey:      envStr("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     envStr("OPENAI_BASE_URL", ""),
		OpenAIVoice:       envStr("OPENAI_TTS_VOICE", "alloy"),
		AudioPlayer:       envStr("AUDIO_PLAYER", "mpg123 -q -"),
		DebugLogPath:      envStr("JUSTICELENS_DEBUG_LOG", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	switch c.NarrationProvider {
	case "gtts", "openai", "none":
	default:
		return fmt.Errorf("NARRATION_PROVIDER must be gtts, openai or none, got %q", c.NarrationProvider)
	}
	if c.NarrationTimeout <= 0 {
		return fmt.Errorf("NARRATION_TIMEOUT must be positive, got %s", c.NarrationTimeout)
	}
	if c.NarrationProvider == "openai" && c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY must be set when NARRATION_PROVIDER is openai")
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must not be empty")
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// envDuration accepts Go durations ("5s", "750ms") or a bare number of seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if secs, err := strconv.ParseFloat(v, 64); err == nil {
			return time.Duration(secs * float64(time.Second))
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		var out []string
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
