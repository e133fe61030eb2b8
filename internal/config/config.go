package config

import (
	"log/slog"
	"os"
	"strings"
)

const (
	portEnv     = "PORT"
	logLevelEnv = "LOG_LEVEL"

	// defaultPort matches the port the mobile client has always targeted.
	defaultPort = "5000"
)

type Config struct {
	Port     string
	LogLevel slog.Level
	Artifact *ArtifactConfig
	Redis    *RedisConfig
	CORS     *CORSConfig
}

func Load() (*Config, error) {
	port := os.Getenv(portEnv)
	if port == "" {
		port = defaultPort
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     port,
		LogLevel: ParseLogLevel(os.Getenv(logLevelEnv)),
		Artifact: LoadArtifactConfig(),
		Redis:    redisConfig,
		CORS:     LoadCORSConfig(),
	}, nil
}

func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
