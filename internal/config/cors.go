package config

import (
	"os"
	"strings"
)

const (
	corsAllowedOriginsEnv = "CORS_ALLOWED_ORIGINS"

	wildcardOrigin = "*"
)

type CORSConfig struct {
	AllowedOrigins []string
}

// LoadCORSConfig reads a comma separated origin list. Any origin is allowed
// by default.
func LoadCORSConfig() *CORSConfig {
	origins := []string{wildcardOrigin}

	if raw := os.Getenv(corsAllowedOriginsEnv); raw != "" {
		var parsed []string
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				parsed = append(parsed, origin)
			}
		}
		if len(parsed) > 0 {
			origins = parsed
		}
	}

	return &CORSConfig{AllowedOrigins: origins}
}

func (c *CORSConfig) AllowsAnyOrigin() bool {
	for _, origin := range c.AllowedOrigins {
		if origin == wildcardOrigin {
			return true
		}
	}
	return false
}
