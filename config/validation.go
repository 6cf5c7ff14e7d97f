package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig verifies that the loaded configuration is usable in the
// current environment. Development and test are permissive; production
// requires the full database and server settings.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "must not be empty"}.Error())
	}
	if !strings.HasPrefix(cfg.OllamaBaseURL, "http://") && !strings.HasPrefix(cfg.OllamaBaseURL, "https://") {
		errs = append(errs, ValidationError{"OLLAMA_BASE_URL", "must be an http(s) URL"}.Error())
	}
	if cfg.OllamaModel == "" {
		errs = append(errs, ValidationError{"OLLAMA_MODEL", "must not be empty"}.Error())
	}

	if IsProduction() {
		required := map[string]string{
			"DB_HOST":     cfg.DBHost,
			"DB_PORT":     cfg.DBPort,
			"DB_USER":     cfg.DBUser,
			"DB_PASSWORD": cfg.DBPassword,
			"DB_NAME":     cfg.DBName,
			"REDIS_HOST":  cfg.RedisHost,
			"REDIS_PORT":  cfg.RedisPort,
		}
		for field, value := range required {
			if value == "" {
				errs = append(errs, ValidationError{field, "required in production"}.Error())
			}
		}
		if len(cfg.AllowedOrigins) == 0 {
			errs = append(errs, ValidationError{"ALLOWED_ORIGINS", "required in production"}.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
