package config

import "fmt"

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that every setting the server cannot run without is
// present. Secrets with sane development defaults are only enforced in
// production.
func ValidateConfig(cfg *Config) error {
	required := map[string]string{
		"SERVER_PORT": cfg.ServerPort,
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_USER":     cfg.DBUser,
		"DB_NAME":     cfg.DBName,
	}
	for field, value := range required {
		if value == "" {
			return ValidationError{Field: field, Message: "is required"}
		}
	}

	if IsProduction() {
		if cfg.DBPassword == "" {
			return ValidationError{Field: "db_password", Message: "secret is required in production"}
		}
		if cfg.JWTSecret == "" {
			return ValidationError{Field: "jwt_secret", Message: "secret is required in production"}
		}
	}

	return nil
}
