package config

// Config holds all application configuration.
// It is loaded once at startup and passed explicitly to the components
// that need it; nothing re-reads the environment after Load returns.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
// SecretKey is the HMAC signing secret for both access and refresh tokens;
// the server refuses to start without it.
type AuthConfig struct {
	SecretKey                 string `mapstructure:"secret_key"                   validate:"required,min=32"`
	Algorithm                 string `mapstructure:"algorithm"                    validate:"required,oneof=HS256 HS384 HS512"`
	AccessTokenExpireMinutes  int    `mapstructure:"access_token_expire_minutes"  validate:"required,gt=0"`
	RefreshTokenExpireMinutes int    `mapstructure:"refresh_token_expire_minutes" validate:"required,gt=0"`
}

// LLMConfig contains settings for the summarization backend.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"      validate:"required"`
	ModelName         string `mapstructure:"model_name"          validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries"         validate:"gte=0"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=0"`
}
