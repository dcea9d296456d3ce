package config

// Config holds all application configuration.
// It is loaded once at startup and treated as read-only afterwards.
type Config struct {
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Auth    AuthConfig    `mapstructure:"auth"    validate:"required"`
	Backend BackendConfig `mapstructure:"backend" validate:"required"`
}

// ProjectConfig identifies the service.
type ProjectConfig struct {
	Name    string `mapstructure:"name"    validate:"required"`
	Version string `mapstructure:"version" validate:"required"`
	Debug   bool   `mapstructure:"debug"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// AuthConfig contains token verification and issuance settings.
// The secret must match the key the backend signs its access tokens with.
type AuthConfig struct {
	JWTSecret                string `mapstructure:"jwt_secret"                 validate:"required,min=32"`
	Algorithm                string `mapstructure:"algorithm"                  validate:"required,oneof=HS256 HS384 HS512"`
	ExpirationSeconds        int    `mapstructure:"expiration_seconds"         validate:"required,gt=0"`
	RefreshExpirationSeconds int    `mapstructure:"refresh_expiration_seconds" validate:"required,gt=0"`
}

// BackendConfig describes the external persistence/identity service.
// Kind selects the adapter: "postgrest" talks to a hosted Postgres API,
// "postgres" runs against a plain Postgres database.
type BackendConfig struct {
	Kind       string `mapstructure:"kind"        validate:"required,oneof=postgrest postgres"`
	URL        string `mapstructure:"url"         validate:"required,url"`
	AnonKey    string `mapstructure:"anon_key"    validate:"required_if=Kind postgrest"`
	ServiceKey string `mapstructure:"service_key" validate:"required_if=Kind postgrest"`
}
