package config

import "time"

// Config is the root configuration of the API server.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ClientConfig is the root configuration of the ironlog client.
// It is loaded separately so the client never needs database settings.
type ClientConfig struct {
	Client ClientSettings `yaml:"client"`
	Log    LogConfig      `yaml:"log"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// WriteRateLimit caps workout writes per caller per minute. Zero disables it.
	WriteRateLimit int `yaml:"write_rate_limit" env:"SERVER_WRITE_RATE_LIMIT" env-default:"120"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
}

// AuthConfig holds bearer token settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"ironlog"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"720h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ClientSettings holds settings of the offline-capable logging client.
type ClientSettings struct {
	StorePath        string        `yaml:"store_path"         env:"IRONLOG_STORE_PATH"         env-default:"./ironlog.db"`
	ServerURL        string        `yaml:"server_url"         env:"IRONLOG_SERVER_URL"         env-default:"http://localhost:8080"`
	AccessToken      string        `yaml:"access_token"       env:"IRONLOG_ACCESS_TOKEN"`
	Unit             string        `yaml:"unit"               env:"IRONLOG_UNIT"               env-default:"kg"`
	AutosaveDebounce time.Duration `yaml:"autosave_debounce"  env:"IRONLOG_AUTOSAVE_DEBOUNCE"  env-default:"1500ms"`
	OfflineNoticeTTL time.Duration `yaml:"offline_notice_ttl" env:"IRONLOG_OFFLINE_NOTICE_TTL" env-default:"3s"`
	RequestTimeout   time.Duration `yaml:"request_timeout"    env:"IRONLOG_REQUEST_TIMEOUT"    env-default:"10s"`

	// RetryInterval enables background drain retries while online with a
	// non-empty queue. Zero disables them.
	RetryInterval time.Duration `yaml:"retry_interval" env:"IRONLOG_RETRY_INTERVAL" env-default:"0s"`
}
