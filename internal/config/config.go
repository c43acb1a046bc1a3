package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Admin     AdminConfig     `mapstructure:"admin"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Quiz      QuizConfig      `mapstructure:"quiz"`
	Session   SessionConfig   `mapstructure:"session"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

// AdminConfig carries the shared secret that unlocks the question-upload
// panel. Exactly one of Token or TokenHash (bcrypt) must be set; there is
// deliberately no built-in default.
type AdminConfig struct {
	Token     string `mapstructure:"token"`
	TokenHash string `mapstructure:"token_hash"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type QuizConfig struct {
	QuestionsFile string `mapstructure:"questions_file"`
	ResultsFile   string `mapstructure:"results_file"`
	WatchBank     bool   `mapstructure:"watch_bank"`
}

type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl_minutes"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("PREPZONE")
	viper.AutomaticEnv()

	// Admin
	viper.BindEnv("admin.token", "ADMIN_TOKEN")
	viper.BindEnv("admin.token_hash", "ADMIN_TOKEN_HASH")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Quiz files
	viper.BindEnv("quiz.questions_file", "QUESTIONS_FILE")
	viper.BindEnv("quiz.results_file", "RESULTS_FILE")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("jwt.expire_hours", 12)
	viper.SetDefault("quiz.questions_file", "questions.xlsx")
	viper.SetDefault("quiz.results_file", "results.xlsx")
	viper.SetDefault("quiz.watch_bank", true)
	viper.SetDefault("session.ttl_minutes", 60)
	viper.SetDefault("rate_limit.max_requests", 600)
	viper.SetDefault("rate_limit.window_minutes", 1)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.Session.TTL = cfg.Session.TTL * time.Minute

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	// The original tool shipped with a fallback admin secret; an unset
	// secret is a startup error here, not a silent default.
	if c.Admin.Token == "" && c.Admin.TokenHash == "" {
		return fmt.Errorf("admin token is not configured: set admin.token or admin.token_hash (env ADMIN_TOKEN / ADMIN_TOKEN_HASH), there is no default")
	}
	if c.Admin.Token != "" && c.Admin.TokenHash != "" {
		return fmt.Errorf("admin.token and admin.token_hash are mutually exclusive")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is not configured (env JWT_SECRET)")
	}
	if c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}

	return nil
}
