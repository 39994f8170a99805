package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	DB           DBConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	JWT          JWTConfig
	Analysis     AnalysisConfig
	Diagnostic   DiagnosticConfig
	Progress     ProgressConfig
	Gamification GamificationConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int
	AllowOrigins string
}

type DBConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LoggerConfig struct {
	Level string
	Env   string
}

type JWTConfig struct {
	SecretKey string
	Issuer    string
}

// AnalysisConfig describes the external diagnostic analysis service.
type AnalysisConfig struct {
	URL                string
	ServiceToken       string
	Timeout            time.Duration
	EstimatedDelay     time.Duration
	EstimatedTimeLabel string
	OAuth2             OAuth2ClientConfig
}

// OAuth2ClientConfig enables client-credentials tokens on outbound analysis calls
// when ClientID is set.
type OAuth2ClientConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
}

type DiagnosticConfig struct {
	TimeoutMinutes int
	MaxRestarts    int
}

type ProgressConfig struct {
	TotalUnits int
	Monotonic  bool
	SummaryTTL time.Duration
}

type GamificationConfig struct {
	CascadeLevelUps bool
	MaxAwardRetries int
}

func setDefaults() {
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", "20s")
	viper.SetDefault("server.write_timeout", "20s")
	viper.SetDefault("server.idle_timeout", "20s")
	viper.SetDefault("server.body_limit", 1024*1024)
	viper.SetDefault("server.allow_origins", "*")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("db.user", "nerdmath")
	viper.SetDefault("db.name", "nerdmath")
	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("db.max_open_conns", 20)
	viper.SetDefault("db.max_idle_conns", 5)
	viper.SetDefault("db.conn_max_lifetime", "30m")

	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	viper.SetDefault("jwt.issuer", "nerd-math")

	viper.SetDefault("analysis.url", "http://localhost:8000/api/learning-path/express/diagnostic")
	viper.SetDefault("analysis.timeout", "10s")
	viper.SetDefault("analysis.estimated_delay", "5m")
	viper.SetDefault("analysis.estimated_time_label", "5-10 minutes")

	viper.SetDefault("diagnostic.timeout_minutes", 60)
	viper.SetDefault("diagnostic.max_restarts", 2)

	viper.SetDefault("progress.total_units", 97)
	viper.SetDefault("progress.monotonic", false)
	viper.SetDefault("progress.summary_ttl", "5m")

	viper.SetDefault("gamification.cascade_level_ups", true)
	viper.SetDefault("gamification.max_award_retries", 3)
}

// LoadConfig reads config.yaml (when present), a local .env file and the process
// environment. Environment keys use underscores, e.g. DB_HOST or ANALYSIS_SERVICE_TOKEN.
func LoadConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../configs")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
			IdleTimeout:  viper.GetDuration("server.idle_timeout"),
			BodyLimit:    viper.GetInt("server.body_limit"),
			AllowOrigins: viper.GetString("server.allow_origins"),
		},
		DB: DBConfig{
			Host:            viper.GetString("db.host"),
			Port:            viper.GetInt("db.port"),
			User:            viper.GetString("db.user"),
			Password:        viper.GetString("db.password"),
			DBName:          viper.GetString("db.name"),
			SSLMode:         viper.GetString("db.sslmode"),
			MaxOpenConns:    viper.GetInt("db.max_open_conns"),
			MaxIdleConns:    viper.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: viper.GetDuration("db.conn_max_lifetime"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		JWT: JWTConfig{
			SecretKey: viper.GetString("jwt.secret_key"),
			Issuer:    viper.GetString("jwt.issuer"),
		},
		Analysis: AnalysisConfig{
			URL:                viper.GetString("analysis.url"),
			ServiceToken:       viper.GetString("analysis.service_token"),
			Timeout:            viper.GetDuration("analysis.timeout"),
			EstimatedDelay:     viper.GetDuration("analysis.estimated_delay"),
			EstimatedTimeLabel: viper.GetString("analysis.estimated_time_label"),
			OAuth2: OAuth2ClientConfig{
				ClientID:     viper.GetString("analysis.oauth2.client_id"),
				ClientSecret: viper.GetString("analysis.oauth2.client_secret"),
				TokenURL:     viper.GetString("analysis.oauth2.token_url"),
				Scopes:       viper.GetStringSlice("analysis.oauth2.scopes"),
			},
		},
		Diagnostic: DiagnosticConfig{
			TimeoutMinutes: viper.GetInt("diagnostic.timeout_minutes"),
			MaxRestarts:    viper.GetInt("diagnostic.max_restarts"),
		},
		Progress: ProgressConfig{
			TotalUnits: viper.GetInt("progress.total_units"),
			Monotonic:  viper.GetBool("progress.monotonic"),
			SummaryTTL: viper.GetDuration("progress.summary_ttl"),
		},
		Gamification: GamificationConfig{
			CascadeLevelUps: viper.GetBool("gamification.cascade_level_ups"),
			MaxAwardRetries: viper.GetInt("gamification.max_award_retries"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects configurations the services cannot run with.
func (c *Config) Validate() error {
	if c.JWT.SecretKey == "" {
		return errors.New("jwt.secret_key is required")
	}
	if c.Progress.TotalUnits <= 0 {
		return fmt.Errorf("progress.total_units must be positive, got %d", c.Progress.TotalUnits)
	}
	if c.Diagnostic.TimeoutMinutes <= 0 {
		return fmt.Errorf("diagnostic.timeout_minutes must be positive, got %d", c.Diagnostic.TimeoutMinutes)
	}
	if c.Diagnostic.MaxRestarts < 0 {
		return fmt.Errorf("diagnostic.max_restarts must not be negative, got %d", c.Diagnostic.MaxRestarts)
	}
	if c.Gamification.MaxAwardRetries <= 0 {
		c.Gamification.MaxAwardRetries = 1
	}
	return nil
}

// GetDSN returns a PostgreSQL connection URL understood by the pgx driver and by migrate.
func (c *Config) GetDSN() string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DB.User, c.DB.Password),
		Host:   net.JoinHostPort(c.DB.Host, strconv.Itoa(c.DB.Port)),
		Path:   c.DB.DBName,
	}
	query := url.Values{}
	if c.DB.SSLMode != "" {
		query.Set("sslmode", c.DB.SSLMode)
	}
	dsn.RawQuery = query.Encode()
	return dsn.String()
}
