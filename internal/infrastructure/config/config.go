// Package config loads configuration from configs/config.yaml (optional)
// and UPKEEP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Email     EmailConfig     `mapstructure:"email"`
	Seed      SeedConfig      `mapstructure:"seed"`
	BizTime   BizTimeConfig   `mapstructure:"biztime"`
}

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// Store selects "database" (GORM) or "memory" (process session).
	Store string `mapstructure:"store"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s *ServerConfig) IsDebug() bool { return s.Mode == "debug" }

type DatabaseConfig struct {
	// Driver is "sqlite" or "mysql".
	Driver          string `mapstructure:"driver"`
	DSN             string `mapstructure:"dsn"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	// Migrator is "goose" or "auto".
	Migrator string `mapstructure:"migrator"`
}

// GetDSN returns DSN when set, otherwise builds a MySQL DSN from the parts.
func (d *DatabaseConfig) GetDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type AuthConfig struct {
	// PasswordScheme is "plaintext" or "bcrypt".
	PasswordScheme string          `mapstructure:"password_scheme"`
	BcryptCost     int             `mapstructure:"bcrypt_cost"`
	SuperUser      SuperUserConfig `mapstructure:"super_user"`
	JWT            JWTConfig       `mapstructure:"jwt"`
	LoginRateLimit RateLimitConfig `mapstructure:"login_rate_limit"`
}

// SuperUserConfig is the built-in administrator that exists outside the
// user collection.
type SuperUserConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type RateLimitConfig struct {
	Limit         int `mapstructure:"limit"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

type SchedulerConfig struct {
	Enabled             bool `mapstructure:"enabled"`
	OverdueScanMinutes  int  `mapstructure:"overdue_scan_minutes"`
	GaugeRefreshSeconds int  `mapstructure:"gauge_refresh_seconds"`
}

type EmailConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	SMTPHost     string   `mapstructure:"smtp_host"`
	SMTPPort     int      `mapstructure:"smtp_port"`
	SMTPUser     string   `mapstructure:"smtp_user"`
	SMTPPassword string   `mapstructure:"smtp_password"`
	FromAddress  string   `mapstructure:"from_address"`
	FromName     string   `mapstructure:"from_name"`
	Recipients   []string `mapstructure:"recipients"`
}

type SeedConfig struct {
	// File is loaded at startup when the store is empty.
	File    string `mapstructure:"file"`
	OnStart bool   `mapstructure:"on_start"`
}

type BizTimeConfig struct {
	Timezone string `mapstructure:"timezone"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configuration. A missing config file is not an error; defaults
// and environment variables still apply.
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("UPKEEP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	cfg, err := unmarshal()
	if err != nil {
		return nil, err
	}
	set(cfg)
	return cfg, nil
}

func unmarshal() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	switch c.Server.Store {
	case "database", "memory":
	default:
		return fmt.Errorf("server.store must be database or memory, got %q", c.Server.Store)
	}
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("database.driver must be sqlite or mysql, got %q", c.Database.Driver)
	}
	switch c.Auth.PasswordScheme {
	case "plaintext", "bcrypt":
	default:
		return fmt.Errorf("auth.password_scheme must be plaintext or bcrypt, got %q", c.Auth.PasswordScheme)
	}
	if c.Auth.JWT.Secret == "" {
		return fmt.Errorf("auth.jwt.secret is required")
	}
	return nil
}

// Watch calls onChange with the reloaded configuration whenever the config
// file changes. Invalid edits are reported through onError and ignored.
func Watch(onChange func(*Config), onError func(error)) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(fsnotify.Event) {
		cfg, err := unmarshal()
		if err != nil {
			onError(err)
			return
		}
		set(cfg)
		onChange(cfg)
	})
	viper.WatchConfig()
}

func set(cfg *Config) {
	appConfigMu.Lock()
	appConfig = cfg
	appConfigMu.Unlock()
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.store", "database")
	viper.SetDefault("server.allowed_origins", []string{"*"})

	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "file:upkeep.db?_foreign_keys=on")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.database", "upkeep")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 50)
	viper.SetDefault("database.conn_max_lifetime", 60)
	viper.SetDefault("database.migrator", "goose")

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	viper.SetDefault("auth.password_scheme", "plaintext")
	viper.SetDefault("auth.bcrypt_cost", 12)
	viper.SetDefault("auth.super_user.username", "admin")
	viper.SetDefault("auth.super_user.password", "password123")
	viper.SetDefault("auth.jwt.secret", "change-me-in-production")
	viper.SetDefault("auth.jwt.access_exp_minutes", 480)
	viper.SetDefault("auth.login_rate_limit.limit", 10)
	viper.SetDefault("auth.login_rate_limit.window_seconds", 60)

	viper.SetDefault("scheduler.enabled", true)
	viper.SetDefault("scheduler.overdue_scan_minutes", 60)
	viper.SetDefault("scheduler.gauge_refresh_seconds", 30)

	viper.SetDefault("email.enabled", false)
	viper.SetDefault("email.smtp_host", "localhost")
	viper.SetDefault("email.smtp_port", 1025)
	viper.SetDefault("email.from_address", "noreply@upkeep.local")
	viper.SetDefault("email.from_name", "Upkeep")

	viper.SetDefault("seed.file", "configs/seed.yaml")
	viper.SetDefault("seed.on_start", true)

	viper.SetDefault("biztime.timezone", "UTC")
}
