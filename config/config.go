package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Redemption RedemptionConfig `mapstructure:"redemption"`
	Feed       FeedConfig       `mapstructure:"feed"`
	Donation   DonationConfig   `mapstructure:"donation"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	URL             string        `mapstructure:"url"` // overrides the discrete fields when set
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// RedemptionConfig configures the outbound voucher redemption call.
type RedemptionConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	RedeemPath   string        `mapstructure:"redeem_path"`
	MobileNumber string        `mapstructure:"mobile_number"` // account credited with redeemed vouchers
	Timeout      time.Duration `mapstructure:"timeout"`
}

// Endpoint returns the full redemption URL.
func (r RedemptionConfig) Endpoint() string {
	return strings.TrimRight(r.BaseURL, "/") + "/" + strings.TrimLeft(r.RedeemPath, "/")
}

type FeedConfig struct {
	Mode      string        `mapstructure:"mode"` // local, redis
	Channel   string        `mapstructure:"channel"`
	Heartbeat time.Duration `mapstructure:"heartbeat"`
}

type DonationConfig struct {
	Locale      string `mapstructure:"locale"` // en, th
	RecentLimit int    `mapstructure:"recent_limit"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: VDG_ (Voucher Donation Gateway).
// Nested keys use underscore: VDG_DATABASE_HOST, VDG_REDEMPTION_MOBILE_NUMBER, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "voucher_donations")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redemption.base_url", "https://gift.truemoney.com")
	v.SetDefault("redemption.redeem_path", "/campaign/vouchers/redeem")
	v.SetDefault("redemption.mobile_number", "")
	v.SetDefault("redemption.timeout", "30s")
	v.SetDefault("feed.mode", "local")
	v.SetDefault("feed.channel", "donations:feed")
	v.SetDefault("feed.heartbeat", "25s")
	v.SetDefault("donation.locale", "en")
	v.SetDefault("donation.recent_limit", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: VDG_DATABASE_HOST -> database.host
	v.SetEnvPrefix("VDG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required: env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Feed.Mode != "local" && cfg.Feed.Mode != "redis" {
		return nil, fmt.Errorf("invalid feed.mode %q: must be local or redis", cfg.Feed.Mode)
	}

	return &cfg, nil
}
