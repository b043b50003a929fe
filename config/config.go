package config

import (
	"pillar2/internal/logger"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion              string `mapstructure:"GENERAL_VERSION"`
	ServerPort                  int    `mapstructure:"SERVER_PORT"`
	LogLevel                    string `mapstructure:"LOG_LEVEL"`
	LogFormat                   string `mapstructure:"LOG_FORMAT"`
	DatabaseDbPath              string `mapstructure:"DATABASE_DB_PATH"`
	DatabaseCacheAddress        string `mapstructure:"DATABASE_CACHE_ADDRESS"`
	DatabaseCachePort           int    `mapstructure:"DATABASE_CACHE_PORT"`
	SessionTTLMinutes           int    `mapstructure:"SESSION_TTL_MINUTES"`
	SessionSweepIntervalSeconds int    `mapstructure:"SESSION_SWEEP_INTERVAL_SECONDS"`
	CorsAllowOrigins            string `mapstructure:"CORS_ALLOW_ORIGINS"`
	GeneratorSeed               int64  `mapstructure:"GENERATOR_SEED"`
}

var keys = []string{
	"GENERAL_VERSION",
	"SERVER_PORT",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"DATABASE_DB_PATH",
	"DATABASE_CACHE_ADDRESS",
	"DATABASE_CACHE_PORT",
	"SESSION_TTL_MINUTES",
	"SESSION_SWEEP_INTERVAL_SECONDS",
	"CORS_ALLOW_ORIGINS",
	"GENERATOR_SEED",
}

func InitConfig() (Config, error) {
	return load(".env")
}

func load(envFile string) (Config, error) {
	log := logger.New("config").Function("InitConfig")

	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("GENERAL_VERSION", "dev")
	v.SetDefault("SERVER_PORT", 8288)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("DATABASE_DB_PATH", "data/pillar2.db")
	v.SetDefault("DATABASE_CACHE_ADDRESS", "")
	v.SetDefault("DATABASE_CACHE_PORT", 6379)
	v.SetDefault("SESSION_TTL_MINUTES", 60)
	v.SetDefault("SESSION_SWEEP_INTERVAL_SECONDS", 60)
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("GENERATOR_SEED", 0)

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, log.Err("failed to bind environment variable", err, "key", key)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		log.Debug("no env file loaded, using environment and defaults", "file", envFile)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, log.Err("failed to unmarshal config", err)
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) validate() error {
	log := logger.New("config").Function("validate")

	if c.ServerPort <= 0 {
		return log.Error("server port must be positive", "port", c.ServerPort)
	}

	if c.DatabaseDbPath == "" {
		return log.ErrMsg("database path is empty")
	}

	if c.SessionTTLMinutes <= 0 {
		return log.Error("session ttl must be positive", "minutes", c.SessionTTLMinutes)
	}

	if c.SessionSweepIntervalSeconds <= 0 {
		return log.Error(
			"session sweep interval must be positive",
			"seconds",
			c.SessionSweepIntervalSeconds,
		)
	}

	return nil
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func (c Config) SessionSweepInterval() time.Duration {
	return time.Duration(c.SessionSweepIntervalSeconds) * time.Second
}

func (c Config) CacheEnabled() bool {
	return c.DatabaseCacheAddress != ""
}
