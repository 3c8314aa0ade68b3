package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	pathEnv     = "CONFIG_PATH"
	defaultFile = "config.yml"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis    Redis  `yaml:"redis"`
	Game     Game   `yaml:"game"`
	Client   Client `yaml:"client"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Game holds the service side settings.
type Game struct {
	BotDelay time.Duration `yaml:"bot-delay" env-default:"600ms"`
	TTL      time.Duration `yaml:"ttl" env-default:"24h"`
}

// Client holds the terminal client settings.
type Client struct {
	BaseURL     string        `yaml:"base-url" env:"CONNECTFOUR_URL" env-default:"http://localhost:9090"`
	SettleDelay time.Duration `yaml:"settle-delay" env-default:"600ms"`
	ResultDelay time.Duration `yaml:"result-delay" env-default:"700ms"`
	LogFile     string        `yaml:"log-file" env-default:""`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// MustLoadDefault loads the file named by CONFIG_PATH, or config.yml in the working directory.
func MustLoadDefault() *Config {
	if path := os.Getenv(pathEnv); path != "" {
		return MustLoad(path)
	}

	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return MustLoad(filepath.Join(baseDir, defaultFile))
}

// Load reads the yaml file at path, then applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// ParseLogLevel maps the log-level setting onto slog levels; unknown values mean info.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
