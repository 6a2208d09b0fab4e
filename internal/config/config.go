package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers. Setting DATABASE_URL selects postgres; otherwise the
// server runs on a local sqlite file.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// corsOriginPrefix is the env var name prefix; each matching variable's
// value is one allowed origin.
const corsOriginPrefix = "CORS_ORIGIN_"

// Config defines server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	DB       DBConfig       `yaml:"db"`
	Admin    AdminConfig    `yaml:"admin"`
	Auth     AuthConfig     `yaml:"auth"`
	Telegram TelegramConfig `yaml:"telegram"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Driver      string `yaml:"driver"`
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

type AdminConfig struct {
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
}

type AuthConfig struct {
	// JWTSecret switches the session strategy: set, admin tokens are
	// stateless signed tokens; empty, they live in an in-memory set.
	JWTSecret string `yaml:"jwt_secret"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional .env file, an optional YAML file
// and environment variables, env values overriding file values.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Driver:     DriverSQLite,
			SQLitePath: "data.sqlite",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("LEADAPI_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if path := os.Getenv("SQLITE_PATH"); path != "" {
		cfg.DB.SQLitePath = path
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DB.Driver = DriverPostgres
		cfg.DB.PostgresDSN = dsn
	}
	if user := os.Getenv("ADMIN_USER"); user != "" {
		cfg.Admin.User = user
	}
	if pass := os.Getenv("ADMIN_PASS"); pass != "" {
		cfg.Admin.Pass = pass
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if token := os.Getenv("TG_BOT_TOKEN"); token != "" {
		cfg.Telegram.BotToken = token
	}
	if chatID := os.Getenv("TG_CHAT_ID"); chatID != "" {
		cfg.Telegram.ChatID = chatID
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if origins := corsOriginsFromEnv(os.Environ()); len(origins) > 0 {
		cfg.CORS.Origins = origins
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// corsOriginsFromEnv collects the value of every CORS_ORIGIN_* variable.
// Sorted for deterministic startup logs.
func corsOriginsFromEnv(environ []string) []string {
	var origins []string
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" {
			continue
		}
		if strings.HasPrefix(key, corsOriginPrefix) {
			origins = append(origins, value)
		}
	}
	sort.Strings(origins)
	return origins
}
