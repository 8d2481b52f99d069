package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/supchaser/aria2bot/internal/utils/errs"
)

const (
	defaultConfigPath    = "config.toml"
	defaultSubscribeSecs = 180
	defaultRPCTimeout    = 10
)

type Config struct {
	LogMode    string
	ConfigPath string
	HTTPPort   string

	Aria2    Aria2Group
	Telegram TelegramConfig
	Download DownloadConfig
}

type TelegramConfig struct {
	Token               string  `toml:"token"`
	Admins              []int64 `toml:"admins"`
	SubscribeExpireSecs int     `toml:"subscribe_expire_secs"`
}

type DownloadConfig struct {
	MagnetDirs  []DirConfig `toml:"magnet_dirs"`
	TorrentDirs []DirConfig `toml:"torrent_dirs"`
	LinkDirs    []DirConfig `toml:"link_dirs"`
	DefaultDir  string      `toml:"default_dir"`
}

type DirConfig struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

func (c *Config) SubscriberTTL() time.Duration {
	return time.Duration(c.Telegram.SubscribeExpireSecs) * time.Second
}

func checkEnv(envVars []string) error {
	var missingVars []string

	for _, envVar := range envVars {
		if value, exists := os.LookupEnv(envVar); !exists || value == "" {
			missingVars = append(missingVars, envVar)
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("error: this env vars are missing: %v", missingVars)
	}

	return nil
}

func validateEnv() error {
	return checkEnv([]string{
		"LOG_MODE",
	})
}

// LoadConfig reads the env file (when present) and then the TOML bot
// configuration. configPath wins over CONFIG_PATH; both may be empty.
func LoadConfig(envPath, configPath string) (*Config, error) {
	if envPath != "" {
		err := godotenv.Load(envPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load configuration file: %w", err)
		}
	}

	if err := validateEnv(); err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := loadBotConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}

	cfg.LogMode = os.Getenv("LOG_MODE")
	cfg.HTTPPort = os.Getenv("HTTP_PORT")
	cfg.ConfigPath = configPath
	if token := os.Getenv("TELEGRAM_TOKEN"); token != "" {
		cfg.Telegram.Token = token
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Telegram.SubscribeExpireSecs <= 0 {
		c.Telegram.SubscribeExpireSecs = defaultSubscribeSecs
	}

	for _, server := range c.Aria2.Servers() {
		if server.Config.TimeoutSecs <= 0 {
			server.Config.TimeoutSecs = defaultRPCTimeout
		}
	}
}

func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return errors.New("telegram token is required")
	}

	servers := c.Aria2.Servers()
	if len(servers) == 0 {
		return errs.ErrNoServers
	}
	for _, server := range servers {
		if server.Config.RPCURL == "" {
			return fmt.Errorf("aria2 server %q: rpc_url is required", server.Name)
		}
	}

	return nil
}
