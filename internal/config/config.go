package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Wallet WalletConfig `mapstructure:"wallet"`
	Bridge BridgeConfig `mapstructure:"bridge"`
	Engine EngineConfig `mapstructure:"engine"`
	UI     UIConfig     `mapstructure:"ui"`
	Log    LogConfig    `mapstructure:"log"`
}

// WalletConfig holds where the wallet lives.
type WalletConfig struct {
	StoragePath string `mapstructure:"storage_path"`
}

// BridgeConfig sizes the pool that runs blocking wallet calls. Zero runs
// them inline.
type BridgeConfig struct {
	Workers int `mapstructure:"workers"`
}

// EngineConfig tunes the simulated engine.
type EngineConfig struct {
	SyncSteps    int           `mapstructure:"sync_steps"`
	SyncInterval time.Duration `mapstructure:"sync_interval"`
	DemoData     bool          `mapstructure:"demo_data"`
	PasswordCost int           `mapstructure:"password_cost"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	UnitName   string `mapstructure:"unit_name"`
	DateFormat string `mapstructure:"date_format"`
	Timezone   string `mapstructure:"timezone"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

const envPrefix = "BEAMWALLET"

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"storage":   "wallet.storage_path",
	"workers":   "bridge.workers",
	"log-level": "log.level",
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "beamwallet")
}

// DefaultPath is where the config file is looked up without --config or
// BEAMWALLET_CONFIG.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "beamwallet", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("wallet.storage_path", filepath.Join(dataDir(), "wallet"))
	v.SetDefault("bridge.workers", 4)
	v.SetDefault("engine.sync_steps", 20)
	v.SetDefault("engine.sync_interval", "1s")
	v.SetDefault("engine.demo_data", true)
	v.SetDefault("engine.password_cost", 10)
	v.SetDefault("ui.unit_name", "BEAM")
	v.SetDefault("ui.date_format", "02 Jan 2006 15:04")
	v.SetDefault("ui.timezone", "Local")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dataDir(), "beamwallet.log"))
	v.SetDefault("log.console", false)
}

// Load reads configuration from defaults, the config file, env and flags, in
// increasing priority. Env var overrides use prefix BEAMWALLET_. flags may be
// nil; a "config" flag names the config file.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv(envPrefix + "_CONFIG")
	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Changed {
			cfgPath = f.Value.String()
		}
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit path that does not exist is an error, a missing default is not
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Bridge.Workers < 0 {
		return Config{}, fmt.Errorf("bridge.workers must not be negative, got %d", c.Bridge.Workers)
	}
	if _, err := c.UI.Location(); err != nil {
		return Config{}, fmt.Errorf("ui.timezone: %w", err)
	}
	return c, nil
}

// Location resolves the configured timezone.
func (u UIConfig) Location() (*time.Location, error) {
	if u.Timezone == "" || u.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(u.Timezone)
}

// Save writes cfg to path, creating the config directory if needed. An empty
// path means DefaultPath.
func Save(cfg Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("wallet.storage_path", cfg.Wallet.StoragePath)
	v.Set("bridge.workers", cfg.Bridge.Workers)
	v.Set("engine.sync_steps", cfg.Engine.SyncSteps)
	v.Set("engine.sync_interval", cfg.Engine.SyncInterval.String())
	v.Set("engine.demo_data", cfg.Engine.DemoData)
	v.Set("engine.password_cost", cfg.Engine.PasswordCost)
	v.Set("ui.unit_name", cfg.UI.UnitName)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.console", cfg.Log.Console)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
