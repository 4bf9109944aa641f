package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "TASKLIST"

// Viper keys. Flags bound by the CLI use the same names.
const (
	KeyConfig         = "config"
	KeyBackend        = "backend"
	KeyDriver         = "driver"
	KeyDBPath         = "db-path"
	KeyFilePath       = "file-path"
	KeyLogFile        = "log-file"
	KeyLogLevel       = "log-level"
	KeyAnimations     = "animations"
	KeyMouse          = "mouse"
	KeyRemovalTimeout = "removal-timeout"
	KeyFrameRate      = "frame-rate"
	KeyDeadlineBuffer = "deadline-buffer"
)

type RuntimeConfig struct {
	Backend        string
	Driver         string
	DBPath         string
	FilePath       string
	LogFile        string
	LogLevel       string
	Animations     bool
	Mouse          bool
	RemovalTimeout time.Duration
	FrameRate      int
	DeadlineBuffer int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Backend:        "sqlite",
		Driver:         "sqlite3",
		DBPath:         ".tasklist/tasklist.db",
		FilePath:       ".tasklist/tasklist.json",
		LogFile:        "",
		LogLevel:       "info",
		Animations:     true,
		Mouse:          true,
		RemovalTimeout: 600 * time.Millisecond,
		FrameRate:      60,
		DeadlineBuffer: 64,
	}
}

// Load resolves configuration from defaults, an optional YAML file named by
// the "config" key, TASKLIST_* environment variables and any flags already
// bound to v. Non-positive or unparseable numbers fall back to defaults.
func Load(v *viper.Viper) (RuntimeConfig, error) {
	def := DefaultRuntimeConfig()
	v.SetDefault(KeyBackend, def.Backend)
	v.SetDefault(KeyDriver, def.Driver)
	v.SetDefault(KeyDBPath, def.DBPath)
	v.SetDefault(KeyFilePath, def.FilePath)
	v.SetDefault(KeyLogFile, def.LogFile)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyAnimations, def.Animations)
	v.SetDefault(KeyMouse, def.Mouse)
	v.SetDefault(KeyRemovalTimeout, def.RemovalTimeout)
	v.SetDefault(KeyFrameRate, def.FrameRate)
	v.SetDefault(KeyDeadlineBuffer, def.DeadlineBuffer)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := strings.TrimSpace(v.GetString(KeyConfig)); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return RuntimeConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := RuntimeConfig{
		Backend:        strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend))),
		Driver:         strings.TrimSpace(v.GetString(KeyDriver)),
		DBPath:         strings.TrimSpace(v.GetString(KeyDBPath)),
		FilePath:       strings.TrimSpace(v.GetString(KeyFilePath)),
		LogFile:        strings.TrimSpace(v.GetString(KeyLogFile)),
		LogLevel:       strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		Animations:     v.GetBool(KeyAnimations),
		Mouse:          v.GetBool(KeyMouse),
		RemovalTimeout: removalTimeout(v),
		FrameRate:      v.GetInt(KeyFrameRate),
		DeadlineBuffer: v.GetInt(KeyDeadlineBuffer),
	}
	if cfg.Backend == "" {
		cfg.Backend = def.Backend
	}
	if cfg.Driver == "" {
		cfg.Driver = def.Driver
	}
	if cfg.DBPath == "" {
		cfg.DBPath = def.DBPath
	}
	if cfg.FilePath == "" {
		cfg.FilePath = def.FilePath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.RemovalTimeout <= 0 {
		cfg.RemovalTimeout = def.RemovalTimeout
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = def.FrameRate
	}
	if cfg.DeadlineBuffer <= 0 {
		cfg.DeadlineBuffer = def.DeadlineBuffer
	}
	return cfg, nil
}

// removalTimeout reads a bare integer as milliseconds; anything else goes
// through viper's duration parsing ("1.5s", "600ms").
func removalTimeout(v *viper.Viper) time.Duration {
	raw := strings.TrimSpace(v.GetString(KeyRemovalTimeout))
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return v.GetDuration(KeyRemovalTimeout)
}
