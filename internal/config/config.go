// Package config loads recorder configuration from file and environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/frudas24/recit/internal/monitor"
)

const (
	appName                = "recit"
	defaultFormat          = "webm"
	defaultFramerate       = 30
	defaultResolution      = "720p"
	defaultTheme           = "base2tone-evening"
	defaultDisplay         = ":0.0"
	defaultFFmpegPath      = "ffmpeg"
	defaultXrandrPath      = "xrandr"
	defaultXdpyinfoPath    = "xdpyinfo"
	defaultProbeTimeoutMs  = 3000
	defaultWatchIntervalMs = 2000
	defaultLogLevel        = "info"
	maxFramerate           = 240
)

// defaultNativeProbe enables the native display tier only where no X11 query tools exist.
// Elsewhere a host without xrandr and xdpyinfo falls straight to the default geometry.
var defaultNativeProbe = runtime.GOOS == "windows"

// envPrefix namespaces every environment override.
const envPrefix = "RECIT_"

// Config holds runtime configuration values.
type Config struct {
	OutputDir       string `toml:"output_dir" yaml:"output_dir" json:"output_dir"`
	Format          string `toml:"format" yaml:"format" json:"format"`
	Framerate       int    `toml:"framerate" yaml:"framerate" json:"framerate"`
	Resolution      string `toml:"resolution" yaml:"resolution" json:"resolution"`
	Theme           string `toml:"theme" yaml:"theme" json:"theme"`
	Display         string `toml:"display" yaml:"display" json:"display"`
	Monitor         string `toml:"monitor" yaml:"monitor" json:"monitor"`
	FFmpegPath      string `toml:"ffmpeg_path" yaml:"ffmpeg_path" json:"ffmpeg_path"`
	XrandrPath      string `toml:"xrandr_path" yaml:"xrandr_path" json:"xrandr_path"`
	XdpyinfoPath    string `toml:"xdpyinfo_path" yaml:"xdpyinfo_path" json:"xdpyinfo_path"`
	ProbeTimeoutMs  int    `toml:"probe_timeout_ms" yaml:"probe_timeout_ms" json:"probe_timeout_ms"`
	WatchIntervalMs int    `toml:"watch_interval_ms" yaml:"watch_interval_ms" json:"watch_interval_ms"`
	LogLevel        string `toml:"log_level" yaml:"log_level" json:"log_level"`
	NativeProbe     bool   `toml:"native_probe" yaml:"native_probe" json:"native_probe"`

	// Path is the config file that was read, or would have been read when missing.
	Path string `toml:"-" yaml:"-" json:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputDir:       filepath.Join(xdg.UserDirs.Videos, "Recordings"),
		Format:          defaultFormat,
		Framerate:       defaultFramerate,
		Resolution:      defaultResolution,
		Theme:           defaultTheme,
		Display:         defaultDisplay,
		FFmpegPath:      defaultFFmpegPath,
		XrandrPath:      defaultXrandrPath,
		XdpyinfoPath:    defaultXdpyinfoPath,
		ProbeTimeoutMs:  defaultProbeTimeoutMs,
		WatchIntervalMs: defaultWatchIntervalMs,
		LogLevel:        defaultLogLevel,
		NativeProbe:     defaultNativeProbe,
	}
}

// DefaultPath returns the per-user config file location. config.toml is preferred;
// a config.json left by earlier recit versions is used when it is the only file present.
func DefaultPath() string {
	dir := filepath.Join(xdg.ConfigHome, appName)
	primary := filepath.Join(dir, "config.toml")
	if fileExists(primary) {
		return primary
	}
	if legacy := filepath.Join(dir, "config.json"); fileExists(legacy) {
		return legacy
	}
	return primary
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Load reads defaults, the config file, a sibling .env file, and RECIT_* variables.
// An empty path selects DefaultPath. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	cfg.Path = path

	if err := loadFile(path, &cfg); err != nil {
		return Config{}, err
	}
	if err := loadEnvFile(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	cfg.OutputDir = expandHome(cfg.OutputDir)
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and formats.
func (c Config) Validate() error {
	if c.Format != string(monitor.FormatWebM) && c.Format != string(monitor.FormatMP4) {
		return fmt.Errorf("format must be webm or mp4, got %q", c.Format)
	}
	if c.Framerate <= 0 || c.Framerate > maxFramerate {
		return fmt.Errorf("framerate must be 1-%d", maxFramerate)
	}
	if _, err := monitor.HeightFromLabel(c.Resolution); err != nil {
		return err
	}
	if c.ProbeTimeoutMs <= 0 {
		return errors.New("probe_timeout_ms must be > 0")
	}
	if c.WatchIntervalMs <= 0 {
		return errors.New("watch_interval_ms must be > 0")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output_dir is required")
	}
	return nil
}

// TargetHeight returns the configured output height in pixels.
func (c Config) TargetHeight() int {
	h, err := monitor.HeightFromLabel(c.Resolution)
	if err != nil {
		return 720
	}
	return h
}

// RecordFormat returns the configured container format.
func (c Config) RecordFormat() monitor.Format {
	return monitor.ParseFormat(c.Format)
}

// ProbeTimeout returns the per-command detection timeout.
func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutMs) * time.Millisecond
}

// WatchInterval returns the re-detection polling interval.
func (c Config) WatchInterval() time.Duration {
	return time.Duration(c.WatchIntervalMs) * time.Millisecond
}

// DetectorOptions maps the probe settings onto monitor.Options.
func (c Config) DetectorOptions() monitor.Options {
	return monitor.Options{
		XrandrPath:   c.XrandrPath,
		XdpyinfoPath: c.XdpyinfoPath,
		Timeout:      c.ProbeTimeout(),
		Native:       c.NativeProbe,
	}
}

// loadFile decodes the config file according to its extension.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("config %s: unsupported extension (use .toml, .yaml, or .json)", path)
	}
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// loadEnvFile loads KEY=VALUE pairs from a .env file without overriding the process env.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("env file %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays RECIT_* environment variables.
func applyEnv(cfg *Config) error {
	cfg.OutputDir = envString("OUTPUT_DIR", cfg.OutputDir)
	cfg.Format = envString("FORMAT", cfg.Format)
	cfg.Resolution = envString("RESOLUTION", cfg.Resolution)
	cfg.Theme = envString("THEME", cfg.Theme)
	cfg.Display = envString("DISPLAY", cfg.Display)
	cfg.Monitor = envString("MONITOR", cfg.Monitor)
	cfg.FFmpegPath = envString("FFMPEG_PATH", cfg.FFmpegPath)
	cfg.XrandrPath = envString("XRANDR_PATH", cfg.XrandrPath)
	cfg.XdpyinfoPath = envString("XDPYINFO_PATH", cfg.XdpyinfoPath)
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	cfg.NativeProbe = envBool("NATIVE_PROBE", cfg.NativeProbe)

	framerate, err := envInt("FRAMERATE", cfg.Framerate)
	if err != nil {
		return err
	}
	cfg.Framerate = framerate

	probeTimeout, err := envInt("PROBE_TIMEOUT_MS", cfg.ProbeTimeoutMs)
	if err != nil {
		return err
	}
	cfg.ProbeTimeoutMs = probeTimeout

	watchInterval, err := envInt("WATCH_INTERVAL_MS", cfg.WatchIntervalMs)
	if err != nil {
		return err
	}
	cfg.WatchIntervalMs = watchInterval

	return nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(envPrefix + key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(envPrefix + key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s%s must be an integer: %w", envPrefix, key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(envPrefix + key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// expandHome resolves a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	return filepath.Join(xdg.Home, strings.TrimPrefix(path, "~"))
}
