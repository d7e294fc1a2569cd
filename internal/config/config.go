package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/termloop/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig   = "TERMLOOP_CONFIG"
	envTickRate = "TERMLOOP_TICK_RATE_MS"
	envTrace    = "TERMLOOP_TRACE"
	envLogFile  = "TERMLOOP_LOG_FILE"

	defaultTickRateMS = 250
	defaultLogFile    = "termloop.log"

	MinTickRate = 10 * time.Millisecond
	MaxTickRate = time.Minute
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// fileConfig is the optional YAML config file. Unset keys keep the built-in
// defaults.
type fileConfig struct {
	TickRateMS *int    `yaml:"tick_rate_ms"`
	LogFile    *string `yaml:"log_file"`
	Trace      *bool   `yaml:"trace"`
}

// LoadArgs allows tests to supply specific args/environment. Values are
// resolved from the config file, then the environment, then flags, each
// overriding the one before.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	configPath := envOrDefault(env, envConfig, "")
	if path, ok := configFlag(args); ok {
		configPath = path
	}
	file, err := loadFile(configPath)
	if err != nil {
		return Config{}, err
	}
	tickDefault, logDefault, traceDefault := defaultTickRateMS, defaultLogFile, false
	if file.TickRateMS != nil {
		tickDefault = *file.TickRateMS
	}
	if file.LogFile != nil && strings.TrimSpace(*file.LogFile) != "" {
		logDefault = *file.LogFile
	}
	if file.Trace != nil {
		traceDefault = *file.Trace
	}

	fs := flag.NewFlagSet("termloop", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", configPath, "path to a YAML config file")
	tickRate := fs.Int("tick-rate", envOrInt(env, envTickRate, tickDefault), "tick interval in milliseconds")
	trace := fs.Bool("trace", envOrBool(env, envTrace, traceDefault), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, logDefault), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := Config{
		App: app.Config{
			TickRate: time.Duration(*tickRate) * time.Millisecond,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"config":   configPath,
			"tickRate": strconv.Itoa(*tickRate),
			"trace":    strconv.FormatBool(*trace),
			"logFile":  *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func loadFile(path string) (fileConfig, error) {
	var cfg fileConfig
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// valueFlags are the flags that take a separate value argument.
var valueFlags = map[string]bool{"tick-rate": true, "log-file": true}

// configFlag finds -config ahead of the full parse, since the file supplies
// the defaults for every other flag.
func configFlag(args []string) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || !strings.HasPrefix(arg, "-") {
			return "", false
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if name != "config" {
			if valueFlags[name] && !hasValue {
				i++
			}
			continue
		}
		if hasValue {
			return value, true
		}
		if i+1 < len(args) {
			return args[i+1], true
		}
		return "", false
	}
	return "", false
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits with status 2.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects tick rates the loop cannot sensibly run at.
func Validate(cfg Config) error {
	if cfg.App.TickRate < MinTickRate || cfg.App.TickRate > MaxTickRate {
		return fmt.Errorf("tick rate must be between %s and %s (got %s)", MinTickRate, MaxTickRate, cfg.App.TickRate)
	}
	return nil
}
