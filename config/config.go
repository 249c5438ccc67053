// Package config resolves sortbench settings from flags, environment,
// an optional .env file and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Keys understood by Load.
const (
	KeyFixturesDir     = "fixtures_dir"
	KeyExtension       = "extension"
	KeyRawOutput       = "raw_output"
	KeyAggregateOutput = "aggregate_output"
	KeySkipAbove       = "skip_above"
	KeyTimeout         = "timeout"
	KeyVerify          = "verify"
	KeyHistoryDB       = "history_db"
	KeyMetricsFile     = "metrics_file"
	KeyLogLevel        = "log_level"
	KeyQuiet           = "quiet"
	KeyJSON            = "json"
	KeyChildWrapper    = "child_wrapper"
)

// Config holds the resolved settings of one invocation.
type Config struct {
	FixturesDir     string
	Extension       string
	RawOutput       string
	AggregateOutput string
	SkipAbove       int
	Timeout         time.Duration
	Verify          bool
	HistoryDB       string
	MetricsFile     string
	LogLevel        slog.Level
	Quiet           bool
	JSON            bool
	// ChildWrapper is the command every child is launched through, if any.
	ChildWrapper []string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyFixturesDir, "liste")
	v.SetDefault(KeyExtension, ".csv")
	v.SetDefault(KeyRawOutput, "rezultate.csv")
	v.SetDefault(KeyAggregateOutput, "rezultate2.csv")
	v.SetDefault(KeySkipAbove, 100_000)
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyVerify, false)
	v.SetDefault(KeyHistoryDB, "")
	v.SetDefault(KeyMetricsFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyQuiet, false)
	v.SetDefault(KeyJSON, false)
	v.SetDefault(KeyChildWrapper, "")
}

// Load reads configuration into v and returns the resolved Config. Values
// come, in decreasing priority, from bound flags, SORTBENCH_* environment
// variables (a .env file in the working directory is loaded first), the
// config file and the defaults. A missing cfgFile is an error; a missing
// sortbench.yaml in the working directory is not.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	SetDefaults(v)

	v.SetEnvPrefix("SORTBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("sortbench")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper extracts a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		FixturesDir:     v.GetString(KeyFixturesDir),
		Extension:       v.GetString(KeyExtension),
		RawOutput:       v.GetString(KeyRawOutput),
		AggregateOutput: v.GetString(KeyAggregateOutput),
		SkipAbove:       v.GetInt(KeySkipAbove),
		Timeout:         v.GetDuration(KeyTimeout),
		Verify:          v.GetBool(KeyVerify),
		HistoryDB:       v.GetString(KeyHistoryDB),
		MetricsFile:     v.GetString(KeyMetricsFile),
		Quiet:           v.GetBool(KeyQuiet),
		JSON:            v.GetBool(KeyJSON),
	}

	if wrapper := strings.Fields(v.GetString(KeyChildWrapper)); len(wrapper) > 0 {
		cfg.ChildWrapper = wrapper
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}

	if cfg.SkipAbove < 0 {
		return Config{}, fmt.Errorf("%s must not be negative, got %d", KeySkipAbove, cfg.SkipAbove)
	}

	if cfg.Timeout < 0 {
		return Config{}, fmt.Errorf("%s must not be negative, got %s", KeyTimeout, cfg.Timeout)
	}

	if cfg.Extension != "" && !strings.HasPrefix(cfg.Extension, ".") {
		cfg.Extension = "." + cfg.Extension
	}

	return cfg, nil
}
