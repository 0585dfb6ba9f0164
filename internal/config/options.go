package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/riskibarqy/go-commitsuggest/internal/rules"
)

const (
	defaultEndpoint = "http://localhost:11434"
	defaultModel    = "qwen2.5-coder:1.5b"
	defaultMaxBytes = 32000
	defaultTimeout  = 40 * time.Second
)

// Options captures all user facing configuration.
type Options struct {
	Model       string
	ReviewModel string
	Endpoint    string
	MaxBytes    int
	Timeout     time.Duration
	Body        bool
	Review      bool
	RulesFile   string
	Verbose     bool
	ConfigFile  string
}

// flagKeys maps config keys to the CLI flags that override them.
var flagKeys = map[string]string{
	"model":        "model",
	"review_model": "review-model",
	"endpoint":     "endpoint",
	"max_bytes":    "max-bytes",
	"timeout":      "timeout",
	"body":         "body",
	"review":       "review",
	"rules_file":   "rules-file",
	"verbose":      "verbose",
}

// DefaultConfigPath returns $HOME/.config/go-commitsuggest/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "go-commitsuggest", "config.yaml")
}

// Load resolves options from flags, environment, config file and defaults,
// in that order of precedence. flags may be nil.
func Load(flags *pflag.FlagSet, configPath string) (Options, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("COMMITGEN")
	v.AutomaticEnv()
	_ = v.BindEnv("model", "OLLAMA_MODEL")
	_ = v.BindEnv("review_model", "OLLAMA_REVIEW_MODEL")
	_ = v.BindEnv("endpoint", "OLLAMA_ENDPOINT")

	if configPath != "" {
		// An explicit path must exist; only the default location is optional.
		if _, err := os.Stat(configPath); err != nil {
			return Options{}, fmt.Errorf("config file: %w", err)
		}
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Dir(DefaultConfigPath()))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Options{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Options{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	timeout, err := parseDuration(v.GetString("timeout"))
	if err != nil {
		return Options{}, fmt.Errorf("parse timeout: %w", err)
	}

	model := stringsFallback(v.GetString("model"), defaultModel)
	opts := Options{
		Model:       model,
		ReviewModel: stringsFallback(v.GetString("review_model"), model),
		Endpoint:    stringsFallback(v.GetString("endpoint"), defaultEndpoint),
		MaxBytes:    v.GetInt("max_bytes"),
		Timeout:     timeout,
		Body:        v.GetBool("body"),
		Review:      v.GetBool("review"),
		RulesFile:   stringsFallback(v.GetString("rules_file"), rules.DefaultPath()),
		Verbose:     v.GetBool("verbose"),
		ConfigFile:  v.ConfigFileUsed(),
	}
	return opts, nil
}

// Validate rejects options that cannot drive a generation run.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Model) == "" {
		return errors.New("model is required")
	}
	if !strings.HasPrefix(o.Endpoint, "http://") && !strings.HasPrefix(o.Endpoint, "https://") {
		return fmt.Errorf("invalid endpoint %q: must start with http:// or https://", o.Endpoint)
	}
	if o.MaxBytes <= 0 {
		return fmt.Errorf("max bytes must be positive, got %d", o.MaxBytes)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", o.Timeout)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model", defaultModel)
	v.SetDefault("review_model", "")
	v.SetDefault("endpoint", defaultEndpoint)
	v.SetDefault("max_bytes", defaultMaxBytes)
	v.SetDefault("timeout", defaultTimeout.String())
	v.SetDefault("body", false)
	v.SetDefault("review", false)
	v.SetDefault("rules_file", "")
	v.SetDefault("verbose", false)
}

// parseDuration accepts Go durations ("45s") and bare integers as seconds.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultTimeout, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}

func stringsFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
