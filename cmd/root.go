package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"foodctl/internal/api"
)

const (
	envAPIURL   = "FOOD_API_URL"
	envAssetURL = "FOOD_ASSET_URL"
	envLogLevel = "FOODCTL_LOG_LEVEL"

	defaultTimeout  = 10 * time.Second
	defaultLogLevel = "info"
	configFileName  = "config.yaml"
)

// Config holds CLI configuration.
type Config struct {
	APIBaseURL   string
	AssetBaseURL string
	DBPath       string
	ConfigDir    string
	LogLevel     string
	LogFile      string
	Timeout      time.Duration
	Demo         bool
	ShowVersion  bool
	Version      string
}

// fileConfig is the shape of ~/.foodctl/config.yaml.
type fileConfig struct {
	APIURL   string `yaml:"api_url"`
	AssetURL string `yaml:"asset_url"`
	DBPath   string `yaml:"db"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
	Timeout  string `yaml:"timeout"`
}

type flagValues struct {
	api, assets, db, configPath, logLevel, logFile string
	timeout                                        time.Duration
	demo, version                                  bool
}

// ParseFlags parses command-line flags and returns configuration.
func ParseFlags(version string) (*Config, error) {
	// .env files feed the environment layer; variables already set win.
	for _, path := range []string{".env.local", ".env"} {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	config, err := parse(os.Args[1:], os.Getenv, home)
	if err != nil {
		return nil, err
	}
	config.Version = version
	if config.ShowVersion {
		return config, nil
	}

	if err := os.MkdirAll(config.ConfigDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Onboarding only asks when nothing else chose an API.
	if config.APIBaseURL == "" && !config.Demo {
		settings, err := loadOnboardingSettings(config.ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load onboarding settings: %w", err)
		}
		if shouldRunOnboarding(settings) {
			settings, err = runOnboarding(config.ConfigDir)
			if err != nil {
				return nil, fmt.Errorf("failed to run onboarding: %w", err)
			}
		}
		config.APIBaseURL = settings.APIBaseURL
		if config.APIBaseURL == "" {
			config.APIBaseURL = api.DefaultBaseURL
		}
	}
	if config.AssetBaseURL == "" {
		config.AssetBaseURL = config.APIBaseURL
	}

	return config, nil
}

// parse resolves flags, environment and the YAML file, in that order of precedence.
// The API URL stays empty when none of them set it.
func parse(args []string, getenv func(string) string, home string) (*Config, error) {
	var fv flagValues
	fs := flag.NewFlagSet("foodctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&fv.api, "api", "", "Food API base URL (or set "+envAPIURL+")")
	fs.StringVar(&fv.assets, "assets", "", "Base URL for relative image paths (or set "+envAssetURL+")")
	fs.StringVar(&fv.db, "db", "", "Path to SQLite activity database (default: ~/.foodctl/foodctl.db)")
	fs.StringVar(&fv.configPath, "config", "", "Path to YAML config file (default: ~/.foodctl/config.yaml)")
	fs.StringVar(&fv.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&fv.logFile, "log-file", "", "Log file path, or \"stderr\" (default: ~/.foodctl/foodctl.log)")
	fs.DurationVar(&fv.timeout, "timeout", 0, "Timeout for each API request (default: 10s)")
	fs.BoolVar(&fv.demo, "demo", false, "Serve a local in-memory Food API with sample data")
	fs.BoolVar(&fv.version, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	configDir := filepath.Join(home, ".foodctl")
	configPath := fv.configPath
	if configPath == "" {
		configPath = filepath.Join(configDir, configFileName)
	}
	fc, err := loadFileConfig(configPath, fv.configPath != "")
	if err != nil {
		return nil, err
	}

	config := &Config{
		APIBaseURL:   firstNonEmpty(fv.api, getenv(envAPIURL), fc.APIURL),
		AssetBaseURL: firstNonEmpty(fv.assets, getenv(envAssetURL), fc.AssetURL),
		DBPath:       firstNonEmpty(fv.db, fc.DBPath),
		ConfigDir:    configDir,
		LogLevel:     strings.ToLower(firstNonEmpty(fv.logLevel, getenv(envLogLevel), fc.LogLevel, defaultLogLevel)),
		LogFile:      firstNonEmpty(fv.logFile, fc.LogFile),
		Timeout:      fv.timeout,
		Demo:         fv.demo,
		ShowVersion:  fv.version,
	}

	if config.DBPath == "" {
		config.DBPath = filepath.Join(configDir, "foodctl.db")
	} else {
		config.DBPath = expandHome(config.DBPath, home)
	}
	if config.LogFile == "" {
		config.LogFile = filepath.Join(configDir, "foodctl.log")
	} else if config.LogFile != "stderr" {
		config.LogFile = expandHome(config.LogFile, home)
	}

	if config.Timeout == 0 && fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q in %s: %w", fc.Timeout, configPath, err)
		}
		config.Timeout = d
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}

	config.APIBaseURL = strings.TrimRight(config.APIBaseURL, "/")
	config.AssetBaseURL = strings.TrimRight(config.AssetBaseURL, "/")
	return config, nil
}

// loadFileConfig reads the YAML config. A missing default file is not an error; a missing
// file named on the command line is.
func loadFileConfig(path string, explicit bool) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return fc, nil
		}
		return fc, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return fc, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
