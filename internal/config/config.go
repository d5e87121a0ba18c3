package config

import (
	"log"
	"os"
	"strconv"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath                 string `yaml:"db_path"`
	CatalogPath            string `yaml:"catalog_path"`
	CatalogRefreshSchedule string `yaml:"catalog_refresh_schedule"`
	VocabularyPath         string `yaml:"vocabulary_path"`

	HistoryDepth int     `yaml:"history_depth"`
	LaborRate    float64 `yaml:"labor_rate"`

	PricingProvider string `yaml:"pricing_provider"`
	PricingModel    string `yaml:"pricing_model"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
}

func LoadConfig() Config {
	var cfg Config

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.CatalogPath, "CATALOG_PATH")
	envOverride(&cfg.CatalogRefreshSchedule, "CATALOG_REFRESH_SCHEDULE")
	envOverride(&cfg.VocabularyPath, "VOCABULARY_PATH")
	envOverrideInt(&cfg.HistoryDepth, "HISTORY_DEPTH")
	envOverrideFloat(&cfg.LaborRate, "LABOR_RATE")
	envOverride(&cfg.PricingProvider, "PRICING_PROVIDER")
	envOverride(&cfg.PricingModel, "PRICING_MODEL")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")

	// Defaults
	if cfg.DBPath == "" {
		cfg.DBPath = "./inspectbot.db"
	}
	if cfg.HistoryDepth == 0 {
		cfg.HistoryDepth = 20
	}
	if cfg.LaborRate == 0 {
		cfg.LaborRate = 120
	}
	if cfg.PricingProvider == "" {
		cfg.PricingProvider = "none"
	}

	// Validate
	if cfg.HistoryDepth < 1 {
		log.Fatalf("invalid history_depth '%d': must be >= 1", cfg.HistoryDepth)
	}
	if cfg.LaborRate < 0 {
		log.Fatalf("invalid labor_rate '%f': must be >= 0", cfg.LaborRate)
	}
	switch cfg.PricingProvider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Fatalf("anthropic_api_key is required when pricing_provider=anthropic")
		}
	case "none":
	default:
		log.Fatalf("pricing_provider must be 'anthropic' or 'none', got '%s'", cfg.PricingProvider)
	}
	if cfg.CatalogRefreshSchedule != "" {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		if _, err := parser.Parse(cfg.CatalogRefreshSchedule); err != nil {
			log.Fatalf("invalid catalog_refresh_schedule '%s': %v", cfg.CatalogRefreshSchedule, err)
		}
	}

	return cfg
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}

func envOverrideFloat(field *float64, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}
