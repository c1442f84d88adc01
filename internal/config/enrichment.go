package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnrichmentConfig tunes the barcode lookup client.
type EnrichmentConfig struct {
	MaxTagSuggestions int    `mapstructure:"maxTagSuggestions"`
	TimeoutSeconds    int    `mapstructure:"timeoutSeconds"`
	BaseURL           string `mapstructure:"baseUrl"`
}

func DefaultEnrichmentConfig() EnrichmentConfig {
	return EnrichmentConfig{
		MaxTagSuggestions: 12,
		TimeoutSeconds:    10,
	}
}

// EnrichmentConfigHolder serves the current enrichment settings and follows
// file changes without a restart.
type EnrichmentConfigHolder struct {
	current atomic.Value // holds EnrichmentConfig
}

func NewEnrichmentConfigHolder() (*EnrichmentConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("pantry")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/pantry")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PANTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultEnrichmentConfig()
	v.SetDefault("enrichment.maxTagSuggestions", defaults.MaxTagSuggestions)
	v.SetDefault("enrichment.timeoutSeconds", defaults.TimeoutSeconds)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg EnrichmentConfig
	if err := v.UnmarshalKey("enrichment", &cfg); err != nil {
		return nil, err
	}
	if err := validateEnrichmentConfig(cfg); err != nil {
		return nil, err
	}

	holder := &EnrichmentConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated EnrichmentConfig
		if err := v.UnmarshalKey("enrichment", &updated); err != nil {
			log.Printf("[enrichment-config] reload failed: %v", err)
			return
		}
		if err := validateEnrichmentConfig(updated); err != nil {
			log.Printf("[enrichment-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[enrichment-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *EnrichmentConfigHolder) Get() EnrichmentConfig {
	return h.current.Load().(EnrichmentConfig)
}

// Store replaces the current settings. Intended for tests.
func (h *EnrichmentConfigHolder) Store(cfg EnrichmentConfig) {
	h.current.Store(cfg)
}

func validateEnrichmentConfig(cfg EnrichmentConfig) error {
	if cfg.MaxTagSuggestions <= 0 {
		return errors.New("enrichment.maxTagSuggestions must be positive")
	}
	if cfg.TimeoutSeconds <= 0 {
		return errors.New("enrichment.timeoutSeconds must be positive")
	}
	return nil
}
