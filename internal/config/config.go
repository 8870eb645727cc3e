package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseURL         string        `yaml:"base_url"`
	HTTPTimeout     time.Duration `yaml:"http_timeout"`
	SessionFile     string        `yaml:"session_file"`
	AuditJournal    string        `yaml:"audit_journal"`
	AuditFilter     string        `yaml:"audit_filter"`
	KafkaBrokers    []string      `yaml:"kafka_brokers"`
	KafkaTopic      string        `yaml:"kafka_topic"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// (APP_CONFIG), and environment variables, in that order of precedence.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		BaseURL:         "http://localhost:8000/api",
		HTTPTimeout:     15 * time.Second,
		SessionFile:     defaultSessionFile(),
		AuditJournal:    "storefront-audit.jsonl",
		KafkaTopic:      "storefront-audit",
		RefreshInterval: 30 * time.Second,
	}

	if path := os.Getenv("APP_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.BaseURL = getEnv("APP_BASE_URL", cfg.BaseURL)
	cfg.SessionFile = getEnv("APP_SESSION_FILE", cfg.SessionFile)
	cfg.AuditJournal = getEnv("APP_AUDIT_JOURNAL", cfg.AuditJournal)
	cfg.AuditFilter = getEnv("APP_AUDIT_FILTER", cfg.AuditFilter)
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", cfg.KafkaTopic)
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	var err error
	if cfg.HTTPTimeout, err = getDuration("APP_HTTP_TIMEOUT", cfg.HTTPTimeout); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getDuration("APP_REFRESH_INTERVAL", cfg.RefreshInterval); err != nil {
		return nil, err
	}
	return cfg, nil
}

// KafkaEnabled reports whether the Kafka audit sink should be wired.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront-session.json"
	}
	return filepath.Join(home, ".storefront", "session.json")
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
