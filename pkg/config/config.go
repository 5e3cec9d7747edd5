package config

import (
	"log"
	"os"
	"sort"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App       AppConfig                 `yaml:"app"`
	Providers map[string]ProviderConfig `yaml:"providers"`
	Agent     AgentConfig               `yaml:"agent"`
	Dataset   DatasetConfig             `yaml:"dataset"`
	Store     StoreConfig               `yaml:"store"`
}

type AppConfig struct {
	Name string `yaml:"name"`
}

type ProviderConfig struct {
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url,omitempty"`
	Temperature float64 `yaml:"temperature"`
	Enabled     bool    `yaml:"enabled"`
}

type AgentConfig struct {
	MaxIterations int      `yaml:"max_iterations"`
	Verbose       bool     `yaml:"verbose"`
	OnEmptySubset string   `yaml:"on_empty_subset"`
	PromptDir     string   `yaml:"prompt_dir"`
	DeniedTools   []string `yaml:"denied_tools"`
}

type DatasetConfig struct {
	Path string `yaml:"path"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

// LoadConfig reads the optional YAML config file, then applies .env and
// environment overrides. A missing file is fine; a malformed one is
// fatal.
func LoadConfig(path string) *Config {
	// Ignore the error: a missing .env just means the environment is
	// already set.
	_ = godotenv.Load()

	cfg := defaults()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("failed to parse config file %s: %v", path, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("failed to read config file %s: %v", path, err)
	}

	cfg.applyEnv()
	cfg.normalize()
	return cfg
}

func defaults() *Config {
	return &Config{
		App: AppConfig{Name: "drishti"},
		Agent: AgentConfig{
			MaxIterations: 10,
			OnEmptySubset: "proceed",
		},
		Dataset: DatasetConfig{Path: "data/amazon.csv"},
		Store:   StoreConfig{Path: "data/runs.db"},
	}
}

func (c *Config) applyEnv() {
	if c.Providers == nil {
		c.Providers = map[string]ProviderConfig{}
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		p := c.Providers["openai"]
		p.APIKey = key
		p.Enabled = true
		if p.Model == "" {
			p.Model = "gpt-4o-mini"
		}
		c.Providers["openai"] = p
	}
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		p := c.Providers["openrouter"]
		p.APIKey = key
		p.Enabled = true
		if p.BaseURL == "" {
			p.BaseURL = "https://openrouter.ai/api/v1"
		}
		if p.Model == "" {
			p.Model = "openai/gpt-4o-mini"
		}
		c.Providers["openrouter"] = p
	}
	if path := os.Getenv("DRISHTI_DATASET"); path != "" {
		c.Dataset.Path = path
	}
	if path := os.Getenv("DRISHTI_STORE"); path != "" {
		c.Store.Path = path
	}
	if raw := os.Getenv("DRISHTI_MAX_ITERATIONS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			c.Agent.MaxIterations = n
		}
	}
	if mode := os.Getenv("DRISHTI_ON_EMPTY_SUBSET"); mode != "" {
		c.Agent.OnEmptySubset = mode
	}
}

func (c *Config) normalize() {
	if c.Agent.MaxIterations <= 0 {
		c.Agent.MaxIterations = 10
	}
	if c.Agent.OnEmptySubset != "halt" {
		c.Agent.OnEmptySubset = "proceed"
	}
	if c.Dataset.Path == "" {
		c.Dataset.Path = "data/amazon.csv"
	}
	if c.Store.Path == "" {
		c.Store.Path = "data/runs.db"
	}
}

// GetDefaultProvider returns the first enabled provider in sorted name
// order, so the choice is stable across runs.
func (c *Config) GetDefaultProvider() (string, ProviderConfig) {
	names := make([]string, 0, len(c.Providers))
	for name := range c.Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if p := c.Providers[name]; p.Enabled && p.APIKey != "" {
			return name, p
		}
	}
	return "", ProviderConfig{}
}
