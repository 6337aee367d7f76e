package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the UMKM AI backend configuration.
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Embedding     EmbeddingConfig     `yaml:"embedding"`
	Gemini        GeminiConfig        `yaml:"gemini"`
	Cache         CacheConfig         `yaml:"cache"`
	Agents        AgentsConfig        `yaml:"agents"`
	Proactive     ProactiveConfig     `yaml:"proactive"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// ElasticsearchConfig holds search cluster connection settings.
type ElasticsearchConfig struct {
	Addresses []string `yaml:"addresses"`
	APIKey    string   `yaml:"api_key"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
}

// EmbeddingConfig holds the text and image embedding provider settings.
// The text provider is any OpenAI-compatible /v1/embeddings endpoint serving
// the multilingual sentence model; the image provider is the hosted
// multimodal embedding endpoint (optional).
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`

	ImageEndpoint   string `yaml:"image_endpoint"`
	ImageDimensions int    `yaml:"image_dimensions"`
}

// GeminiConfig holds generative model settings.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// CacheConfig holds the optional Redis embedding cache settings.
type CacheConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	TTLHours int      `yaml:"ttl_hours"`
}

// RetrievalConfig holds per-domain retrieval parameters.
type RetrievalConfig struct {
	Index         string `yaml:"index"`
	TextField     string `yaml:"text_field"`
	K             int    `yaml:"k"`
	NumCandidates int    `yaml:"num_candidates"`
}

// MarketingConfig extends retrieval settings with the answer language policy.
// The language directive is configurable ("id" or "en") rather than baked
// into the prompt text.
type MarketingConfig struct {
	RetrievalConfig `yaml:",inline"`
	AnswerLanguage  string `yaml:"answer_language"`
}

// BrandConfig holds the visual knowledge base lookup settings.
type BrandConfig struct {
	VisualIndex   string `yaml:"visual_index"`
	K             int    `yaml:"k"`
	NumCandidates int    `yaml:"num_candidates"`
}

// AgentsConfig groups per-agent settings.
type AgentsConfig struct {
	Legal     RetrievalConfig `yaml:"legal"`
	Marketing MarketingConfig `yaml:"marketing"`
	Brand     BrandConfig     `yaml:"brand"`
}

// ProactiveConfig holds the opportunity scan settings.
type ProactiveConfig struct {
	FeedURL         string   `yaml:"feed_url"`
	FeedSource      string   `yaml:"feed_source"`
	Keywords        []string `yaml:"keywords"`
	FetchTimeoutSec int      `yaml:"fetch_timeout_sec"`

	// Push notification dispatch (optional). TargetARN empty disables dispatch.
	AWSRegion string `yaml:"aws_region"`
	TargetARN string `yaml:"target_arn"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 30
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 120
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "paraphrase-multilingual-MiniLM-L12-v2"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 384
	}
	if c.Embedding.ImageDimensions <= 0 {
		c.Embedding.ImageDimensions = 1408
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-pro"
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 24
	}
	if c.Agents.Legal.Index == "" {
		c.Agents.Legal.Index = "umkm_legal_docs"
	}
	if c.Agents.Legal.TextField == "" {
		c.Agents.Legal.TextField = "text"
	}
	if c.Agents.Legal.K <= 0 {
		c.Agents.Legal.K = 5
	}
	if c.Agents.Legal.NumCandidates <= 0 {
		c.Agents.Legal.NumCandidates = 50
	}
	if c.Agents.Marketing.Index == "" {
		c.Agents.Marketing.Index = "umkm_marketing_kb"
	}
	if c.Agents.Marketing.TextField == "" {
		c.Agents.Marketing.TextField = "content"
	}
	if c.Agents.Marketing.K <= 0 {
		c.Agents.Marketing.K = 3
	}
	if c.Agents.Marketing.NumCandidates <= 0 {
		c.Agents.Marketing.NumCandidates = 20
	}
	if c.Agents.Marketing.AnswerLanguage == "" {
		c.Agents.Marketing.AnswerLanguage = "id"
	}
	if c.Agents.Brand.VisualIndex == "" {
		c.Agents.Brand.VisualIndex = "umkm_visual_kb"
	}
	if c.Agents.Brand.K <= 0 {
		c.Agents.Brand.K = 3
	}
	if c.Agents.Brand.NumCandidates <= 0 {
		c.Agents.Brand.NumCandidates = 50
	}
	if c.Proactive.FeedURL == "" {
		c.Proactive.FeedURL = "https://www.antaranews.com/rss/ekonomi-bisnis.xml"
	}
	if c.Proactive.FeedSource == "" {
		c.Proactive.FeedSource = "Antara News Bisnis"
	}
	if len(c.Proactive.Keywords) == 0 {
		c.Proactive.Keywords = []string{
			"umkm", "peluang", "ekspor", "bantuan",
			"pameran", "bazar", "subsidi", "kredit usaha",
		}
	}
	if c.Proactive.FetchTimeoutSec <= 0 {
		c.Proactive.FetchTimeoutSec = 15
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Elasticsearch.Addresses) == 0 {
		return fmt.Errorf("elasticsearch.addresses is required")
	}
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini.api_key is required")
	}
	switch c.Agents.Marketing.AnswerLanguage {
	case "id", "en":
		// ok
	default:
		return fmt.Errorf(
			"agents.marketing.answer_language must be \"id\" or \"en\", got %q",
			c.Agents.Marketing.AnswerLanguage,
		)
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache is enabled")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
