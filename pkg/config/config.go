package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// StatusServerConfig represents the transaction status service configuration
type StatusServerConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	LogQuery   LogQueryConfig   `yaml:"log_query"`
	Orderbook  OrderbookConfig  `yaml:"orderbook"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Cache      CacheConfig      `yaml:"cache"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	CORS       CORSConfig       `yaml:"cors"`
	LogSources LogSourcesConfig `yaml:"log_sources"`
	Status     StatusConfig     `yaml:"status"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8000" validate:"gt=0,lt=65536"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"5m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" default:"4m"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host         string `yaml:"host" default:"localhost" validate:"required"`
	Port         int    `yaml:"port" default:"5432"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database" validate:"required"`
	SSLMode      string `yaml:"ssl_mode" default:"disable" validate:"oneof=disable require verify-ca verify-full"`
	MaxOpenConns int    `yaml:"max_open_conns" default:"10"`
	MaxIdleConns int    `yaml:"max_idle_conns" default:"5"`
}

// LogQueryConfig contains settings for the log aggregation (Loki) client and fetcher
type LogQueryConfig struct {
	BaseURL     string        `yaml:"base_url" validate:"required,url"`
	Token       string        `yaml:"token" validate:"required"`
	Label       string        `yaml:"label" default:"container"`
	Timeout     time.Duration `yaml:"timeout" default:"30s"`
	PageLimit   int           `yaml:"page_limit" default:"5000" validate:"gt=0"`
	PageDelay   time.Duration `yaml:"page_delay" default:"200ms"`
	Window      time.Duration `yaml:"window" default:"48h" validate:"gt=0"`
	MaxLookback time.Duration `yaml:"max_lookback" default:"721h" validate:"gt=0"`
	MaxRetries  uint64        `yaml:"max_retries" default:"3"`
}

// OrderbookConfig contains settings for the matched-order API
type OrderbookConfig struct {
	// MatchedOrderURL must contain a single {create_id} placeholder.
	MatchedOrderURL string        `yaml:"matched_order_url" default:"https://orderbook-v2-staging.hashira.io/id/{create_id}/matched" validate:"required,contains={create_id}"`
	Timeout         time.Duration `yaml:"timeout" default:"10s"`
}

// SummarizerConfig contains settings for the LLM narrative summarizer
type SummarizerConfig struct {
	Enabled     *bool         `yaml:"enabled" default:"true"`
	BaseURL     string        `yaml:"base_url" default:"https://generativelanguage.googleapis.com"`
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model" default:"gemini-1.5-flash"`
	Temperature float64       `yaml:"temperature" default:"0"`
	Timeout     time.Duration `yaml:"timeout" default:"60s"`
	MaxLogLines int           `yaml:"max_log_lines" default:"2000"`
}

// CacheConfig contains settings for the narration cache
type CacheConfig struct {
	Enabled       bool          `yaml:"enabled"`
	RedisAddr     string        `yaml:"redis_addr" default:"localhost:6379"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	TTL           time.Duration `yaml:"ttl" default:"24h"`
	LocalSize     int           `yaml:"local_size" default:"1000"`
}

// RateLimitConfig contains settings for the per-client request limiter
type RateLimitConfig struct {
	RequestsPerSecond float64       `yaml:"requests_per_second" default:"2"`
	Burst             int           `yaml:"burst" default:"5"`
	TTL               time.Duration `yaml:"ttl" default:"1h"`
}

// CORSConfig contains allowed origins for browser clients
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LogSourceProfile describes how a single log source reports swap lifecycle events
type LogSourceProfile struct {
	Kind           string `yaml:"kind" validate:"omitempty,oneof=relay watcher relayer generic"`
	InitiateMarker string `yaml:"initiate_marker"`
	RedeemMarker   string `yaml:"redeem_marker"`
	RefundMarker   string `yaml:"refund_marker"`
	Deduplicate    bool   `yaml:"deduplicate"`
}

// LogSourcesConfig maps chains to the log sources that describe them
type LogSourcesConfig struct {
	Generic      string                      `yaml:"generic" default:"/staging-cobi-v2" validate:"required"`
	ByChain      map[string][]string         `yaml:"by_chain"`
	Profiles     map[string]LogSourceProfile `yaml:"profiles" validate:"dive"`
	OrderOrigin  string                      `yaml:"order_origin" default:"/staging-evm-relay"`
	OriginChains []string                    `yaml:"origin_chains"`
}

// StatusConfig contains orchestration settings
type StatusConfig struct {
	// SourceWindow bounds chain-specific log queries to [created_at, created_at+SourceWindow].
	SourceWindow time.Duration `yaml:"source_window" default:"48h"`
	// Concurrency caps how many chain-specific sources are processed at once; 1 runs them in order.
	Concurrency int `yaml:"concurrency" default:"4" validate:"gte=1"`
}

// IsEnabled reports whether narrative summaries should call the LLM.
func (c *SummarizerConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// SetDefaults fills in chain routing that yaml cannot express through struct tags.
func (c *LogSourcesConfig) SetDefaults() {
	if c.ByChain == nil {
		c.ByChain = map[string][]string{
			"arbitrum_sepolia": {"/staging-evm-relay"},
			"ethereum_sepolia": {"/staging-evm-relay"},
			"citrea_testnet":   {"/staging-evm-relay"},
			"bitcoin_testnet":  {"/stage-bit-ponder"},
			"starknet_sepolia": {"/staging-starknet-relayer", "/staging-starknet-watcher"},
			"solana_testnet":   {"/staging-solana-watcher", "/staging-solana-relayer"},
		}
	}
	if c.Profiles == nil {
		c.Profiles = map[string]LogSourceProfile{
			"/staging-evm-relay": {
				Kind:           "relay",
				InitiateMarker: "order initiated",
				RedeemMarker:   "order redeemed",
			},
			"/stage-bit-ponder": {
				Kind:           "watcher",
				InitiateMarker: "HTLC initiated",
				RedeemMarker:   "Redeemed",
				Deduplicate:    true,
			},
			"/staging-starknet-watcher": {
				Kind:           "watcher",
				InitiateMarker: "HTLC initiated",
				RedeemMarker:   "Redeemed",
			},
			"/staging-solana-watcher": {
				Kind:           "watcher",
				InitiateMarker: "HTLC initiated",
				RedeemMarker:   "Redeemed",
			},
			"/staging-starknet-relayer": {Kind: "relayer"},
			"/staging-solana-relayer":   {Kind: "relayer"},
			"/staging-cobi-v2": {
				Kind:        "generic",
				Deduplicate: true,
			},
		}
	}
	if c.OriginChains == nil {
		c.OriginChains = []string{"arbitrum_sepolia"}
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadStatusServer loads the status server configuration from a YAML file.
// ${VAR} references are expanded from the environment before parsing.
func LoadStatusServer(configPath string) (*StatusServerConfig, error) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseStatusServer(raw)
}

// ParseStatusServer parses, defaults and validates raw YAML configuration.
func ParseStatusServer(raw []byte) (*StatusServerConfig, error) {
	var cfg StatusServerConfig
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	if err := validateStatusServer(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func validateStatusServer(cfg *StatusServerConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	if cfg.Summarizer.IsEnabled() && cfg.Summarizer.APIKey == "" {
		return errors.New("summarizer.api_key is required when the summarizer is enabled")
	}
	if cfg.LogQuery.Window > cfg.LogQuery.MaxLookback {
		return fmt.Errorf("log_query.window (%s) exceeds log_query.max_lookback (%s)",
			cfg.LogQuery.Window, cfg.LogQuery.MaxLookback)
	}
	for chain, sources := range cfg.LogSources.ByChain {
		if len(sources) == 0 {
			return fmt.Errorf("log_sources.by_chain.%s has no sources", chain)
		}
		for _, src := range sources {
			if src == "" {
				return fmt.Errorf("log_sources.by_chain.%s contains an empty source", chain)
			}
		}
	}
	return nil
}

// GetConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) GetConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
