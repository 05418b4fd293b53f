// Package config defines the application configuration and its loader.
// Configuration merges three layers: built-in defaults, an optional
// aiclone.yaml file, and AIC_-prefixed environment variables. Secrets
// are referenced as ${VAR} in the file and expanded at load time.
package config

// Config represents the full application configuration.
type Config struct {
	Server        ServerConfig              `yaml:"server"`
	Provider      string                    `yaml:"provider"`
	Providers     map[string]ProviderConfig `yaml:"providers"`
	HTTP          HTTPConfig                `yaml:"http"`
	Knowledge     KnowledgeConfig           `yaml:"knowledge"`
	Store         StoreConfig               `yaml:"store"`
	Counter       CounterConfig             `yaml:"counter"`
	RateLimit     RateLimitConfig           `yaml:"rateLimit"`
	Observability ObservabilityConfig       `yaml:"observability"`
}

// ServerConfig holds the HTTP surface settings.
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	AllowedOrigins  []string `yaml:"allowedOrigins"`
	RequestTimeout  string   `yaml:"requestTimeout"`
	ShutdownTimeout string   `yaml:"shutdownTimeout"`
}

// ProviderConfig configures a single model provider.
type ProviderConfig struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"apiKey"`

	// HTTP overrides (optional, use global HTTP config if not set)
	Timeout        *string `yaml:"timeout,omitempty"`
	MaxRetries     *int    `yaml:"maxRetries,omitempty"`
	InitialBackoff *string `yaml:"initialBackoff,omitempty"`
	MaxBackoff     *string `yaml:"maxBackoff,omitempty"`
}

// HTTPConfig holds global outbound HTTP client settings.
type HTTPConfig struct {
	Timeout           string  `yaml:"timeout"`
	MaxRetries        int     `yaml:"maxRetries"`
	InitialBackoff    string  `yaml:"initialBackoff"`
	MaxBackoff        string  `yaml:"maxBackoff"`
	BackoffMultiplier float64 `yaml:"backoffMultiplier"`
}

// KnowledgeConfig locates the persona knowledge base document.
type KnowledgeConfig struct {
	Path string `yaml:"path"`
}

// StoreConfig configures the recruiter-contact persistence layer.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// CounterConfig configures the conversation counter.
type CounterConfig struct {
	Enabled  bool   `yaml:"enabled"`
	RedisURL string `yaml:"redisUrl"`
	Key      string `yaml:"key"`
}

// RateLimitConfig configures the per-client fixed-window limiter.
type RateLimitConfig struct {
	Requests int    `yaml:"requests"`
	Window   string `yaml:"window"`
}

// ObservabilityConfig configures logging and metrics.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Level         string `yaml:"level"`         // debug, info, warning, error
	Format        string `yaml:"format"`        // json, human, auto
	RedactAPIKeys bool   `yaml:"redactAPIKeys"` // Redact API keys in logs
}

// MetricsConfig configures in-memory call metrics.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ActiveProvider resolves the configured provider entry. Falls back to
// the static provider when the named one is missing or disabled.
func (c Config) ActiveProvider() (string, ProviderConfig) {
	name := c.Provider
	if name == "" {
		name = "anthropic"
	}
	if p, ok := c.Providers[name]; ok && p.Enabled {
		return name, p
	}
	if p, ok := c.Providers["static"]; ok {
		return "static", p
	}
	return "static", ProviderConfig{Enabled: true}
}

// Merge combines multiple configuration instances, prioritising the latter ones.
func Merge(configs ...Config) Config {
	result := Config{}
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}

func merge(base, overlay Config) Config {
	result := base

	if overlay.Provider != "" {
		result.Provider = overlay.Provider
	}
	result.Server = chooseServer(base.Server, overlay.Server)
	result.HTTP = chooseHTTP(base.HTTP, overlay.HTTP)
	result.Knowledge = chooseKnowledge(base.Knowledge, overlay.Knowledge)
	result.Store = chooseStore(base.Store, overlay.Store)
	result.Counter = chooseCounter(base.Counter, overlay.Counter)
	result.RateLimit = chooseRateLimit(base.RateLimit, overlay.RateLimit)
	result.Observability = chooseObservability(base.Observability, overlay.Observability)
	result.Providers = mergeProviders(base.Providers, overlay.Providers)

	return result
}

func mergeProviders(base, overlay map[string]ProviderConfig) map[string]ProviderConfig {
	if len(base) == 0 && len(overlay) == 0 {
		return nil
	}
	result := make(map[string]ProviderConfig, len(base)+len(overlay))
	for key, value := range base {
		result[key] = value
	}
	for key, value := range overlay {
		result[key] = value
	}
	return result
}

func chooseServer(base, overlay ServerConfig) ServerConfig {
	if overlay.Addr != "" || len(overlay.AllowedOrigins) > 0 || overlay.RequestTimeout != "" || overlay.ShutdownTimeout != "" {
		return overlay
	}
	return base
}

func chooseHTTP(base, overlay HTTPConfig) HTTPConfig {
	if overlay.Timeout != "" || overlay.MaxRetries != 0 || overlay.InitialBackoff != "" || overlay.MaxBackoff != "" || overlay.BackoffMultiplier != 0 {
		return overlay
	}
	return base
}

func chooseKnowledge(base, overlay KnowledgeConfig) KnowledgeConfig {
	if overlay.Path != "" {
		return overlay
	}
	return base
}

func chooseStore(base, overlay StoreConfig) StoreConfig {
	if overlay.Enabled || overlay.Path != "" {
		return overlay
	}
	return base
}

func chooseCounter(base, overlay CounterConfig) CounterConfig {
	if overlay.Enabled || overlay.RedisURL != "" || overlay.Key != "" {
		return overlay
	}
	return base
}

func chooseRateLimit(base, overlay RateLimitConfig) RateLimitConfig {
	if overlay.Requests != 0 || overlay.Window != "" {
		return overlay
	}
	return base
}

func chooseObservability(base, overlay ObservabilityConfig) ObservabilityConfig {
	result := base

	if overlay.Logging.Enabled || overlay.Logging.Level != "" || overlay.Logging.Format != "" {
		result.Logging = overlay.Logging
	}
	if overlay.Metrics.Enabled {
		result.Metrics = overlay.Metrics
	}

	return result
}
