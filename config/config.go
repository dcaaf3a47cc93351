package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/caknak/email_check_api/pkg/breach"
	"github.com/caknak/email_check_api/pkg/handoff"
)

// productionContext is the deploy CONTEXT value of production builds.
const productionContext = "production"

// Config holds everything the service reads from its environment.
type Config struct {
	Port            string
	GinMode         string
	DeployContext   string
	APIKey          string
	UpstreamBaseURL string
	UserAgent       string
	UpstreamTimeout time.Duration
	SimulationDelay time.Duration
	HandoffTTL      time.Duration
	HandoffMax      int
}

// Load reads the configuration from the process environment. A missing API
// key is not an error here; lookups report it per request.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from v, applying defaults for unset keys.
func FromViper(v *viper.Viper) (Config, error) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("HIBP_BASE_URL", breach.DefaultBaseURL)
	v.SetDefault("HIBP_USER_AGENT", breach.DefaultUserAgent)
	v.SetDefault("HIBP_TIMEOUT", 10*time.Second)
	v.SetDefault("SIMULATION_DELAY", breach.DefaultSimulationDelay)
	v.SetDefault("HANDOFF_TTL", handoff.DefaultTTL)
	v.SetDefault("HANDOFF_MAX_ENTRIES", handoff.DefaultMaxEntries)

	cfg := Config{
		Port:            strings.TrimSpace(v.GetString("PORT")),
		GinMode:         strings.TrimSpace(v.GetString("GIN_MODE")),
		DeployContext:   strings.TrimSpace(v.GetString("CONTEXT")),
		UpstreamBaseURL: strings.TrimSpace(v.GetString("HIBP_BASE_URL")),
		UserAgent:       v.GetString("HIBP_USER_AGENT"),
		UpstreamTimeout: v.GetDuration("HIBP_TIMEOUT"),
		SimulationDelay: v.GetDuration("SIMULATION_DELAY"),
		HandoffTTL:      v.GetDuration("HANDOFF_TTL"),
		HandoffMax:      v.GetInt("HANDOFF_MAX_ENTRIES"),
	}
	cfg.APIKey = ResolveAPIKey(cfg.DeployContext, v.GetString("HIBP_API_KEY"), v.GetString("NETLIFY_HIBP_API_KEY"))

	if cfg.UpstreamTimeout <= 0 {
		cfg.UpstreamTimeout = 10 * time.Second
	}
	if cfg.SimulationDelay < 0 {
		cfg.SimulationDelay = 0
	}
	if cfg.HandoffTTL <= 0 {
		cfg.HandoffTTL = handoff.DefaultTTL
	}
	if cfg.HandoffMax <= 0 {
		cfg.HandoffMax = handoff.DefaultMaxEntries
	}

	u, err := url.Parse(cfg.UpstreamBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return cfg, fmt.Errorf("invalid HIBP_BASE_URL %q", cfg.UpstreamBaseURL)
	}
	return cfg, nil
}

// ResolveAPIKey picks the registry key for a deploy context. Production
// only trusts the generic key; every other context prefers the
// platform-specific override when it is set.
func ResolveAPIKey(deployContext, genericKey, platformKey string) string {
	genericKey = strings.TrimSpace(genericKey)
	platformKey = strings.TrimSpace(platformKey)
	if deployContext == productionContext {
		return genericKey
	}
	if platformKey != "" {
		return platformKey
	}
	return genericKey
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
