package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds global settings for the BogaGuard gateway.
// All settings can be configured via environment variables or programmatically.
type Config struct {
	// === Detection Thresholds (0.0 - 1.0) ===
	// Tune these to balance security vs. usability
	BlockThreshold float64 // Score above this = high risk, default-block (default: 0.6)
	WarnThreshold  float64 // Score above this = medium risk, warn (default: 0.3)

	// === Learning ===
	PatternWeightCeiling float64 // Maximum learned pattern weight (default: 1.0)
	HistoryCap           int     // Learning history overflow trigger (default: 1000)
	HistoryKeep          int     // Records kept after truncation (default: 500)

	// === Redirect Gate ===
	DecisionWindow time.Duration // High-risk decision window before auto-block (default: 10s)
	ChainWindow    time.Duration // Max span of a rapid redirect chain (default: 2s)

	// === Trusted Domains ===
	// Suffix-matched against hostnames; a hit subtracts from the score.
	TrustedDomains []string

	// === Pattern Catalog ===
	CatalogPath string // Optional YAML overlay extending the built-in banks

	// === Persistence (all optional, gateway degrades gracefully) ===
	RedisAddr     string // Redis address for snapshot persistence ("" = disabled)
	RedisPassword string
	RedisDB       int
	SnapshotKey   string // Redis key holding the engine snapshot
	PostgresDSN   string // Postgres DSN for the learning history archive ("" = disabled)

	// === HTTP ===
	ListenAddr string // Gateway listen address (default: ":8080")
}

// DefaultTrustedDomains is the built-in allowlist, suffix-matched.
var DefaultTrustedDomains = []string{
	// Global trusted
	"google.com", "github.com", "stackoverflow.com", "wikipedia.org",
	"facebook.com", "youtube.com", "twitter.com", "linkedin.com",
	// ASEAN government/official
	"gov.sg", "gov.my", "go.th", "gov.vn", "gov.ph", "gov.id",
	"moh.gov.sg", "moh.gov.my", "doh.gov.ph",
	// ASEAN banks
	"dbs.com", "maybank.com", "bca.co.id", "bni.co.id",
	"kasikornbank.com", "scb.co.th", "vietcombank.com.vn",
	// ASEAN e-commerce
	"shopee.sg", "shopee.my", "shopee.co.th", "shopee.vn", "shopee.ph", "shopee.co.id",
	"lazada.sg", "lazada.com.my", "lazada.co.th", "lazada.vn", "lazada.com.ph", "lazada.co.id",
	"grab.com", "gojek.com", "foodpanda.com",
}

// NewDefaultConfig creates a Config with sensible defaults.
// All settings can be overridden via environment variables.
func NewDefaultConfig() *Config {
	cfg := &Config{
		// Thresholds - tune these based on your false positive tolerance
		BlockThreshold: GetEnvFloat("BOGAGUARD_BLOCK_THRESHOLD", 0.6),
		WarnThreshold:  GetEnvFloat("BOGAGUARD_WARN_THRESHOLD", 0.3),

		// Learning
		PatternWeightCeiling: GetEnvFloat("BOGAGUARD_WEIGHT_CEILING", 1.0),
		HistoryCap:           GetEnvInt("BOGAGUARD_HISTORY_CAP", 1000),
		HistoryKeep:          GetEnvInt("BOGAGUARD_HISTORY_KEEP", 500),

		// Gate
		DecisionWindow: time.Duration(GetEnvInt("BOGAGUARD_DECISION_WINDOW_MS", 10000)) * time.Millisecond,
		ChainWindow:    time.Duration(GetEnvInt("BOGAGUARD_CHAIN_WINDOW_MS", 2000)) * time.Millisecond,

		TrustedDomains: GetEnvSlice("BOGAGUARD_TRUSTED_DOMAINS", DefaultTrustedDomains),

		CatalogPath: GetEnv("BOGAGUARD_CATALOG", ""),

		// Persistence - optional collaborators
		RedisAddr:     GetEnv("BOGAGUARD_REDIS_ADDR", ""),
		RedisPassword: GetEnv("BOGAGUARD_REDIS_PASSWORD", ""),
		RedisDB:       GetEnvInt("BOGAGUARD_REDIS_DB", 0),
		SnapshotKey:   GetEnv("BOGAGUARD_SNAPSHOT_KEY", "bogaguard:snapshot"),
		PostgresDSN:   GetEnv("BOGAGUARD_POSTGRES_DSN", ""),

		ListenAddr: GetEnv("BOGAGUARD_LISTEN_ADDR", ":8080"),
	}

	return cfg
}

// NewHighSecurityConfig creates a Config for maximum protection
// (may have more false positives).
func NewHighSecurityConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.BlockThreshold = 0.45 // Lower threshold = more aggressive blocking
	cfg.WarnThreshold = 0.20
	cfg.DecisionWindow = 5 * time.Second // Shorter window before auto-block
	return cfg
}

// NewHighUsabilityConfig creates a Config that minimizes false positives.
func NewHighUsabilityConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.BlockThreshold = 0.75 // Higher threshold = fewer false positives
	cfg.WarnThreshold = 0.45
	cfg.DecisionWindow = 30 * time.Second // Give the user more time to decide
	return cfg
}

// Helper functions for environment variable parsing
// These are exported for use by other packages (e.g., pkg/engine)

// GetEnv returns the value of an environment variable or a default value.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvBool returns the boolean value of an environment variable or a default value.
func GetEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

// GetEnvFloat returns the float64 value of an environment variable or a default value.
func GetEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}

// GetEnvInt returns the integer value of an environment variable or a default value.
func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

// GetEnvSlice returns a comma-separated list from an environment variable or a default value.
func GetEnvSlice(key string, defaultValue []string) []string {
	if v := os.Getenv(key); v != "" {
		var parts []string
		for _, p := range strings.Split(v, ",") {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	var problems []string

	if c.BlockThreshold <= 0 || c.BlockThreshold > 1 {
		problems = append(problems, fmt.Sprintf("block threshold %v out of range (0,1]", c.BlockThreshold))
	}
	if c.WarnThreshold < 0 || c.WarnThreshold >= c.BlockThreshold {
		problems = append(problems, fmt.Sprintf("warn threshold %v must be in [0, block threshold)", c.WarnThreshold))
	}
	if c.PatternWeightCeiling <= 0 || c.PatternWeightCeiling > 1 {
		problems = append(problems, fmt.Sprintf("weight ceiling %v out of range (0,1]", c.PatternWeightCeiling))
	}
	if c.HistoryKeep <= 0 || c.HistoryKeep > c.HistoryCap {
		problems = append(problems, fmt.Sprintf("history keep %d must be in (0, history cap %d]", c.HistoryKeep, c.HistoryCap))
	}
	if c.DecisionWindow <= 0 {
		problems = append(problems, "decision window must be positive")
	}
	if c.ChainWindow <= 0 {
		problems = append(problems, "chain window must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// MustValidate calls Validate and fatally exits if validation fails.
// Call this at startup before starting the server.
func (c *Config) MustValidate() {
	if err := c.Validate(); err != nil {
		log.Fatalf("[STARTUP] FATAL: Configuration validation failed: %v", err)
	}
	log.Println("[STARTUP] Configuration validated successfully")
}
