package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies KALSHME_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
//
// A missing config file is not an error: defaults plus environment overrides
// are enough to run against the public exchange API.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return nil, err
			}
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known KALSHME_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e. not
// empty). This lets operators inject secrets at deploy time without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Kalshi ──
	setStr(&cfg.Kalshi.ApiKeyID, "KALSHME_KALSHI_API_KEY_ID")
	setStr(&cfg.Kalshi.RsaPrivateKeyPath, "KALSHME_KALSHI_RSA_PRIVATE_KEY_PATH")
	setStr(&cfg.Kalshi.BaseURL, "KALSHME_KALSHI_BASE_URL")

	// ── Cache ──
	setDuration(&cfg.Cache.LeagueTTL, "KALSHME_CACHE_LEAGUE_TTL")

	// ── Redis ──
	setBool(&cfg.Redis.Enabled, "KALSHME_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "KALSHME_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "KALSHME_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "KALSHME_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "KALSHME_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "KALSHME_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "KALSHME_REDIS_TLS_ENABLED")

	// ── S3 ──
	setBool(&cfg.S3.Enabled, "KALSHME_S3_ENABLED")
	setStr(&cfg.S3.Endpoint, "KALSHME_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "KALSHME_S3_REGION")
	setStr(&cfg.S3.Bucket, "KALSHME_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "KALSHME_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "KALSHME_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "KALSHME_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "KALSHME_S3_FORCE_PATH_STYLE")
	setStr(&cfg.S3.ImagesPrefix, "KALSHME_S3_IMAGES_PREFIX")
	setStr(&cfg.S3.MusicPrefix, "KALSHME_S3_MUSIC_PREFIX")

	// ── Server ──
	setInt(&cfg.Server.Port, "KALSHME_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "KALSHME_SERVER_CORS_ORIGINS")

	// ── Top-level ──
	setStr(&cfg.LogLevel, "KALSHME_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
