package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode      Mode   `yaml:"mode"       env:"MODE"       env-default:"offline"`
	HTTPAddr  string `yaml:"http_addr"  env:"HTTP_ADDR"  env-default:":8080"`
	PublicURL string `yaml:"public_url" env:"PUBLIC_URL"`

	DBDriver string `yaml:"db_driver" env:"DB_DRIVER" env-default:"sqlite"`
	DBDSN    string `yaml:"db_dsn"    env:"DB_DSN"`

	EnableLocalAuth bool   `yaml:"enable_local_auth" env:"ENABLE_LOCAL_AUTH" env-default:"true"`
	AuthHMACSecret  string `yaml:"auth_hmac_secret"  env:"AUTH_HMAC_SECRET"  env-default:"supersecret-dev-key"`

	AdminUser     string `yaml:"admin_user"      env:"ADMIN_USER"      env-default:"admin"`
	AdminPassHash string `yaml:"admin_pass_hash" env:"ADMIN_PASS_HASH" env-default:"$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"` // bcrypt

	CORSOriginsOnline  []string `yaml:"cors_origins_online"  env:"CORS_ORIGINS_ONLINE"  env-default:"https://speak.mindengage.ai"`
	CORSOriginsOffline []string `yaml:"cors_origins_offline" env:"CORS_ORIGINS_OFFLINE" env-default:"http://localhost:3000,http://localhost:3010"`

	// Minimum similarity for half credit on a misspelled single word.
	SpellingThreshold float64 `yaml:"spelling_threshold" env:"SPELLING_THRESHOLD" env-default:"0.75"`
}

// Load reads CONFIG_PATH (YAML) when set, then applies env overrides and
// defaults.
func Load() (Config, error) {
	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}
	cfg.CORSOriginsOnline = trimAll(cfg.CORSOriginsOnline)
	cfg.CORSOriginsOffline = trimAll(cfg.CORSOriginsOffline)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.Mode {
	case ModeOffline, ModeOnline:
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("unsupported db driver %q", c.DBDriver))
	}
	if c.PublicURL != "" {
		if u, err := url.Parse(c.PublicURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("public url %q must be absolute", c.PublicURL))
		}
	} else if c.Mode == ModeOnline {
		errs = append(errs, errors.New("PUBLIC_URL is required in online mode"))
	}
	if c.AuthHMACSecret == "" {
		errs = append(errs, errors.New("AUTH_HMAC_SECRET is required"))
	}
	if c.SpellingThreshold < 0 || c.SpellingThreshold > 1 {
		errs = append(errs, fmt.Errorf("spelling threshold %v outside [0,1]", c.SpellingThreshold))
	}
	return errors.Join(errs...)
}

// CORSOrigins picks the origin list for the current mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
