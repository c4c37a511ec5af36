// Package config resolves CLI settings from defaults, a TOML file, a .env file and the environment
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/KirkDiggler/calamity-catalog/internal/errors"
	"github.com/KirkDiggler/calamity-catalog/internal/pkg/homedir"
)

// SessionBackend selects where the credential is stored
type SessionBackend string

// Session backends
const (
	SessionFile   SessionBackend = "file"
	SessionMemory SessionBackend = "memory"
	SessionRedis  SessionBackend = "redis"
)

// Defaults
const (
	DefaultPath        = "~/.config/calamity/config.toml"
	DefaultEnvFile     = ".env"
	DefaultAPIURL      = "http://localhost:8080"
	DefaultTimeout     = 10 * time.Second
	DefaultRetryLimit  = 3
	DefaultRetryDelay  = time.Second
	DefaultSessionPath = "~/.config/calamity/session.toml"
	DefaultRedisAddr   = "localhost:6379"
)

// Environment keys
const (
	EnvAPIURL         = "CATALOG_API_URL"
	EnvDebug          = "CATALOG_DEBUG"
	EnvTimeout        = "CATALOG_TIMEOUT"
	EnvRetryLimit     = "CATALOG_RETRY_LIMIT"
	EnvRetryDelay     = "CATALOG_RETRY_DELAY"
	EnvSchema         = "CATALOG_SCHEMA"
	EnvSessionBackend = "CATALOG_SESSION_BACKEND"
	EnvSessionPath    = "CATALOG_SESSION_PATH"
	EnvRedisAddr      = "CATALOG_REDIS_ADDR"
	EnvRedisPassword  = "CATALOG_REDIS_PASSWORD"
	EnvRedisDB        = "CATALOG_REDIS_DB"
)

// Config is the resolved CLI configuration
type Config struct {
	APIURL     string
	Debug      bool
	Timeout    time.Duration
	RetryLimit int
	RetryDelay time.Duration
	// Schema pins the payload layout; empty auto-detects
	Schema string

	SessionBackend SessionBackend
	SessionPath    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		Timeout:        DefaultTimeout,
		RetryLimit:     DefaultRetryLimit,
		RetryDelay:     DefaultRetryDelay,
		SessionBackend: SessionFile,
		SessionPath:    DefaultSessionPath,
		RedisAddr:      DefaultRedisAddr,
	}
}

// Validate checks the resolved values
func (c Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateURL("APIURL", c.APIURL, vb)
	if c.Timeout <= 0 {
		vb.Fieldf("Timeout", "must be positive, got %s", c.Timeout)
	}
	errors.ValidateNonNegative("RetryLimit", c.RetryLimit, vb)
	if c.RetryDelay < 0 {
		vb.Fieldf("RetryDelay", "must not be negative, got %s", c.RetryDelay)
	}
	errors.ValidateEnum("SessionBackend", string(c.SessionBackend),
		[]string{string(SessionFile), string(SessionMemory), string(SessionRedis)}, vb)
	if c.SessionBackend == SessionFile {
		errors.ValidateRequired("SessionPath", c.SessionPath, vb)
	}
	if c.SessionBackend == SessionRedis {
		errors.ValidateRequired("RedisAddr", c.RedisAddr, vb)
	}
	errors.ValidateNonNegative("RedisDB", c.RedisDB, vb)
	return vb.Build()
}

// LoadOptions locates the sources Load reads
type LoadOptions struct {
	// Path is the TOML file; empty means DefaultPath, which may be absent
	Path string
	// EnvFile is the dotenv file; empty means DefaultEnvFile, which may be absent
	EnvFile string
	// LookupEnv reads the process environment; nil means os.LookupEnv
	LookupEnv func(key string) (string, bool)
}

// Load resolves defaults, then the TOML file, then the .env file, then the environment.
// A variable set in the environment wins over the same key in the .env file.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	if err := loadFile(&cfg, opts.Path); err != nil {
		return Config{}, err
	}

	dotenv, err := readEnvFile(opts.EnvFile)
	if err != nil {
		return Config{}, err
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	env := func(key string) (string, bool) {
		if value, ok := lookup(key); ok {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	}

	if err := applyEnv(&cfg, env); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// fileConfig is the TOML layout; absent keys keep the earlier value
type fileConfig struct {
	APIURL     *string `toml:"api_url"`
	Debug      *bool   `toml:"debug"`
	Timeout    *string `toml:"timeout"`
	RetryLimit *int    `toml:"retry_limit"`
	RetryDelay *string `toml:"retry_delay"`
	Schema     *string `toml:"schema"`

	Session struct {
		Backend       *string `toml:"backend"`
		Path          *string `toml:"path"`
		RedisAddr     *string `toml:"redis_addr"`
		RedisPassword *string `toml:"redis_password"`
		RedisDB       *int    `toml:"redis_db"`
	} `toml:"session"`
}

func loadFile(cfg *Config, path string) error {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath
	}

	resolved, err := homedir.Expand(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "resolve config path")
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return errors.Wrapf(err, "read config %s", resolved)
	}

	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse config "+resolved)
	}

	if raw.APIURL != nil {
		cfg.APIURL = strings.TrimSpace(*raw.APIURL)
	}
	if raw.Debug != nil {
		cfg.Debug = *raw.Debug
	}
	if raw.Timeout != nil {
		if cfg.Timeout, err = parseDuration("timeout", *raw.Timeout); err != nil {
			return err
		}
	}
	if raw.RetryLimit != nil {
		cfg.RetryLimit = *raw.RetryLimit
	}
	if raw.RetryDelay != nil {
		if cfg.RetryDelay, err = parseDuration("retry_delay", *raw.RetryDelay); err != nil {
			return err
		}
	}
	if raw.Schema != nil {
		cfg.Schema = strings.TrimSpace(*raw.Schema)
	}
	if raw.Session.Backend != nil {
		cfg.SessionBackend = SessionBackend(strings.ToLower(strings.TrimSpace(*raw.Session.Backend)))
	}
	if raw.Session.Path != nil {
		cfg.SessionPath = strings.TrimSpace(*raw.Session.Path)
	}
	if raw.Session.RedisAddr != nil {
		cfg.RedisAddr = strings.TrimSpace(*raw.Session.RedisAddr)
	}
	if raw.Session.RedisPassword != nil {
		cfg.RedisPassword = *raw.Session.RedisPassword
	}
	if raw.Session.RedisDB != nil {
		cfg.RedisDB = *raw.Session.RedisDB
	}
	return nil
}

func readEnvFile(path string) (map[string]string, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultEnvFile
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) && !explicit {
			return map[string]string{}, nil
		}
		return nil, errors.Wrapf(err, "read env file %s", path)
	}
	return values, nil
}

func applyEnv(cfg *Config, env func(string) (string, bool)) error {
	var err error

	if v, ok := env(EnvAPIURL); ok && strings.TrimSpace(v) != "" {
		cfg.APIURL = strings.TrimSpace(v)
	}
	if v, ok := env(EnvDebug); ok && strings.TrimSpace(v) != "" {
		if cfg.Debug, err = parseBool(EnvDebug, v); err != nil {
			return err
		}
	}
	if v, ok := env(EnvTimeout); ok && strings.TrimSpace(v) != "" {
		if cfg.Timeout, err = parseDuration(EnvTimeout, v); err != nil {
			return err
		}
	}
	if v, ok := env(EnvRetryLimit); ok && strings.TrimSpace(v) != "" {
		if cfg.RetryLimit, err = parseInt(EnvRetryLimit, v); err != nil {
			return err
		}
	}
	if v, ok := env(EnvRetryDelay); ok && strings.TrimSpace(v) != "" {
		if cfg.RetryDelay, err = parseDuration(EnvRetryDelay, v); err != nil {
			return err
		}
	}
	if v, ok := env(EnvSchema); ok {
		cfg.Schema = strings.TrimSpace(v)
	}
	if v, ok := env(EnvSessionBackend); ok && strings.TrimSpace(v) != "" {
		cfg.SessionBackend = SessionBackend(strings.ToLower(strings.TrimSpace(v)))
	}
	if v, ok := env(EnvSessionPath); ok && strings.TrimSpace(v) != "" {
		cfg.SessionPath = strings.TrimSpace(v)
	}
	if v, ok := env(EnvRedisAddr); ok && strings.TrimSpace(v) != "" {
		cfg.RedisAddr = strings.TrimSpace(v)
	}
	if v, ok := env(EnvRedisPassword); ok {
		cfg.RedisPassword = v
	}
	if v, ok := env(EnvRedisDB); ok && strings.TrimSpace(v) != "" {
		if cfg.RedisDB, err = parseInt(EnvRedisDB, v); err != nil {
			return err
		}
	}
	return nil
}

// parseDuration accepts Go durations or a bare number of milliseconds
func parseDuration(key, value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.InvalidArgumentf("%s: invalid duration %q", key, value)
	}
	return d, nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.InvalidArgumentf("%s: invalid integer %q", key, value)
	}
	return n, nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, errors.InvalidArgumentf("%s: invalid boolean %q", key, value)
	}
	return b, nil
}
