package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/calamity-catalog/internal/config"
	"github.com/KirkDiggler/calamity-catalog/internal/errors"
)

type LoadTestSuite struct {
	suite.Suite
	dir string
	env map[string]string
}

func TestLoadSuite(t *testing.T) {
	suite.Run(t, new(LoadTestSuite))
}

func (s *LoadTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.env = map[string]string{}
}

func (s *LoadTestSuite) lookup(key string) (string, bool) {
	v, ok := s.env[key]
	return v, ok
}

func (s *LoadTestSuite) write(name, content string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

// options points every source at the temp dir so the developer's own files never leak in
func (s *LoadTestSuite) options() config.LoadOptions {
	return config.LoadOptions{
		Path:      s.write("config.toml", ""),
		EnvFile:   s.write(".env", ""),
		LookupEnv: s.lookup,
	}
}

func (s *LoadTestSuite) TestDefaults() {
	cfg, err := config.Load(s.options())
	s.Require().NoError(err)
	s.Equal(config.Default(), cfg)
}

func (s *LoadTestSuite) TestFileValues() {
	opts := s.options()
	opts.Path = s.write("config.toml", `
api_url = "https://catalog.example.com"
debug = true
timeout = "3s"
retry_limit = 5
retry_delay = "250ms"
schema = "record"

[session]
backend = "Redis"
redis_addr = "redis:6379"
redis_db = 2
`)

	cfg, err := config.Load(opts)
	s.Require().NoError(err)
	s.Equal("https://catalog.example.com", cfg.APIURL)
	s.True(cfg.Debug)
	s.Equal(3*time.Second, cfg.Timeout)
	s.Equal(5, cfg.RetryLimit)
	s.Equal(250*time.Millisecond, cfg.RetryDelay)
	s.Equal("record", cfg.Schema)
	s.Equal(config.SessionRedis, cfg.SessionBackend)
	s.Equal("redis:6379", cfg.RedisAddr)
	s.Equal(2, cfg.RedisDB)
	s.Equal(config.DefaultSessionPath, cfg.SessionPath, "absent keys keep defaults")
}

func (s *LoadTestSuite) TestPrecedence() {
	opts := s.options()
	opts.Path = s.write("config.toml", `
api_url = "http://from-file:8080"
retry_limit = 1
timeout = "2s"
`)
	opts.EnvFile = s.write(".env", `
CATALOG_API_URL=http://from-dotenv:8080
CATALOG_RETRY_LIMIT=2
`)
	s.env[config.EnvAPIURL] = "http://from-env:8080"

	cfg, err := config.Load(opts)
	s.Require().NoError(err)
	s.Equal("http://from-env:8080", cfg.APIURL)
	s.Equal(2, cfg.RetryLimit)
	s.Equal(2*time.Second, cfg.Timeout)
}

func (s *LoadTestSuite) TestEnvValues() {
	s.env[config.EnvDebug] = "true"
	s.env[config.EnvTimeout] = "1500"
	s.env[config.EnvRetryDelay] = "2s"
	s.env[config.EnvSessionBackend] = "memory"
	s.env[config.EnvRedisPassword] = "hunter2"

	cfg, err := config.Load(s.options())
	s.Require().NoError(err)
	s.True(cfg.Debug)
	s.Equal(1500*time.Millisecond, cfg.Timeout)
	s.Equal(2*time.Second, cfg.RetryDelay)
	s.Equal(config.SessionMemory, cfg.SessionBackend)
	s.Equal("hunter2", cfg.RedisPassword)
}

func (s *LoadTestSuite) TestInvalidValues() {
	testCases := []struct {
		name string
		key  string
		val  string
	}{
		{name: "bad debug", key: config.EnvDebug, val: "maybe"},
		{name: "bad timeout", key: config.EnvTimeout, val: "soon"},
		{name: "bad retry limit", key: config.EnvRetryLimit, val: "three"},
		{name: "negative retry limit", key: config.EnvRetryLimit, val: "-1"},
		{name: "zero timeout", key: config.EnvTimeout, val: "0s"},
		{name: "bad url", key: config.EnvAPIURL, val: "ftp://catalog"},
		{name: "unknown backend", key: config.EnvSessionBackend, val: "etcd"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.env = map[string]string{tc.key: tc.val}
			_, err := config.Load(s.options())
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func (s *LoadTestSuite) TestMissingFiles() {
	_, err := config.Load(config.LoadOptions{
		Path:      filepath.Join(s.dir, "nope.toml"),
		EnvFile:   s.write(".env", ""),
		LookupEnv: s.lookup,
	})
	s.Error(err, "an explicit config path must exist")

	_, err = config.Load(config.LoadOptions{
		Path:      s.write("config.toml", ""),
		EnvFile:   filepath.Join(s.dir, "nope.env"),
		LookupEnv: s.lookup,
	})
	s.Error(err, "an explicit env file must exist")
}

func (s *LoadTestSuite) TestMalformedFile() {
	opts := s.options()
	opts.Path = s.write("config.toml", "api_url = [")

	_, err := config.Load(opts)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func TestValidate_BackendRequirements(t *testing.T) {
	cfg := config.Default()
	cfg.SessionBackend = config.SessionRedis
	cfg.RedisAddr = ""
	require.Error(t, cfg.Validate())

	cfg = config.Default()
	cfg.SessionPath = " "
	require.Error(t, cfg.Validate())

	cfg.SessionBackend = config.SessionMemory
	assert.NoError(t, cfg.Validate())
}
