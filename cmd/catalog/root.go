package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/calamity-catalog/internal/clients/catalog"
	"github.com/KirkDiggler/calamity-catalog/internal/config"
	apperrors "github.com/KirkDiggler/calamity-catalog/internal/errors"
	"github.com/KirkDiggler/calamity-catalog/internal/fetch"
	"github.com/KirkDiggler/calamity-catalog/internal/redis"
	sessionrepo "github.com/KirkDiggler/calamity-catalog/internal/repositories/session"
	"github.com/KirkDiggler/calamity-catalog/internal/session"
)

// errReported marks a failure that has already been rendered for the user
var errReported = errors.New("reported")

// app carries the resolved settings shared by every command
type app struct {
	configPath string
	envFile    string
	apiURL     string
	debug      bool
	timeout    time.Duration
	retries    int
	retryDelay time.Duration

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the Calamity weapon catalog",
		Long: `catalog reads the Calamity weapon catalog API and renders weapons, elements and
attack previews in the terminal. Mutations need a credential stored with "catalog login".`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "TOML config file (default "+config.DefaultPath+")")
	flags.StringVar(&a.envFile, "env-file", "", "dotenv file (default "+config.DefaultEnvFile+")")
	flags.StringVar(&a.apiURL, "api-url", config.DefaultAPIURL, "catalog API base URL")
	flags.BoolVar(&a.debug, "debug", false, "log every request and response")
	flags.DurationVar(&a.timeout, "timeout", config.DefaultTimeout, "per-request timeout")
	flags.IntVar(&a.retries, "retries", config.DefaultRetryLimit, "retries after a failed read")
	flags.DurationVar(&a.retryDelay, "retry-delay", config.DefaultRetryDelay, "wait between retries")

	root.AddCommand(
		newListCmd(a),
		newGetCmd(a),
		newFilterCmd(a),
		newSearchCmd(a),
		newByClassCmd(a),
		newByElementCmd(a),
		newByRarityCmd(a),
		newElementsCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newAttackCmd(a),
		newSectionsCmd(a),
		newDevServerCmd(a),
	)
	return root
}

// load resolves config sources, then lets explicitly set flags win
func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.LoadOptions{Path: a.configPath, EnvFile: a.envFile})
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = a.apiURL
	}
	if flags.Changed("debug") {
		cfg.Debug = a.debug
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}
	if flags.Changed("retries") {
		cfg.RetryLimit = a.retries
	}
	if flags.Changed("retry-delay") {
		cfg.RetryDelay = a.retryDelay
	}
	if err := cfg.Validate(); err != nil {
		return apperrors.Wrap(err, "invalid flags")
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFlags(0)
	return nil
}

// openSession builds the credential store the config selects
func (a *app) openSession(ctx context.Context) (*session.Session, func(), error) {
	noop := func() {}

	var repo sessionrepo.Repository
	cleanup := noop
	switch a.cfg.SessionBackend {
	case config.SessionMemory:
		repo = sessionrepo.NewMemory()
	case config.SessionRedis:
		client, err := redis.NewClient(ctx, a.cfg.RedisAddr, &redis.Options{
			Password:     a.cfg.RedisPassword,
			DB:           a.cfg.RedisDB,
			DialTimeout:  a.cfg.Timeout,
			PingOnCreate: true,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to session store: %w", err)
		}
		cleanup = func() {
			if err := client.Close(); err != nil {
				log.Printf("Failed to close session store: %v", err)
			}
		}
		repo, err = sessionrepo.NewRedis(&sessionrepo.RedisConfig{Client: client})
		if err != nil {
			cleanup()
			return nil, noop, err
		}
	default:
		var err error
		repo, err = sessionrepo.NewFile(&sessionrepo.FileConfig{Path: a.cfg.SessionPath})
		if err != nil {
			return nil, noop, err
		}
	}

	s, err := session.New(&session.Config{Repository: repo, Logger: a.logger})
	if err != nil {
		cleanup()
		return nil, noop, err
	}
	return s, cleanup, nil
}

// newClient builds a catalog client over the configured session
func (a *app) newClient(ctx context.Context) (catalog.Client, func(), error) {
	s, cleanup, err := a.openSession(ctx)
	if err != nil {
		return nil, cleanup, err
	}

	schema, ok := catalog.ParseSchema(a.cfg.Schema)
	if !ok {
		cleanup()
		return nil, func() {}, apperrors.InvalidArgumentf("unknown schema %q", a.cfg.Schema)
	}
	client, err := catalog.New(&catalog.Config{
		BaseURL:     a.cfg.APIURL,
		HTTPTimeout: a.cfg.Timeout,
		Schema:      schema,
		Debug:       a.cfg.Debug,
		Session:     s,
		Logger:      a.logger,
		OnUnauthorized: func(shape *apperrors.Shape) {
			log.Printf("Session expired or missing, run `catalog login` (%s)", shape.Message)
		},
	})
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return client, cleanup, nil
}

func (a *app) fetchConfig(ctx context.Context, name string) *fetch.Config {
	return &fetch.Config{
		RetryLimit: a.cfg.RetryLimit,
		RetryDelay: a.cfg.RetryDelay,
		Name:       name,
		Context:    ctx,
		Logger:     a.logger,
	}
}

// logRetries prints one progress line per scheduled retry
func logRetries[T any](limit int) func(fetch.State[T]) {
	var logged atomic.Int64
	return func(st fetch.State[T]) {
		if st.Status != fetch.StatusLoading || st.Attempt == 0 {
			return
		}
		if prev := logged.Swap(int64(st.Attempt)); prev != int64(st.Attempt) {
			log.Printf("Request failed, retrying (%d of %d)...", st.Attempt, limit)
		}
	}
}
