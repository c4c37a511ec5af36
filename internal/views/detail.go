package views

import (
	"context"
	"strings"

	"github.com/KirkDiggler/calamity-catalog/internal/clients/catalog"
	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
	"github.com/KirkDiggler/calamity-catalog/internal/errors"
	"github.com/KirkDiggler/calamity-catalog/internal/fetch"
)

// DetailConfig configures a DetailView
type DetailConfig struct {
	Client catalog.Client
	ID     string
	Fetch  *fetch.Config
}

// Validate validates the config
func (cfg *DetailConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Client == nil {
		vb.RequiredField("Client")
	}
	errors.ValidateRequired("ID", strings.TrimSpace(cfg.ID), vb)
	if err := vb.Build(); err != nil {
		return err
	}

	if cfg.Fetch == nil {
		cfg.Fetch = &fetch.Config{}
	}
	if cfg.Fetch.Name == "" {
		cfg.Fetch.Name = "weapon " + cfg.ID
	}
	return nil
}

// DetailView is the single weapon page
type DetailView struct {
	id   string
	ctrl *fetch.Controller[*calamity.Weapon]
}

// NewDetailView starts loading the weapon unless the fetch config skips it
func NewDetailView(cfg *DetailConfig) (*DetailView, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid detail view config")
	}

	client, id := cfg.Client, cfg.ID
	ctrl, err := fetch.New(func(ctx context.Context) (*calamity.Weapon, error) {
		return client.GetByID(ctx, id)
	}, cfg.Fetch)
	if err != nil {
		return nil, err
	}
	return &DetailView{id: id, ctrl: ctrl}, nil
}

// ID is the weapon id the view loads
func (v *DetailView) ID() string {
	return v.id
}

// State is the raw fetch state
func (v *DetailView) State() fetch.State[*calamity.Weapon] {
	return v.ctrl.State()
}

// Wait blocks until the weapon has loaded or failed for good
func (v *DetailView) Wait(ctx context.Context) (fetch.State[*calamity.Weapon], error) {
	return v.ctrl.Wait(ctx)
}

// Subscribe registers fn for every state change; call the returned func to stop
func (v *DetailView) Subscribe(fn func(fetch.State[*calamity.Weapon])) func() {
	return v.ctrl.Subscribe(fn)
}

// Refetch reloads the weapon
func (v *DetailView) Refetch() {
	v.ctrl.Refetch()
}

// Close stops the view's controller
func (v *DetailView) Close() {
	v.ctrl.Close()
}
