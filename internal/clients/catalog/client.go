// Package catalog is the HTTP client for the Calamity weapon catalog API
package catalog

//go:generate mockgen -destination=mock/mock_client.go -package=catalogmock github.com/KirkDiggler/calamity-catalog/internal/clients/catalog Client

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
	"github.com/KirkDiggler/calamity-catalog/internal/errors"
	"github.com/KirkDiggler/calamity-catalog/internal/pkg/clock"
	"github.com/KirkDiggler/calamity-catalog/internal/pkg/idgen"
	"github.com/KirkDiggler/calamity-catalog/internal/session"
)

// Defaults applied by Config.Validate
const (
	DefaultBaseURL     = "http://localhost:8080"
	DefaultHTTPTimeout = 10 * time.Second
	DefaultUserAgent   = "calamity-catalog/0.1"
)

const (
	weaponsPath  = "/api/v1/weapons"
	elementsPath = "/api/v1/elements"
)

// Client defines the catalog operations.
// Every failure is returned as an *errors.Shape, possibly wrapped.
type Client interface {
	// ListAll returns every weapon in catalog order
	ListAll(ctx context.Context) ([]*calamity.Weapon, error)

	// GetByID returns one weapon; a missing weapon fails with status 404
	GetByID(ctx context.Context, id string) (*calamity.Weapon, error)

	ListByClass(ctx context.Context, class calamity.WeaponClass) ([]*calamity.Weapon, error)
	ListByElement(ctx context.Context, element calamity.Element) ([]*calamity.Weapon, error)

	// ListByRarity accepts a tier name or an in-game rarity level
	ListByRarity(ctx context.Context, rarity string) ([]*calamity.Weapon, error)

	SearchByName(ctx context.Context, name string) ([]*calamity.Weapon, error)

	// ListByFilter sends only the present criteria fields
	ListByFilter(ctx context.Context, criteria Criteria) ([]*calamity.Weapon, error)

	// Create, Update and Remove need a stored credential
	Create(ctx context.Context, draft *Draft) (*calamity.Weapon, error)
	Update(ctx context.Context, id string, patch *Patch) (*calamity.Weapon, error)
	Remove(ctx context.Context, id string) error

	ListElements(ctx context.Context) ([]calamity.ElementInfo, error)
	GetElement(ctx context.Context, name string) (*calamity.ElementInfo, error)
}

// Credentials supplies the bearer token. *session.Session implements it.
type Credentials interface {
	// Token returns "" when no credential is stored
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Ensure Session implements Credentials at compile time.
var _ Credentials = (*session.Session)(nil)

// Config configures the catalog client
type Config struct {
	BaseURL     string
	HTTPTimeout time.Duration
	UserAgent   string
	// Schema pins the payload layout; empty auto-detects per payload
	Schema Schema
	// Debug logs every request line and response status
	Debug bool

	Session Credentials
	// OnUnauthorized runs after a 401 has cleared the session
	OnUnauthorized func(shape *errors.Shape)

	HTTPClient  *http.Client
	Clock       clock.Clock
	IDGenerator idgen.Generator
	Logger      *slog.Logger
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateURL("BaseURL", cfg.BaseURL, vb)
	if cfg.HTTPTimeout < 0 {
		vb.Fieldf("HTTPTimeout", "must not be negative, got %s", cfg.HTTPTimeout)
	}
	if _, ok := ParseSchema(string(cfg.Schema)); !ok {
		vb.InvalidField("Schema", "unknown schema "+string(cfg.Schema))
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Session == nil {
		cfg.Session = session.NewInMemory()
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = idgen.NewUUID("")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return nil
}

type client struct {
	baseURL        *url.URL
	http           *http.Client
	userAgent      string
	schema         Schema
	debug          bool
	session        Credentials
	onUnauthorized func(*errors.Shape)
	clock          clock.Clock
	ids            idgen.Generator
	logger         *slog.Logger
}

// New creates a catalog client
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid catalog client config")
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid base URL")
	}

	return &client{
		baseURL:        base,
		http:           cfg.HTTPClient,
		userAgent:      cfg.UserAgent,
		schema:         cfg.Schema,
		debug:          cfg.Debug,
		session:        cfg.Session,
		onUnauthorized: cfg.OnUnauthorized,
		clock:          cfg.Clock,
		ids:            cfg.IDGenerator,
		logger:         cfg.Logger,
	}, nil
}

func (c *client) ListAll(ctx context.Context) ([]*calamity.Weapon, error) {
	return c.listWeapons(ctx, weaponsPath, nil)
}

func (c *client) GetByID(ctx context.Context, id string) (*calamity.Weapon, error) {
	if strings.TrimSpace(id) == "" {
		return nil, c.localShape(http.StatusBadRequest, "weapon id is required")
	}

	body, err := c.doURL(ctx, http.MethodGet, c.path(weaponsPath, id), nil, nil)
	if err != nil {
		return nil, err
	}
	return c.decodeOne(body)
}

func (c *client) ListByClass(ctx context.Context, class calamity.WeaponClass) ([]*calamity.Weapon, error) {
	return c.listBySegment(ctx, "class", string(class))
}

func (c *client) ListByElement(ctx context.Context, element calamity.Element) ([]*calamity.Weapon, error) {
	return c.listBySegment(ctx, "element", string(element))
}

func (c *client) ListByRarity(ctx context.Context, rarity string) ([]*calamity.Weapon, error) {
	return c.listBySegment(ctx, "rarity", rarity)
}

func (c *client) SearchByName(ctx context.Context, name string) ([]*calamity.Weapon, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, c.localShape(http.StatusBadRequest, "search name is required")
	}
	values := url.Values{}
	values.Set("name", name)
	return c.listWeapons(ctx, weaponsPath+"/search", values)
}

func (c *client) ListByFilter(ctx context.Context, criteria Criteria) ([]*calamity.Weapon, error) {
	return c.listWeapons(ctx, weaponsPath+"/filter", criteria.Values())
}

func (c *client) Create(ctx context.Context, draft *Draft) (*calamity.Weapon, error) {
	if draft == nil {
		return nil, c.localShape(http.StatusBadRequest, "draft is required")
	}
	if err := draft.Validate(); err != nil {
		return nil, c.localShape(http.StatusBadRequest, errors.GetMessage(err))
	}

	body, err := c.mutate(ctx, http.MethodPost, &url.URL{Path: weaponsPath}, encodeDraft(draft, c.schema))
	if err != nil {
		return nil, err
	}
	return c.decodeOne(body)
}

func (c *client) Update(ctx context.Context, id string, patch *Patch) (*calamity.Weapon, error) {
	if strings.TrimSpace(id) == "" {
		return nil, c.localShape(http.StatusBadRequest, "weapon id is required")
	}
	if patch == nil || patch.IsEmpty() {
		return nil, c.localShape(http.StatusBadRequest, "update changes nothing")
	}
	if err := patch.Validate(); err != nil {
		return nil, c.localShape(http.StatusBadRequest, errors.GetMessage(err))
	}

	body, err := c.mutate(ctx, http.MethodPut, c.path(weaponsPath, id), encodePatch(patch, c.schema))
	if err != nil {
		return nil, err
	}
	return c.decodeOne(body)
}

func (c *client) Remove(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return c.localShape(http.StatusBadRequest, "weapon id is required")
	}

	_, err := c.mutate(ctx, http.MethodDelete, c.path(weaponsPath, id), nil)
	return err
}

func (c *client) ListElements(ctx context.Context) ([]calamity.ElementInfo, error) {
	var payload []elementInfoWire
	body, err := c.doURL(ctx, http.MethodGet, &url.URL{Path: elementsPath}, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := c.decodeJSON(body, &payload); err != nil {
		return nil, err
	}

	elements := make([]calamity.ElementInfo, 0, len(payload))
	for _, w := range payload {
		elements = append(elements, elementFromWire(w))
	}
	return elements, nil
}

func (c *client) GetElement(ctx context.Context, name string) (*calamity.ElementInfo, error) {
	if strings.TrimSpace(name) == "" {
		return nil, c.localShape(http.StatusBadRequest, "element name is required")
	}

	var payload elementInfoWire
	body, err := c.doURL(ctx, http.MethodGet, c.path(elementsPath, name), nil, nil)
	if err != nil {
		return nil, err
	}
	if err := c.decodeJSON(body, &payload); err != nil {
		return nil, err
	}

	info := elementFromWire(payload)
	return &info, nil
}

func (c *client) listBySegment(ctx context.Context, segment, value string) ([]*calamity.Weapon, error) {
	if strings.TrimSpace(value) == "" {
		return nil, c.localShape(http.StatusBadRequest, segment+" is required")
	}
	body, err := c.doURL(ctx, http.MethodGet, c.path(weaponsPath, segment, value), nil, nil)
	if err != nil {
		return nil, err
	}
	return c.decodeList(body)
}

func (c *client) listWeapons(ctx context.Context, path string, query url.Values) ([]*calamity.Weapon, error) {
	rel := &url.URL{Path: path}
	if len(query) > 0 {
		rel.RawQuery = query.Encode()
	}
	body, err := c.doURL(ctx, http.MethodGet, rel, nil, nil)
	if err != nil {
		return nil, err
	}
	return c.decodeList(body)
}

// mutate requires a credential before anything is sent
func (c *client) mutate(ctx context.Context, method string, rel *url.URL, payload any) ([]byte, error) {
	token, err := c.session.Token(ctx)
	if err != nil {
		return nil, c.localShape(http.StatusInternalServerError, errors.GetMessage(err))
	}
	if token == "" {
		return nil, c.localShape(http.StatusUnauthorized, "login required")
	}
	return c.doURL(ctx, method, rel, payload, &token)
}

// path joins escaped segments under a base path
func (c *client) path(base string, segments ...string) *url.URL {
	escaped := make([]string, 0, len(segments)+1)
	raw := make([]string, 0, len(segments)+1)
	escaped = append(escaped, base)
	raw = append(raw, base)
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
		raw = append(raw, s)
	}
	return &url.URL{Path: strings.Join(raw, "/"), RawPath: strings.Join(escaped, "/")}
}
