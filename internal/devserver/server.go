// Package devserver is an in-memory stand-in for the catalog API, used for local runs and tests
package devserver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/calamity-catalog/internal/clients/catalog"
	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
	"github.com/KirkDiggler/calamity-catalog/internal/errors"
	"github.com/KirkDiggler/calamity-catalog/internal/pkg/clock"
)

// DefaultToken is the bearer token mutations need when Config.Token is unset
const DefaultToken = "dev-token"

const shutdownTimeout = 5 * time.Second

// Config configures a Server
type Config struct {
	// Token is the only bearer credential accepted on mutations
	Token string
	// Seed replaces Fixtures when set; an empty non-nil slice starts empty
	Seed   []*catalog.Draft
	Clock  clock.Clock
	Logger *slog.Logger
}

// Validate validates the config and sets defaults
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	if cfg.Token == "" {
		cfg.Token = DefaultToken
	}
	if cfg.Seed == nil {
		cfg.Seed = Fixtures()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	vb := errors.NewValidationBuilder()
	for i, d := range cfg.Seed {
		if err := d.Validate(); err != nil {
			vb.Fieldf(fmt.Sprintf("Seed[%d]", i), "%s", errors.GetMessage(err))
		}
	}
	return vb.Build()
}

// Server serves the catalog endpoints from memory
type Server struct {
	token  string
	clock  clock.Clock
	logger *slog.Logger
	store  *store
	engine *gin.Engine

	mu     sync.Mutex
	faults []int
}

// New creates a seeded Server
func New(cfg *Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid dev server config")
	}

	s := &Server{
		token:  cfg.Token,
		clock:  cfg.Clock,
		logger: cfg.Logger,
		store:  newStore(),
	}
	now := cfg.Clock.Now()
	for _, d := range cfg.Seed {
		s.store.create(d, now)
	}
	s.engine = s.routes()
	return s, nil
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// FailNext makes the next n read requests fail with status
func (s *Server) FailNext(n, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.faults = append(s.faults, status)
	}
}

// Serve runs on lis until ctx is done, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("dev server listening", "addr", lis.Addr().String())
		if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "dev server shutdown")
		}
		s.logger.Info("dev server stopped")
		return nil
	case err, ok := <-errChan:
		if !ok {
			return nil
		}
		return errors.Wrap(err, "dev server failed")
	}
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.NoRoute(func(c *gin.Context) {
		s.fail(c, http.StatusNotFound, "No endpoint "+c.Request.Method+" "+c.Request.URL.Path)
	})

	v1 := r.Group("/api/v1")
	{
		weapons := v1.Group("/weapons")
		weapons.GET("", s.injectFaults(), s.listWeapons)
		weapons.GET("/search", s.injectFaults(), s.searchWeapons)
		weapons.GET("/filter", s.injectFaults(), s.filterWeapons)
		weapons.GET("/class/:class", s.injectFaults(), s.weaponsByClass)
		weapons.GET("/element/:element", s.injectFaults(), s.weaponsByElement)
		weapons.GET("/rarity/:rarity", s.injectFaults(), s.weaponsByRarity)
		weapons.GET("/:id", s.injectFaults(), s.getWeapon)

		weapons.POST("", s.requireToken(), s.createWeapon)
		weapons.PUT("/:id", s.requireToken(), s.updateWeapon)
		weapons.DELETE("/:id", s.requireToken(), s.deleteWeapon)

		elements := v1.Group("/elements")
		elements.GET("", s.injectFaults(), s.listElements)
		elements.GET("/:name", s.injectFaults(), s.getElement)
	}
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("dev server request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"request_id", c.GetHeader("X-Request-ID"),
			"duration", time.Since(start))
	}
}

func (s *Server) injectFaults() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		status := 0
		if len(s.faults) > 0 {
			status = s.faults[0]
			s.faults = s.faults[1:]
		}
		s.mu.Unlock()

		if status != 0 {
			s.fail(c, status, "injected failure")
			return
		}
		c.Next()
	}
}

func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token != s.token {
			s.failWith(c, errors.Unauthenticated("Full authentication is required to access this resource"))
			return
		}
		c.Next()
	}
}

func (s *Server) fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorBody{
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Timestamp: s.clock.Now().UTC().Format(time.RFC3339),
		Path:      c.Request.URL.Path,
	})
}

func (s *Server) failWith(c *gin.Context, err *errors.Error) {
	s.fail(c, err.Code.HTTPStatus(), err.Message)
}

func (s *Server) listWeapons(c *gin.Context) {
	c.JSON(http.StatusOK, toWeaponDTOs(s.store.list(nil)))
}

func (s *Server) getWeapon(c *gin.Context) {
	id, ok := s.weaponID(c)
	if !ok {
		return
	}
	r, found := s.store.get(id)
	if !found {
		s.fail(c, http.StatusNotFound, fmt.Sprintf("Weapon not found with id: %d", id))
		return
	}
	c.JSON(http.StatusOK, toWeaponDTO(r))
}

func (s *Server) searchWeapons(c *gin.Context) {
	name := strings.ToLower(strings.TrimSpace(c.Query("name")))
	if name == "" {
		s.fail(c, http.StatusBadRequest, "Required request parameter 'name' is not present")
		return
	}
	c.JSON(http.StatusOK, toWeaponDTOs(s.store.list(func(r *record) bool {
		return strings.Contains(strings.ToLower(r.weapon.Name), name)
	})))
}

func (s *Server) filterWeapons(c *gin.Context) {
	criteria, err := catalog.ParseCriteria(c.Request.URL.Query())
	if err != nil {
		s.fail(c, http.StatusBadRequest, errors.GetMessage(err))
		return
	}
	c.JSON(http.StatusOK, toWeaponDTOs(s.store.list(func(r *record) bool {
		return criteria.Matches(&r.weapon)
	})))
}

func (s *Server) weaponsByClass(c *gin.Context) {
	class, ok := calamity.ParseWeaponClass(c.Param("class"))
	if !ok {
		s.fail(c, http.StatusBadRequest, "Invalid weapon class: "+c.Param("class"))
		return
	}
	c.JSON(http.StatusOK, toWeaponDTOs(s.store.list(func(r *record) bool {
		return r.weapon.Class == class
	})))
}

func (s *Server) weaponsByElement(c *gin.Context) {
	element, ok := calamity.ParseElement(c.Param("element"))
	if !ok {
		s.fail(c, http.StatusBadRequest, "Invalid element: "+c.Param("element"))
		return
	}
	c.JSON(http.StatusOK, toWeaponDTOs(s.store.list(func(r *record) bool {
		return r.weapon.Element == element
	})))
}

// weaponsByRarity accepts an exact in-game level or a tier name
func (s *Server) weaponsByRarity(c *gin.Context) {
	value := c.Param("rarity")
	if level, err := strconv.Atoi(value); err == nil {
		c.JSON(http.StatusOK, toWeaponDTOs(s.store.list(func(r *record) bool {
			return r.rarityLevel == level
		})))
		return
	}

	tier, ok := calamity.ParseRarity(value)
	if !ok {
		s.fail(c, http.StatusBadRequest, "Invalid rarity: "+value)
		return
	}
	c.JSON(http.StatusOK, toWeaponDTOs(s.store.list(func(r *record) bool {
		return r.weapon.Rarity == tier
	})))
}

func (s *Server) createWeapon(c *gin.Context) {
	var body createDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		s.fail(c, http.StatusBadRequest, "Malformed JSON request")
		return
	}

	d := body.draft()
	if err := d.Validate(); err != nil {
		s.fail(c, http.StatusBadRequest, errors.GetMessage(err))
		return
	}

	r := s.store.create(d, s.clock.Now())
	s.logger.Info("weapon created", "id", r.id, "name", r.weapon.Name)
	c.JSON(http.StatusCreated, toWeaponDTO(r))
}

func (s *Server) updateWeapon(c *gin.Context) {
	id, ok := s.weaponID(c)
	if !ok {
		return
	}

	var body updateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		s.fail(c, http.StatusBadRequest, "Malformed JSON request")
		return
	}

	r, found, err := s.store.update(id, func(d *catalog.Draft) error {
		body.apply(d)
		return d.Validate()
	}, s.clock.Now())
	switch {
	case !found:
		s.fail(c, http.StatusNotFound, fmt.Sprintf("Weapon not found with id: %d", id))
		return
	case err != nil:
		s.fail(c, http.StatusBadRequest, errors.GetMessage(err))
		return
	}

	s.logger.Info("weapon updated", "id", r.id)
	c.JSON(http.StatusOK, toWeaponDTO(r))
}

func (s *Server) deleteWeapon(c *gin.Context) {
	id, ok := s.weaponID(c)
	if !ok {
		return
	}
	if !s.store.delete(id) {
		s.fail(c, http.StatusNotFound, fmt.Sprintf("Weapon not found with id: %d", id))
		return
	}
	s.logger.Info("weapon deleted", "id", id)
	c.Status(http.StatusNoContent)
}

func (s *Server) listElements(c *gin.Context) {
	elements := calamity.Elements()
	out := make([]elementDTO, 0, len(elements))
	for _, info := range elements {
		out = append(out, toElementDTO(info))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getElement(c *gin.Context) {
	element, ok := calamity.ParseElement(c.Param("name"))
	if !ok {
		s.fail(c, http.StatusNotFound, "Element not found: "+c.Param("name"))
		return
	}
	c.JSON(http.StatusOK, toElementDTO(element.Info()))
}

func (s *Server) weaponID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.fail(c, http.StatusBadRequest, "Invalid weapon id: "+c.Param("id"))
		return 0, false
	}
	return id, true
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
