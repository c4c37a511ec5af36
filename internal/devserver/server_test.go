package devserver_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/calamity-catalog/internal/clients/catalog"
	"github.com/KirkDiggler/calamity-catalog/internal/devserver"
	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
	"github.com/KirkDiggler/calamity-catalog/internal/errors"
	"github.com/KirkDiggler/calamity-catalog/internal/fetch"
	"github.com/KirkDiggler/calamity-catalog/internal/pkg/clock"
	"github.com/KirkDiggler/calamity-catalog/internal/session"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type ServerTestSuite struct {
	suite.Suite
	clock   *clock.Manual
	server  *devserver.Server
	http    *httptest.Server
	session *session.Session
	client  catalog.Client
	cleared []int
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.clock = clock.NewManual(time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC))

	server, err := devserver.New(&devserver.Config{Token: "secret", Clock: s.clock, Logger: quietLogger()})
	s.Require().NoError(err)
	s.server = server
	s.http = httptest.NewServer(server.Handler())

	s.session = session.NewInMemory()
	s.cleared = nil
	client, err := catalog.New(&catalog.Config{
		BaseURL: s.http.URL,
		Session: s.session,
		Clock:   s.clock,
		Logger:  quietLogger(),
		OnUnauthorized: func(shape *errors.Shape) {
			s.cleared = append(s.cleared, shape.StatusCode)
		},
	})
	s.Require().NoError(err)
	s.client = client
}

func (s *ServerTestSuite) TearDownTest() {
	s.http.Close()
}

func (s *ServerTestSuite) login() {
	s.Require().NoError(s.session.SetToken(context.Background(), "secret"))
}

func weaponNames(weapons []*calamity.Weapon) []string {
	out := make([]string, 0, len(weapons))
	for _, w := range weapons {
		out = append(out, w.Name)
	}
	return out
}

func (s *ServerTestSuite) TestListAllServesFixtures() {
	weapons, err := s.client.ListAll(context.Background())
	s.Require().NoError(err)
	s.Len(weapons, len(devserver.Fixtures()))

	first := weapons[0]
	s.Equal("1", first.ID)
	s.Equal("Murasama", first.Name)
	s.Equal(calamity.RarityLegendary, first.Rarity)
	s.Require().NotNil(first.RarityLevel)
	s.Equal(15, *first.RarityLevel)
	s.Equal(2400, first.Price)
	s.True(first.CreatedAt.Equal(s.clock.Now()))
}

func (s *ServerTestSuite) TestGetByID() {
	w, err := s.client.GetByID(context.Background(), "2")
	s.Require().NoError(err)
	s.Equal("Exoblade", w.Name)

	_, err = s.client.GetByID(context.Background(), "99")
	shape, ok := errors.AsShape(err)
	s.Require().True(ok)
	s.Equal(http.StatusNotFound, shape.StatusCode)
	s.Equal(catalog.MessageNotFound, shape.Message)

	_, err = s.client.GetByID(context.Background(), "abc")
	shape, ok = errors.AsShape(err)
	s.Require().True(ok)
	s.Equal(http.StatusBadRequest, shape.StatusCode)
	s.Equal("Invalid weapon id: abc", shape.Message)
}

func (s *ServerTestSuite) TestSegmentsAndSearch() {
	ctx := context.Background()

	melee, err := s.client.ListByClass(ctx, calamity.ClassMelee)
	s.Require().NoError(err)
	s.Equal([]string{"Murasama", "Exoblade", "Brimstone Sword", "Wulfrum Blade"}, weaponNames(melee))

	cosmic, err := s.client.ListByElement(ctx, calamity.ElementCosmic)
	s.Require().NoError(err)
	s.Equal([]string{"Exoblade"}, weaponNames(cosmic))

	byLevel, err := s.client.ListByRarity(ctx, "16")
	s.Require().NoError(err)
	s.Equal([]string{"Heavenly Gale", "Eternity", "Cosmic Immaterializer"}, weaponNames(byLevel))

	byTier, err := s.client.ListByRarity(ctx, "common")
	s.Require().NoError(err)
	s.Equal([]string{"Wulfrum Blade"}, weaponNames(byTier))

	found, err := s.client.SearchByName(ctx, "BLADE")
	s.Require().NoError(err)
	s.Equal([]string{"Exoblade", "Wulfrum Blade"}, weaponNames(found))

	_, err = s.client.ListByRarity(ctx, "mythic")
	shape, ok := errors.AsShape(err)
	s.Require().True(ok)
	s.Equal(http.StatusBadRequest, shape.StatusCode)
}

func (s *ServerTestSuite) TestFilter() {
	ctx := context.Background()

	all, err := s.client.ListByFilter(ctx, catalog.Criteria{})
	s.Require().NoError(err)
	s.Len(all, len(devserver.Fixtures()))

	strongMelee, err := s.client.ListByFilter(ctx, catalog.Criteria{
		Category: calamity.ClassMelee,
		MinStat:  catalog.IntPtr(100),
	})
	s.Require().NoError(err)
	s.Equal([]string{"Murasama", "Exoblade"}, weaponNames(strongMelee))

	prefixed, err := s.client.ListByFilter(ctx, catalog.Criteria{NamePrefix: "c", MaxStat: catalog.IntPtr(100)})
	s.Require().NoError(err)
	s.Equal([]string{"Cosmic Immaterializer"}, weaponNames(prefixed))
}

func (s *ServerTestSuite) TestMutationsRoundTrip() {
	ctx := context.Background()
	s.login()

	created, err := s.client.Create(ctx, &catalog.Draft{
		Name:        "Ark of the Cosmos",
		Class:       calamity.ClassMelee,
		Element:     calamity.ElementCosmic,
		RarityLevel: 14,
		Stats:       calamity.Stats{BaseDamage: 150, CriticalChance: 18, AttacksPerTurn: 1, Range: 8},
		Price:       2000,
		Quality:     8,
	})
	s.Require().NoError(err)
	s.Equal("9", created.ID)
	s.Equal(calamity.RarityLegendary, created.Rarity)

	damage := 175
	name := "Ark of the Ancients"
	updated, err := s.client.Update(ctx, created.ID, &catalog.Patch{Name: &name, BaseDamage: &damage})
	s.Require().NoError(err)
	s.Equal(name, updated.Name)
	s.Equal(175, updated.Stats.BaseDamage)
	s.Equal(2000, updated.Price, "absent fields keep their values")

	s.Require().NoError(s.client.Remove(ctx, created.ID))

	_, err = s.client.GetByID(ctx, created.ID)
	shape, ok := errors.AsShape(err)
	s.Require().True(ok)
	s.Equal(http.StatusNotFound, shape.StatusCode)

	err = s.client.Remove(ctx, created.ID)
	shape, ok = errors.AsShape(err)
	s.Require().True(ok)
	s.Equal(http.StatusNotFound, shape.StatusCode)
}

func (s *ServerTestSuite) TestUpdateRejectedByServerRules() {
	resp := s.raw(http.MethodPut, "/api/v1/weapons/8", `{"criticalChance": 0}`, "secret")
	defer func() { _ = resp.Body.Close() }()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *ServerTestSuite) TestWrongTokenClearsSession() {
	s.Require().NoError(s.session.SetToken(context.Background(), "stale"))

	err := s.client.Remove(context.Background(), "1")
	shape, ok := errors.AsShape(err)
	s.Require().True(ok)
	s.Equal(http.StatusUnauthorized, shape.StatusCode)
	s.Equal([]int{http.StatusUnauthorized}, s.cleared)

	token, err := s.session.Token(context.Background())
	s.Require().NoError(err)
	s.Empty(token)

	_, err = s.client.GetByID(context.Background(), "1")
	s.NoError(err, "the weapon was not deleted")
}

func (s *ServerTestSuite) TestErrorBody() {
	resp := s.raw(http.MethodDelete, "/api/v1/weapons/1", "", "")
	defer func() { _ = resp.Body.Close() }()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	var body map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal(float64(401), body["status"])
	s.Equal("Unauthorized", body["error"])
	s.Equal("/api/v1/weapons/1", body["path"])
	s.Equal("2024-03-14T15:09:26Z", body["timestamp"])
	s.NotEmpty(body["message"])
}

func (s *ServerTestSuite) TestElements() {
	elements, err := s.client.ListElements(context.Background())
	s.Require().NoError(err)
	s.Len(elements, len(calamity.Elements()))

	info, err := s.client.GetElement(context.Background(), "god slayer")
	s.Require().NoError(err)
	s.Equal(calamity.ElementGodSlayer, info.Element)
	s.Equal(calamity.GroupCalamity, info.Group)

	_, err = s.client.GetElement(context.Background(), "plasma")
	shape, ok := errors.AsShape(err)
	s.Require().True(ok)
	s.Equal(http.StatusNotFound, shape.StatusCode)
}

func (s *ServerTestSuite) TestControllerRetriesThroughInjectedFailures() {
	s.server.FailNext(2, http.StatusServiceUnavailable)

	ctrl, err := fetch.New(s.client.ListAll, &fetch.Config{
		RetryLimit: 2,
		RetryDelay: time.Second,
		Clock:      s.clock,
		Executor:   fetch.Inline,
	})
	s.Require().NoError(err)
	defer ctrl.Close()

	s.Equal(fetch.StatusLoading, ctrl.State().Status)
	s.clock.Advance(time.Second)
	s.clock.Advance(time.Second)

	state := ctrl.State()
	s.Equal(fetch.StatusSuccess, state.Status)
	s.Len(state.Value, len(devserver.Fixtures()))
}

func (s *ServerTestSuite) TestUnknownRoute() {
	resp := s.raw(http.MethodGet, "/api/v1/enemies", "", "")
	defer func() { _ = resp.Body.Close() }()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *ServerTestSuite) raw(method, path, body, token string) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.http.URL+path, reader)
	s.Require().NoError(err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func TestNew_RejectsInvalidSeed(t *testing.T) {
	_, err := devserver.New(&devserver.Config{
		Seed:   []*catalog.Draft{{Name: ""}},
		Logger: quietLogger(),
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestNew_EmptySeed(t *testing.T) {
	server, err := devserver.New(&devserver.Config{Seed: []*catalog.Draft{}, Logger: quietLogger()})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/weapons", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestServe_StopsOnCancel(t *testing.T) {
	server, err := devserver.New(&devserver.Config{Logger: quietLogger()})
	require.NoError(t, err)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, lis) }()

	resp, err := http.Get("http://" + lis.Addr().String() + "/api/v1/elements")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
