package views_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/calamity-catalog/internal/attack"
	catalogmock "github.com/KirkDiggler/calamity-catalog/internal/clients/catalog/mock"
	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
	"github.com/KirkDiggler/calamity-catalog/internal/errors"
	"github.com/KirkDiggler/calamity-catalog/internal/fetch"
	"github.com/KirkDiggler/calamity-catalog/internal/pkg/clock"
	"github.com/KirkDiggler/calamity-catalog/internal/testutils"
	"github.com/KirkDiggler/calamity-catalog/internal/testutils/mocks"
	"github.com/KirkDiggler/calamity-catalog/internal/views"
)

func fixtureWeapons() []*calamity.Weapon {
	return testutils.CreateTestWeapons()
}

func names(weapons []*calamity.Weapon) []string {
	out := make([]string, 0, len(weapons))
	for _, w := range weapons {
		out = append(out, w.Name)
	}
	return out
}

func TestFilterApply(t *testing.T) {
	weapons := fixtureWeapons()

	testCases := []struct {
		name     string
		filter   views.Filter
		expected []string
	}{
		{
			name:     "zero filter sorts by name case-insensitively",
			filter:   views.Filter{},
			expected: []string{"Ark of the Cosmos", "brimstone sword", "Eternity", "Exoblade", "Heavenly Gale"},
		},
		{
			name:     "damage sort is descending",
			filter:   views.Filter{SortBy: views.SortByDamage},
			expected: []string{"Exoblade", "Ark of the Cosmos", "Eternity", "Heavenly Gale", "brimstone sword"},
		},
		{
			name:     "class",
			filter:   views.Filter{Class: calamity.ClassMelee},
			expected: []string{"Ark of the Cosmos", "brimstone sword", "Exoblade"},
		},
		{
			name:     "rarity and element combine",
			filter:   views.Filter{Rarity: calamity.RarityLegendary, Element: calamity.ElementCosmic},
			expected: []string{"Eternity", "Exoblade"},
		},
		{
			name:     "search is a case-insensitive substring",
			filter:   views.Filter{Search: "BLADE"},
			expected: []string{"Exoblade"},
		},
		{
			name:     "no match",
			filter:   views.Filter{Search: "zenith"},
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, names(tc.filter.Apply(weapons)))
		})
	}

	assert.Equal(t, "Exoblade", weapons[0].Name, "input order is untouched")
}

func TestParseSortBy(t *testing.T) {
	sortBy, ok := views.ParseSortBy("")
	assert.True(t, ok)
	assert.Equal(t, views.SortByName, sortBy)

	sortBy, ok = views.ParseSortBy(" Damage ")
	assert.True(t, ok)
	assert.Equal(t, views.SortByDamage, sortBy)

	_, ok = views.ParseSortBy("rarity")
	assert.False(t, ok)
}

type WeaponsViewTestSuite struct {
	suite.Suite
	clock *clock.Manual
}

func TestWeaponsViewSuite(t *testing.T) {
	suite.Run(t, new(WeaponsViewTestSuite))
}

func (s *WeaponsViewTestSuite) SetupTest() {
	s.clock = clock.NewManual(time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC))
}

func (s *WeaponsViewTestSuite) newView(load fetch.Producer[[]*calamity.Weapon], filter views.Filter) *views.WeaponsView {
	v, err := views.NewWeaponsView(&views.WeaponsConfig{
		Load: load,
		Fetch: &fetch.Config{
			RetryLimit: 1,
			RetryDelay: time.Second,
			Clock:      s.clock,
			Executor:   fetch.Inline,
		},
		Filter: filter,
	})
	s.Require().NoError(err)
	s.T().Cleanup(v.Close)
	return v
}

func loaded(ctx context.Context) ([]*calamity.Weapon, error) {
	return fixtureWeapons(), nil
}

func (s *WeaponsViewTestSuite) TestVisibleAppliesFilter() {
	v := s.newView(loaded, views.Filter{Class: calamity.ClassMelee, SortBy: views.SortByDamage})

	s.Equal(fetch.StatusSuccess, v.State().Status)
	s.Equal([]string{"Exoblade", "Ark of the Cosmos", "brimstone sword"}, names(v.Visible()))

	v.SetFilter(views.Filter{Element: calamity.ElementWind})
	s.Equal(views.SortByName, v.Filter().SortBy)
	s.Equal([]string{"Heavenly Gale"}, names(v.Visible()))
}

func (s *WeaponsViewTestSuite) TestVisibleIsNilBeforeLoad() {
	v, err := views.NewWeaponsView(&views.WeaponsConfig{
		Load:  loaded,
		Fetch: &fetch.Config{Skip: true, Clock: s.clock, Executor: fetch.Inline},
	})
	s.Require().NoError(err)
	defer v.Close()

	s.Nil(v.Visible())
	s.Nil(v.Suggest("exoblade", 3))
}

func (s *WeaponsViewTestSuite) TestSuggest() {
	v := s.newView(loaded, views.Filter{})

	s.Equal([]string{"Exoblade"}, v.Suggest("exoblad", 3))
	s.Equal([]string{"Eternity"}, v.Suggest("eternty", 3))
	s.Equal([]string{"Ark of the Cosmos"}, v.Suggest("ark", 3))
	s.Empty(v.Suggest("zenith", 3))
	s.Empty(v.Suggest("", 3))
}

func (s *WeaponsViewTestSuite) TestRenderPopulated() {
	v := s.newView(loaded, views.Filter{})

	var buf bytes.Buffer
	s.Require().NoError(views.RenderWeapons(&buf, v))

	out := buf.String()
	s.Contains(out, "Calamity Weapons")
	s.Contains(out, "Exoblade")
	s.Contains(out, "LEGENDARY")
	s.Contains(out, "Showing 5 of 5 weapons")
}

func (s *WeaponsViewTestSuite) TestRenderNoMatchesSuggests() {
	v := s.newView(loaded, views.Filter{Search: "exoblad3"})

	var buf bytes.Buffer
	s.Require().NoError(views.RenderWeapons(&buf, v))

	out := buf.String()
	s.Contains(out, "No weapons match")
	s.Contains(out, "Did you mean: Exoblade?")
}

func (s *WeaponsViewTestSuite) TestRenderLoadingAndError() {
	failure := errors.NewShape(http.StatusServiceUnavailable, "request failed with status code 503",
		"Service Unavailable", s.clock.Now(), nil)
	v := s.newView(func(ctx context.Context) ([]*calamity.Weapon, error) {
		return nil, failure
	}, views.Filter{})

	var buf bytes.Buffer
	s.Require().NoError(views.RenderWeapons(&buf, v))
	s.Contains(buf.String(), "Loading weapons... (retry 1)")

	s.clock.Advance(time.Second)

	buf.Reset()
	s.Require().NoError(views.RenderWeapons(&buf, v))
	s.Contains(buf.String(), "Error 503: request failed with status code 503")
	s.Contains(buf.String(), "retry")
}

func TestNewWeaponsView_RequiresLoad(t *testing.T) {
	_, err := views.NewWeaponsView(&views.WeaponsConfig{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

type DetailViewTestSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	client *catalogmock.MockClient
	clock  *clock.Manual
}

func TestDetailViewSuite(t *testing.T) {
	suite.Run(t, new(DetailViewTestSuite))
}

func (s *DetailViewTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.client = catalogmock.NewMockClient(s.ctrl)
	s.clock = clock.NewManual(time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC))
}

func (s *DetailViewTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *DetailViewTestSuite) fetchConfig() *fetch.Config {
	return &fetch.Config{RetryLimit: 2, RetryDelay: time.Second, Clock: s.clock, Executor: fetch.Inline}
}

func (s *DetailViewTestSuite) TestLoadsWeapon() {
	level := 15
	weapon := fixtureWeapons()[0]
	weapon.RarityLevel = &level
	weapon.Description = "A blade forged from the remnants of exo-matter."
	weapon.Price = 5000

	mocks.ExpectGetByID(s.client, weapon)

	v, err := views.NewDetailView(&views.DetailConfig{Client: s.client, ID: "1", Fetch: s.fetchConfig()})
	s.Require().NoError(err)
	defer v.Close()

	state := v.State()
	s.Equal(fetch.StatusSuccess, state.Status)
	s.Same(weapon, state.Value)

	var buf bytes.Buffer
	s.Require().NoError(views.RenderDetail(&buf, v))
	out := buf.String()
	s.Contains(out, "Exoblade")
	s.Contains(out, "LEGENDARY (15)")
	s.Contains(out, "Cosmic")
	s.Contains(out, "exo-matter")
	s.Contains(out, "5000")
	s.Contains(out, "x2.5")
}

func (s *DetailViewTestSuite) TestNotFoundRetriesThenRenders() {
	notFound := errors.NewShape(http.StatusNotFound, "resource not found", "Not Found", s.clock.Now(), nil)
	mocks.ExpectGetByIDFailures(s.client, "missing", notFound, 3)

	v, err := views.NewDetailView(&views.DetailConfig{Client: s.client, ID: "missing", Fetch: s.fetchConfig()})
	s.Require().NoError(err)
	defer v.Close()

	s.clock.Advance(time.Second)
	s.clock.Advance(time.Second)

	state := v.State()
	s.Equal(fetch.StatusError, state.Status)
	s.Equal(http.StatusNotFound, state.Err.StatusCode)

	var buf bytes.Buffer
	s.Require().NoError(views.RenderDetail(&buf, v))
	s.Contains(buf.String(), "Error 404: resource not found")
}

func (s *DetailViewTestSuite) TestSkipLeavesIdle() {
	cfg := s.fetchConfig()
	cfg.Skip = true

	v, err := views.NewDetailView(&views.DetailConfig{Client: s.client, ID: "1", Fetch: cfg})
	s.Require().NoError(err)
	defer v.Close()

	s.Equal(fetch.StatusIdle, v.State().Status)
	s.Equal("1", v.ID())

	mocks.ExpectGetByID(s.client, fixtureWeapons()[0])
	v.Refetch()
	s.Equal(fetch.StatusSuccess, v.State().Status)
}

func (s *DetailViewTestSuite) TestConfigValidation() {
	_, err := views.NewDetailView(&views.DetailConfig{ID: "1"})
	s.Error(err)

	_, err = views.NewDetailView(&views.DetailConfig{Client: s.client, ID: "  "})
	s.Error(err)
}

func TestRenderElements(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, views.RenderElements(&buf, calamity.Elements()))

	out := buf.String()
	assert.Contains(t, out, "Elements")
	assert.Contains(t, out, "calamity")
	assert.Contains(t, out, "x2.5")
}

func TestRenderSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, views.RenderSections(&buf))

	out := buf.String()
	assert.Contains(t, out, "catalog list")
	assert.Contains(t, out, "Enemies")
	assert.Contains(t, out, "in development")
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	shape := errors.NewTransportShape("dial tcp: connection refused", time.Now(), nil)
	require.NoError(t, views.RenderError(&buf, errors.Wrap(shape, "list weapons")))
	assert.Contains(t, buf.String(), "Error 500: dial tcp: connection refused")
	assert.Contains(t, buf.String(), "The catalog API is unavailable")

	buf.Reset()
	require.NoError(t, views.RenderError(&buf, errors.Internal("boom")))
	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), "Run the command again to retry.")
}

func TestRenderError_Hints(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		hint string
	}{
		{
			name: "missing token",
			err:  errors.NewShape(http.StatusUnauthorized, "Full authentication is required", "Unauthorized", time.Now(), nil),
			hint: "Run `catalog login` to store an API token.",
		},
		{
			name: "rejected token",
			err:  errors.NewShape(http.StatusForbidden, "Access denied", "Forbidden", time.Now(), nil),
			hint: "The stored API token is not allowed to do that.",
		},
		{
			name: "canceled",
			err:  errors.NewTransportShape("context canceled", time.Now(), context.Canceled),
			hint: "The request was canceled before the catalog answered.",
		},
		{
			name: "not found",
			err:  errors.NewShape(http.StatusNotFound, "Weapon not found with id: 9", "Not Found", time.Now(), nil),
			hint: "Run the command again to retry.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, views.RenderError(&buf, tc.err))
			assert.Contains(t, buf.String(), tc.hint)
		})
	}
}

func TestRenderAttack(t *testing.T) {
	preview := &attack.Preview{
		Weapon:        &calamity.Weapon{Name: "Murasama"},
		CritThreshold: 18,
		Swings: []attack.Swing{
			{Roll: 19, Critical: true, Damage: 100},
			{Roll: 3, Damage: 50},
		},
		Total: 150,
	}

	var buf bytes.Buffer
	require.NoError(t, views.RenderAttack(&buf, preview))

	out := buf.String()
	assert.Contains(t, out, "Murasama")
	assert.Contains(t, out, "crits on 18+")
	assert.Contains(t, out, "CRITICAL")
	assert.Contains(t, out, "Total: 150")
}
