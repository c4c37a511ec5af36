package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/calamity-catalog/internal/errors"
	"github.com/KirkDiggler/calamity-catalog/internal/repositories/session"
	"github.com/KirkDiggler/calamity-catalog/internal/testutils"
)

const testToken = "eyJhbGciOiJIUzI1NiJ9.test.signature"

// RepositoryTestSuite runs the same contract against every backend
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func() session.Repository
	repo    session.Repository
	ctx     context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo()
}

func TestMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{newRepo: session.NewMemory})
}

func TestRedisRepository(t *testing.T) {
	s := &RepositoryTestSuite{}
	s.newRepo = func() session.Repository {
		client, _ := testutils.CreateTestRedisClient(s.T())
		repo, err := session.NewRedis(&session.RedisConfig{Client: client})
		s.Require().NoError(err)
		return repo
	}
	suite.Run(t, s)
}

func TestFileRepository(t *testing.T) {
	s := &RepositoryTestSuite{}
	s.newRepo = func() session.Repository {
		repo, err := session.NewFile(&session.FileConfig{
			Path: filepath.Join(s.T().TempDir(), "calamity", "session.toml"),
		})
		s.Require().NoError(err)
		return repo
	}
	suite.Run(t, s)
}

func (s *RepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, session.GetInput{Name: "jwt_token"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestPutThenGet() {
	_, err := s.repo.Put(s.ctx, session.PutInput{Name: "jwt_token", Value: testToken})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, session.GetInput{Name: "jwt_token"})
	s.Require().NoError(err)
	s.Equal("jwt_token", out.Name)
	s.Equal(testToken, out.Value)

	_, err = s.repo.Put(s.ctx, session.PutInput{Name: "jwt_token", Value: "replacement"})
	s.Require().NoError(err)

	out, err = s.repo.Get(s.ctx, session.GetInput{Name: "jwt_token"})
	s.Require().NoError(err)
	s.Equal("replacement", out.Value)
}

func (s *RepositoryTestSuite) TestDelete() {
	_, err := s.repo.Put(s.ctx, session.PutInput{Name: "jwt_token", Value: testToken})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, session.DeleteInput{Name: "jwt_token"})
	s.Require().NoError(err)
	s.True(out.Existed)

	_, err = s.repo.Get(s.ctx, session.GetInput{Name: "jwt_token"})
	s.True(errors.IsNotFound(err))

	out, err = s.repo.Delete(s.ctx, session.DeleteInput{Name: "jwt_token"})
	s.Require().NoError(err)
	s.False(out.Existed)
}

func (s *RepositoryTestSuite) TestValidation() {
	testCases := []struct {
		name string
		call func() error
	}{
		{
			name: "get without name",
			call: func() error {
				_, err := s.repo.Get(s.ctx, session.GetInput{})
				return err
			},
		},
		{
			name: "put without value",
			call: func() error {
				_, err := s.repo.Put(s.ctx, session.PutInput{Name: "jwt_token"})
				return err
			},
		},
		{
			name: "put without name",
			call: func() error {
				_, err := s.repo.Put(s.ctx, session.PutInput{Value: testToken})
				return err
			},
		},
		{
			name: "delete without name",
			call: func() error {
				_, err := s.repo.Delete(s.ctx, session.DeleteInput{})
				return err
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.call()
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func TestRedisRepository_KeyLayout(t *testing.T) {
	ctx := context.Background()
	client, mr := testutils.CreateTestRedisClientWithContext(t, func(mr *miniredis.Miniredis) {
		require.NoError(t, mr.Set("calamity:session:jwt_token", "seeded"))
	})

	repo, err := session.NewRedis(&session.RedisConfig{Client: client})
	require.NoError(t, err)

	out, err := repo.Get(ctx, session.GetInput{Name: "jwt_token"})
	require.NoError(t, err)
	assert.Equal(t, "seeded", out.Value)

	_, err = repo.Delete(ctx, session.DeleteInput{Name: "jwt_token"})
	require.NoError(t, err)
	assert.False(t, mr.Exists("calamity:session:jwt_token"))
}

func TestNewRedis_RequiresClient(t *testing.T) {
	_, err := session.NewRedis(nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = session.NewRedis(&session.RedisConfig{})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestFileRepository_OnDiskFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.toml")

	repo, err := session.NewFile(&session.FileConfig{Path: path})
	require.NoError(t, err)

	_, err = repo.Put(ctx, session.PutInput{Name: "jwt_token", Value: testToken})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Credentials map[string]string `toml:"credentials"`
	}
	require.NoError(t, toml.Unmarshal(data, &doc))
	assert.Equal(t, map[string]string{"jwt_token": testToken}, doc.Credentials)

	// a second repository over the same path sees the stored value
	other, err := session.NewFile(&session.FileConfig{Path: path})
	require.NoError(t, err)

	out, err := other.Get(ctx, session.GetInput{Name: "jwt_token"})
	require.NoError(t, err)
	assert.Equal(t, testToken, out.Value)
}

func TestFileRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("credentials = ["), 0o600))

	repo, err := session.NewFile(&session.FileConfig{Path: path})
	require.NoError(t, err)

	_, err = repo.Get(context.Background(), session.GetInput{Name: "jwt_token"})
	require.Error(t, err)
	assert.True(t, errors.IsInternal(err))
}
