package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	apperrors "github.com/KirkDiggler/calamity-catalog/internal/errors"
	"github.com/KirkDiggler/calamity-catalog/internal/pkg/homedir"
)

// DefaultFilePath is where the file repository keeps credentials
const DefaultFilePath = "~/.config/calamity/session.toml"

// fileDocument is the on-disk layout
type fileDocument struct {
	Credentials map[string]string `toml:"credentials"`
}

type fileRepository struct {
	mu   sync.Mutex
	path string
}

// FileConfig contains configuration for the file session repository.
type FileConfig struct {
	Path string
}

// Validate validates the FileConfig and sets defaults if not provided.
func (cfg *FileConfig) Validate() error {
	if cfg == nil {
		return apperrors.InvalidArgument("config cannot be nil")
	}
	if cfg.Path == "" {
		cfg.Path = DefaultFilePath
	}
	return nil
}

// NewFile creates a repository persisted as a TOML file, readable by the user only
func NewFile(cfg *FileConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	resolved, err := homedir.Expand(cfg.Path)
	if err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.CodeInvalidArgument, "invalid session path")
	}

	return &fileRepository{path: resolved}, nil
}

func (r *fileRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidArgument(errNameEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	value, ok := doc.Credentials[input.Name]
	if !ok || value == "" {
		return nil, apperrors.NotFoundf("credential %s not found", input.Name)
	}
	return &GetOutput{Name: input.Name, Value: value}, nil
}

func (r *fileRepository) Put(_ context.Context, input PutInput) (*PutOutput, error) {
	if err := validatePut(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	doc.Credentials[input.Name] = input.Value

	if err := r.save(doc); err != nil {
		return nil, err
	}
	return &PutOutput{}, nil
}

func (r *fileRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidArgument(errNameEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	_, existed := doc.Credentials[input.Name]
	if !existed {
		return &DeleteOutput{}, nil
	}
	delete(doc.Credentials, input.Name)

	if err := r.save(doc); err != nil {
		return nil, err
	}
	return &DeleteOutput{Existed: true}, nil
}

// load returns an empty document when the file does not exist yet
func (r *fileRepository) load() (*fileDocument, error) {
	doc := &fileDocument{Credentials: make(map[string]string)}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return nil, apperrors.Wrapf(err, "failed to read session file %s", r.path)
	}

	if err := toml.Unmarshal(data, doc); err != nil {
		return nil, apperrors.Wrapf(err, "failed to parse session file %s", r.path)
	}
	if doc.Credentials == nil {
		doc.Credentials = make(map[string]string)
	}
	return doc, nil
}

func (r *fileRepository) save(doc *fileDocument) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return apperrors.Wrap(err, "failed to create session dir")
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal session")
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return apperrors.Wrap(err, "failed to write session file")
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return apperrors.Wrapf(err, "failed to replace session file %s", r.path)
	}
	return nil
}
