package session

import (
	"context"
	"sync"

	"github.com/KirkDiggler/calamity-catalog/internal/errors"
)

type memoryRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates a process-local repository. Nothing survives a restart.
func NewMemory() Repository {
	return &memoryRepository{values: make(map[string]string)}
}

func (r *memoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.values[input.Name]
	if !ok {
		return nil, errors.NotFoundf("credential %s not found", input.Name)
	}
	return &GetOutput{Name: input.Name, Value: value}, nil
}

func (r *memoryRepository) Put(_ context.Context, input PutInput) (*PutOutput, error) {
	if err := validatePut(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[input.Name] = input.Value
	return &PutOutput{}, nil
}

func (r *memoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.values[input.Name]
	delete(r.values, input.Name)
	return &DeleteOutput{Existed: existed}, nil
}

func validatePut(input PutInput) error {
	vb := errors.NewValidationBuilder()
	if input.Name == "" {
		vb.Field("Name", errNameEmpty)
	}
	if input.Value == "" {
		vb.Field("Value", errValueEmpty)
	}
	return vb.Build()
}
