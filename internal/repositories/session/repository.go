// Package session provides the interface for persisting client credentials
package session

//go:generate mockgen -destination=mock/mock_repository.go -package=sessionmock github.com/KirkDiggler/calamity-catalog/internal/repositories/session Repository

import (
	"context"
)

// Repository stores named credential strings
type Repository interface {
	// Get retrieves a credential by name
	// Returns errors.InvalidArgument for an empty name
	// Returns errors.NotFound if nothing is stored under the name
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put stores a credential, replacing any previous value
	// Returns errors.InvalidArgument for an empty name or value
	// Returns errors.Internal for storage failures
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Delete removes a credential. Deleting a missing credential is not an error.
	// Returns errors.InvalidArgument for an empty name
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the input for reading a credential
type GetInput struct {
	Name string
}

// GetOutput defines the output for reading a credential
type GetOutput struct {
	Name  string
	Value string
}

// PutInput defines the input for storing a credential
type PutInput struct {
	Name  string
	Value string
}

// PutOutput defines the output for storing a credential
type PutOutput struct{}

// DeleteInput defines the input for removing a credential
type DeleteInput struct {
	Name string
}

// DeleteOutput defines the output for removing a credential
type DeleteOutput struct {
	// Existed reports whether a value was removed
	Existed bool
}

const (
	errNameEmpty  = "credential name cannot be empty"
	errValueEmpty = "credential value cannot be empty"
)
