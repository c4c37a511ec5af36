// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"go.uber.org/mock/gomock"

	catalogmock "github.com/KirkDiggler/calamity-catalog/internal/clients/catalog/mock"
	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
)

// ExpectGetByID sets up a single successful lookup of weapon by its ID
func ExpectGetByID(mockClient *catalogmock.MockClient, weapon *calamity.Weapon) *gomock.Call {
	return mockClient.EXPECT().
		GetByID(gomock.Any(), weapon.ID).
		Return(weapon, nil)
}

// ExpectGetByIDFailures sets up id to fail with err on every attempt a controller makes.
// attempts is the first call plus each retry.
func ExpectGetByIDFailures(mockClient *catalogmock.MockClient, id string, err error, attempts int) *gomock.Call {
	return mockClient.EXPECT().
		GetByID(gomock.Any(), id).
		Return(nil, err).
		Times(attempts)
}
