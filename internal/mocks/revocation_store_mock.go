package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type RevocationStore struct{ mock.Mock }

func (m *RevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return m.Called(ctx, tokenID, expiresAt).Error(0)
}
func (m *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	a := m.Called(ctx, tokenID)
	return a.Bool(0), a.Error(1)
}
