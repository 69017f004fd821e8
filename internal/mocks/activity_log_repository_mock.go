package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/sims/internal/app/models"
)

type ActivityLogRepository struct{ mock.Mock }

func logsOrNil(a mock.Arguments) ([]*models.ActivityLog, error) {
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).([]*models.ActivityLog), a.Error(1)
}

func (m *ActivityLogRepository) Create(ctx context.Context, l *models.ActivityLog) error {
	return m.Called(ctx, l).Error(0)
}
func (m *ActivityLogRepository) GetAll(ctx context.Context, limit, offset uint64) ([]*models.ActivityLog, error) {
	return logsOrNil(m.Called(ctx, limit, offset))
}
func (m *ActivityLogRepository) CountAll(ctx context.Context) (int64, error) {
	a := m.Called(ctx)
	return a.Get(0).(int64), a.Error(1)
}
func (m *ActivityLogRepository) GetByUserID(ctx context.Context, userID int64, limit, offset uint64) ([]*models.ActivityLog, error) {
	return logsOrNil(m.Called(ctx, userID, limit, offset))
}
func (m *ActivityLogRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	a := m.Called(ctx, userID)
	return a.Get(0).(int64), a.Error(1)
}
func (m *ActivityLogRepository) GetByAction(ctx context.Context, action string, limit, offset uint64) ([]*models.ActivityLog, error) {
	return logsOrNil(m.Called(ctx, action, limit, offset))
}
func (m *ActivityLogRepository) CountByAction(ctx context.Context, action string) (int64, error) {
	a := m.Called(ctx, action)
	return a.Get(0).(int64), a.Error(1)
}
func (m *ActivityLogRepository) GetRecent(ctx context.Context, count uint64) ([]*models.ActivityLog, error) {
	return logsOrNil(m.Called(ctx, count))
}
