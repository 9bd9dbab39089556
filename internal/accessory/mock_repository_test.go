package accessory

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/repository"
)

// MockRepository is a testify mock of repository.Accessory
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAllAccessories(ctx context.Context) ([]domain.Accessory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Accessory), args.Error(1)
}

func (m *MockRepository) GetAccessoryByID(ctx context.Context, id int64) (*domain.Accessory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Accessory), args.Error(1)
}

func (m *MockRepository) GetUserAccessories(ctx context.Context, userID string) ([]domain.UserAccessory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserAccessory), args.Error(1)
}

func (m *MockRepository) GetUserAccessory(ctx context.Context, userID string, accessoryID int64) (*domain.UserAccessory, error) {
	args := m.Called(ctx, userID, accessoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAccessory), args.Error(1)
}

func (m *MockRepository) InsertUserAccessory(ctx context.Context, userID string, accessoryID int64) error {
	args := m.Called(ctx, userID, accessoryID)
	return args.Error(0)
}

func (m *MockRepository) GetEquippedAccessory(ctx context.Context, userID string) (*domain.UserAccessory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAccessory), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.AccessoryTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.AccessoryTx), args.Error(1)
}

// MockTx is a testify mock of repository.AccessoryTx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) UnequipAll(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockTx) SetEquipped(ctx context.Context, userID string, accessoryID int64) error {
	return m.Called(ctx, userID, accessoryID).Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
