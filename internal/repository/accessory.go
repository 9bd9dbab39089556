package repository

import (
	"context"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// Accessory defines persistence for the accessory catalog and ownership
type Accessory interface {
	// GetAllAccessories returns the catalog ordered by id
	GetAllAccessories(ctx context.Context) ([]domain.Accessory, error)
	GetAccessoryByID(ctx context.Context, id int64) (*domain.Accessory, error)

	// GetUserAccessories returns owned accessories with catalog details, newest first
	GetUserAccessories(ctx context.Context, userID string) ([]domain.UserAccessory, error)
	// GetUserAccessory returns nil, nil when the user does not own the accessory
	GetUserAccessory(ctx context.Context, userID string, accessoryID int64) (*domain.UserAccessory, error)
	// InsertUserAccessory returns domain.ErrAlreadyOwned when the pair already exists
	InsertUserAccessory(ctx context.Context, userID string, accessoryID int64) error
	// GetEquippedAccessory returns nil, nil when nothing is equipped
	GetEquippedAccessory(ctx context.Context, userID string) (*domain.UserAccessory, error)

	BeginTx(ctx context.Context) (AccessoryTx, error)
}

// AccessoryTx groups the equip writes so at most one row stays equipped
type AccessoryTx interface {
	Tx
	UnequipAll(ctx context.Context, userID string) error
	SetEquipped(ctx context.Context, userID string, accessoryID int64) error
}
