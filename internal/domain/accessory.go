package domain

import "time"

// Accessory is a cosmetic reward from the fixed catalog.
type Accessory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserAccessory records ownership of an accessory by a user.
type UserAccessory struct {
	UserID      string     `json:"user_id"`
	AccessoryID int64      `json:"accessary_id"`
	Equipped    bool       `json:"equipped"`
	CreatedAt   time.Time  `json:"created_at"`
	Accessory   *Accessory `json:"accessary,omitempty"`
}

// AccessoryGrantResult reports the picked accessory and whether this call granted it.
type AccessoryGrantResult struct {
	Accessory Accessory `json:"accessary"`
	Granted   bool      `json:"granted"`
}
