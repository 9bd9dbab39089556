package accessory

// Log messages
const (
	LogMsgOwnedLookupFailed  = "Could not load owned accessories, treating as none owned"
	LogMsgAllOwned           = "User owns the whole catalog, picking from all accessories"
	LogMsgAccessoryGranted   = "Accessory granted"
	LogMsgAccessoryDuplicate = "Picked accessory already owned, nothing granted"
	LogMsgAccessoryEquipped  = "Accessory equipped"
	LogMsgAccessoriesUnequip = "Accessories unequipped"
	LogMsgEventPublishFailed = "Failed to publish accessory event"
)
