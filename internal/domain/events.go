package domain

// Event type names published on the in-process bus.
const (
	EventTypeVisitLogged       = "visit.logged"
	EventTypeQuestCompleted    = "quest.completed"
	EventTypeAccessoryGranted  = "accessory.granted"
	EventTypeAccessoryEquipped = "accessory.equipped"
	EventTypeCompanionUpdated  = "companion.updated"
)
