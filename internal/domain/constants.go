package domain

// Geography
const (
	// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
	EarthRadiusMeters = 6371000.0

	// DefaultMaxOnsenDistanceMeters is how close the user must be to start a session.
	DefaultMaxOnsenDistanceMeters = 150.0

	// DefaultSearchRadiusMeters bounds the nearby onsen search.
	DefaultSearchRadiusMeters = 5000

	// OnsenSearchKeyword is the places keyword used to find onsens.
	OnsenSearchKeyword = "温泉"
)

// Companion progression
const (
	// ExpPerLevelUnit scales the level curve: level n begins at (n-1)^2 * 100 exp.
	ExpPerLevelUnit = 100.0

	// ExpPerMinute is awarded per whole minute of bathing in the in-memory flow.
	ExpPerMinute = 2

	// HappinessPerSession is added per completed session, capped at MaxHappiness.
	HappinessPerSession = 10

	MaxHappiness = 100

	// DefaultCompanionName is offered on first setup.
	DefaultCompanionName = "もちもちうさぎ"
)

// Quest difficulty thresholds by quest id
const (
	BeginnerMaxQuestID     = 3
	IntermediateMaxQuestID = 6
)
