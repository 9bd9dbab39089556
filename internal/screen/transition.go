package screen

import (
	"fmt"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// Payload is the typed data a transition carries to its destination
type Payload interface {
	destination() Screen
}

// QuestPayload opens one quest's onsen list
type QuestPayload struct {
	QuestID int64
}

func (QuestPayload) destination() Screen { return QuestDetail }

// LocationPayload carries the onsen the user is checking in at
type LocationPayload struct {
	Place domain.Place
}

func (LocationPayload) destination() Screen { return Timer }

// ResultPayload carries a finished session to the reward screens
type ResultPayload struct {
	Visit domain.VisitResult
}

func (ResultPayload) destination() Screen { return StampAcquisition }

// transitions lists the legal edges. AuthError is reachable from anywhere
// and tab targets from any main screen; both are handled in Allowed.
var transitions = map[Screen][]Screen{
	Title:            {Home, NameInput},
	AuthError:        {Title},
	NameInput:        {CharacterSelect, Title},
	CharacterSelect:  {Home, NameInput},
	Home:             {StampRally, Debug, Title},
	StampRally:       {QuestDetail},
	QuestDetail:      {StampRally},
	LocationCheck:    {Timer},
	Timer:            {StampAcquisition, Home},
	StampAcquisition: {Result},
	Result:           {},
	Decoration:       {},
	Debug:            {},
}

// main screens show the tab bar
var mainScreens = map[Screen]bool{
	Home:          true,
	StampRally:    true,
	QuestDetail:   true,
	Decoration:    true,
	LocationCheck: true,
	Result:        true,
	Debug:         true,
}

var tabTargets = map[Screen]bool{
	Home:          true,
	LocationCheck: true,
	Decoration:    true,
}

// Allowed reports whether from -> to is a legal edge
func Allowed(from, to Screen) bool {
	if to == AuthError {
		return true
	}
	if mainScreens[from] && tabTargets[to] {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// payloadRequired maps screens that cannot be entered without data
var payloadRequired = map[Screen]bool{
	QuestDetail:      true,
	Timer:            true,
	StampAcquisition: true,
}

// Transition is one validated move
type Transition struct {
	From    Screen
	To      Screen
	Payload Payload
}

// Validate checks the edge and that the payload matches the destination
func (t Transition) Validate() error {
	if !Allowed(t.From, t.To) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, t.From, t.To)
	}
	if t.Payload == nil {
		if payloadRequired[t.To] {
			return fmt.Errorf("%w: %s requires a payload", domain.ErrInvalidTransition, t.To)
		}
		return nil
	}
	if t.Payload.destination() != t.To {
		return fmt.Errorf("%w: %T cannot enter %s", domain.ErrInvalidTransition, t.Payload, t.To)
	}
	return nil
}
