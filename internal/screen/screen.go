// Package screen models the client's screens as an explicit state machine.
package screen

import (
	"fmt"
	"strings"
)

// Screen is one presentation state
type Screen int

const (
	Title Screen = iota
	AuthError
	NameInput
	CharacterSelect
	Home
	StampRally
	QuestDetail
	Decoration
	LocationCheck
	Timer
	StampAcquisition
	Result
	Debug
)

var names = map[Screen]string{
	Title:            "title",
	AuthError:        "auth_error",
	NameInput:        "name_input",
	CharacterSelect:  "character_select",
	Home:             "home",
	StampRally:       "stamp_rally",
	QuestDetail:      "quest_detail",
	Decoration:       "decoration",
	LocationCheck:    "location_check",
	Timer:            "timer",
	StampAcquisition: "stamp_acquisition",
	Result:           "result",
	Debug:            "debug",
}

func (s Screen) String() string {
	if n, ok := names[s]; ok {
		return n
	}
	return fmt.Sprintf("screen(%d)", int(s))
}

// Parse resolves a screen name
func Parse(name string) (Screen, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range names {
		if n == name {
			return s, nil
		}
	}
	return Title, fmt.Errorf("unknown screen %q", name)
}

// MarshalText implements encoding.TextMarshaler so state files store names
func (s Screen) MarshalText() ([]byte, error) {
	if _, ok := names[s]; !ok {
		return nil, fmt.Errorf("unknown screen %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Screen) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
