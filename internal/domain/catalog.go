package domain

// Catalog is the static content the backend is seeded with: companions to
// pick from, the accessory rewards and the quests with their onsens.
type Catalog struct {
	Partners    []Partner   `json:"partners,omitempty" toml:"partners"`
	Accessories []Accessory `json:"accessories,omitempty" toml:"accessories"`
	Quests      []QuestSeed `json:"quests,omitempty" toml:"quests"`
}

// Partner is a selectable companion species
type Partner struct {
	ID   int64  `json:"id" toml:"id"`
	Name string `json:"name" toml:"name"`
}

// QuestSeed is a quest definition together with its qualifying onsens
type QuestSeed struct {
	ID     int64            `json:"id" toml:"id"`
	Name   string           `json:"name" toml:"name"`
	Onsens []QuestOnsenSeed `json:"onsens,omitempty" toml:"onsens"`
}

// QuestOnsenSeed pins one place to a seeded quest
type QuestOnsenSeed struct {
	PlaceID string   `json:"place_id" toml:"place_id"`
	Lat     *float64 `json:"lat,omitempty" toml:"lat"`
	Lng     *float64 `json:"lng,omitempty" toml:"lng"`
}
