package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/onsenkatsu/internal/repository"
)

var (
	_ repository.Accessory = (*AccessoryRepository)(nil)
	_ repository.Quest     = (*QuestRepository)(nil)
	_ repository.Visit     = (*VisitRepository)(nil)
	_ repository.Companion = (*CompanionRepository)(nil)
	_ repository.Profile   = (*ProfileRepository)(nil)
)

// Store bundles every repository over one pool
type Store struct {
	Accessories *AccessoryRepository
	Quests      *QuestRepository
	Visits      *VisitRepository
	Companions  *CompanionRepository
	Profiles    *ProfileRepository
	Catalog     *CatalogRepository
}

// NewStore creates all repositories
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{
		Accessories: NewAccessoryRepository(db),
		Quests:      NewQuestRepository(db),
		Visits:      NewVisitRepository(db),
		Companions:  NewCompanionRepository(db),
		Profiles:    NewProfileRepository(db),
		Catalog:     NewCatalogRepository(db),
	}
}
