// Package seed loads the static catalog (partners, accessories, quests) from TOML.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/validation"
)

// DefaultCatalog is the catalog shipped with the dev tool
//
//go:embed catalog.toml
var DefaultCatalog []byte

// Loader parses and validates catalog files
type Loader struct {
	schemas validation.SchemaValidator
}

// NewLoader creates a loader validating against the embedded catalog schema
func NewLoader(schemas validation.SchemaValidator) *Loader {
	return &Loader{schemas: schemas}
}

// LoadFile reads a catalog from path
func (l *Loader) LoadFile(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return l.Load(bytes.NewReader(data))
}

// Load parses a TOML catalog. The raw document is checked against the schema
// before it is decoded so unknown keys are rejected with their path.
func (l *Loader) Load(r io.Reader) (*domain.Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: catalog is not valid TOML: %w", domain.ErrInvalidInput, err)
	}
	if err := l.schemas.ValidateDocument(raw, validation.SchemaCatalog); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	var catalog domain.Catalog
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if err := checkUniqueIDs(&catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func checkUniqueIDs(c *domain.Catalog) error {
	seen := map[string]map[int64]bool{"partners": {}, "accessories": {}, "quests": {}}
	check := func(kind string, id int64) error {
		if seen[kind][id] {
			return fmt.Errorf("%w: duplicate %s id %d", domain.ErrInvalidInput, kind, id)
		}
		seen[kind][id] = true
		return nil
	}

	for _, p := range c.Partners {
		if err := check("partners", p.ID); err != nil {
			return err
		}
	}
	for _, a := range c.Accessories {
		if err := check("accessories", a.ID); err != nil {
			return err
		}
	}
	for _, q := range c.Quests {
		if err := check("quests", q.ID); err != nil {
			return err
		}
	}
	return nil
}
