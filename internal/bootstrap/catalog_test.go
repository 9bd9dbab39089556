package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/onsenkatsu/internal/database/postgres"
	"github.com/osse101/onsenkatsu/internal/domain"
)

type recordingWriter struct {
	got *domain.Catalog
	err error
}

func (r *recordingWriter) ApplyCatalog(ctx context.Context, c domain.Catalog) (postgres.CatalogCounts, error) {
	r.got = &c
	if r.err != nil {
		return postgres.CatalogCounts{}, r.err
	}
	onsens := 0
	for _, q := range c.Quests {
		onsens += len(q.Onsens)
	}
	return postgres.CatalogCounts{
		Partners:    len(c.Partners),
		Accessories: len(c.Accessories),
		Quests:      len(c.Quests),
		QuestOnsens: onsens,
	}, nil
}

func TestSyncCatalog_EmbeddedDefault(t *testing.T) {
	w := &recordingWriter{}

	counts, err := SyncCatalog(context.Background(), w, "")

	require.NoError(t, err)
	require.NotNil(t, w.got)
	assert.NotZero(t, counts.Accessories)
	assert.NotZero(t, counts.Quests)
	assert.Equal(t, len(w.got.Quests), counts.Quests)
}

func TestSyncCatalog_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[accessories]]
id = 1
name = "手ぬぐい"

[[quests]]
id = 1
name = "箱根めぐり"

  [[quests.onsens]]
  place_id = "ChIJ-yumoto"
`), 0o600))
	w := &recordingWriter{}

	counts, err := SyncCatalog(context.Background(), w, path)

	require.NoError(t, err)
	assert.Equal(t, 1, counts.Accessories)
	assert.Equal(t, 1, counts.QuestOnsens)
}

func TestSyncCatalog_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		w := &recordingWriter{}
		_, err := SyncCatalog(context.Background(), w, filepath.Join(t.TempDir(), "nope.toml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFailedLoadCatalog)
		assert.Nil(t, w.got)
	})

	t.Run("write failure", func(t *testing.T) {
		w := &recordingWriter{err: errors.New("tx aborted")}
		_, err := SyncCatalog(context.Background(), w, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFailedSyncCatalog)
	})
}
