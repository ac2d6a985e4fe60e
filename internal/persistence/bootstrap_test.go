package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/dynasty-timeline/internal/model"
	"github.com/palemoky/dynasty-timeline/internal/testutil"
)

func TestBootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("empty backend is seeded", func(t *testing.T) {
		s, found, err := Bootstrap(ctx, NewMemoryBackend(), BootstrapOptions{
			Prefix:       DefaultPrefix,
			SeedSample:   true,
			DefaultLevel: model.ValidationStrict,
		})
		require.NoError(t, err)
		assert.False(t, found)
		assert.Len(t, s.Dynasties(), 6)
		assert.Equal(t, model.ValidationStrict, s.Settings().ValidationLevel)
	})

	t.Run("empty backend without seeding", func(t *testing.T) {
		s, found, err := Bootstrap(ctx, NewMemoryBackend(), BootstrapOptions{Prefix: DefaultPrefix})
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, s.Dynasties())
		assert.Equal(t, model.ValidationWarn, s.Settings().ValidationLevel)
	})

	t.Run("stored data wins over seeding and defaults", func(t *testing.T) {
		b := NewMemoryBackend()
		saved := testutil.NewSampleStore(t)
		_, err := saved.UpdateSettings(func(us *model.UISettings) error {
			us.ValidationLevel = model.ValidationOff
			return nil
		})
		require.NoError(t, err)
		require.NoError(t, saved.DeleteDynasty("id-1"))
		require.NoError(t, Save(ctx, b, DefaultPrefix, saved.Snapshot()))

		s, found, err := Bootstrap(ctx, b, BootstrapOptions{
			Prefix:       DefaultPrefix,
			SeedSample:   true,
			DefaultLevel: model.ValidationStrict,
		})
		require.NoError(t, err)
		assert.True(t, found)
		assert.Len(t, s.Dynasties(), 5)
		assert.Equal(t, model.ValidationOff, s.Settings().ValidationLevel)
	})

	t.Run("collections without settings take the default level", func(t *testing.T) {
		b := NewMemoryBackend()
		require.NoError(t, b.Put(ctx, DefaultPrefix+KeyDynasties, []byte(`[{"id":"d1","name":"Lodi Dynasty","startYear":1451,"endYear":1526}]`)))

		s, found, err := Bootstrap(ctx, b, BootstrapOptions{Prefix: DefaultPrefix, DefaultLevel: model.ValidationStrict})
		require.NoError(t, err)
		assert.True(t, found)
		assert.Len(t, s.Dynasties(), 1)
		assert.Equal(t, model.ValidationStrict, s.Settings().ValidationLevel)
	})
}
