package ports

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/maboss/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunArtifactStoreContract runs a suite of tests to verify that an ArtifactStore
// implementation adheres to the defined interface contract.
func RunArtifactStoreContract(t *testing.T, store ArtifactStore) {
	ctx := context.Background()

	t.Run("Put and Get", func(t *testing.T) {
		for _, kind := range domain.ArtifactKinds {
			data := "t,A,B\n0,1,0\n# " + kind.String() + "\n"
			require.NoError(t, store.Put(ctx, kind.Suffix(), data), "Put should not return error")

			got, err := store.Get(ctx, kind.Suffix())
			require.NoError(t, err, "Get should not return error")
			assert.Equal(t, data, got)
		}
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "_missing.csv")
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "_fp.csv", "first"))
		require.NoError(t, store.Put(ctx, "_fp.csv", "second"))

		got, err := store.Get(ctx, "_fp.csv")
		require.NoError(t, err)
		assert.Equal(t, "second", got)
	})

	t.Run("Binary Safe", func(t *testing.T) {
		data := strings.Repeat("\x00\r\n\xff", 64)
		require.NoError(t, store.Put(ctx, "_traj.txt", data))

		got, err := store.Get(ctx, "_traj.txt")
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})
}
