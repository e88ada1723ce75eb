package productrepo_test

import (
	"testing"

	"printshop/internal/adapters/out/postgres/productrepo"
	"printshop/internal/adapters/out/postgres/sqlitetest"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/product"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository(t *testing.T) {
	t.Run("steps keep their order", func(t *testing.T) {
		repo := productrepo.NewGormProductRepository(sqlitetest.Open(t))
		p, err := product.NewProduct(kernel.NewUUID(), "Poster", "A1 glossy", []string{"Design", "Print", "Cut", "Packaging"})
		require.NoError(t, err)

		require.NoError(t, repo.Add(t.Context(), p))

		got, err := repo.Get(t.Context(), p.ID())
		require.NoError(t, err)
		assert.Equal(t, []string{"Design", "Print", "Cut", "Packaging"}, got.Steps())
		require.NotNil(t, got.Description())
		assert.Equal(t, "A1 glossy", *got.Description())
	})

	t.Run("product without steps round trips", func(t *testing.T) {
		repo := productrepo.NewGormProductRepository(sqlitetest.Open(t))
		p, err := product.NewProduct(kernel.NewUUID(), "Gift card", "", nil)
		require.NoError(t, err)

		require.NoError(t, repo.Add(t.Context(), p))

		got, err := repo.Get(t.Context(), p.ID())
		require.NoError(t, err)
		assert.False(t, got.HasSteps())
		assert.Nil(t, got.Description())
	})

	t.Run("update replaces name, description and steps", func(t *testing.T) {
		repo := productrepo.NewGormProductRepository(sqlitetest.Open(t))
		p, err := product.NewProduct(kernel.NewUUID(), "Flyer", "A5", []string{"Print"})
		require.NoError(t, err)
		require.NoError(t, repo.Add(t.Context(), p))

		require.NoError(t, p.Update("Flyer A4", "", []string{"Print", "Fold"}))
		require.NoError(t, repo.Update(t.Context(), p))

		got, err := repo.Get(t.Context(), p.ID())
		require.NoError(t, err)
		assert.Equal(t, "Flyer A4", got.Name())
		assert.Nil(t, got.Description())
		assert.Equal(t, []string{"Print", "Fold"}, got.Steps())
	})

	t.Run("list is ordered by name", func(t *testing.T) {
		repo := productrepo.NewGormProductRepository(sqlitetest.Open(t))
		for _, name := range []string{"Stickers", "Banner", "Menu"} {
			p, err := product.NewProduct(kernel.NewUUID(), name, "", []string{"Print"})
			require.NoError(t, err)
			require.NoError(t, repo.Add(t.Context(), p))
		}

		products, err := repo.List(t.Context())
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, "Banner", products[0].Name())
		assert.Equal(t, "Stickers", products[2].Name())
	})

	t.Run("unknown product", func(t *testing.T) {
		repo := productrepo.NewGormProductRepository(sqlitetest.Open(t))
		p, err := product.NewProduct(kernel.NewUUID(), "Flyer", "", nil)
		require.NoError(t, err)

		require.ErrorIs(t, repo.Update(t.Context(), p), errs.ErrObjectNotFound)
		require.ErrorIs(t, repo.Delete(t.Context(), p.ID()), errs.ErrObjectNotFound)
	})
}
