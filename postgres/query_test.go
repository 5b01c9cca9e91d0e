package postgres

import (
	"testing"

	"github.com/fwojciec/furniq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTermQuery(t *testing.T) {
	t.Parallel()

	brand := furniq.CategoryBrand
	product := furniq.CategoryProductName
	style := furniq.CategoryStyle
	name := "Bolzan"

	t.Run("brands", func(t *testing.T) {
		t.Parallel()

		q, args, err := buildTermQuery(furniq.TermFilter{Category: &brand})

		require.NoError(t, err)
		assert.Equal(t, `SELECT t.id::text, t.name FROM "Brand" AS t WHERE TRUE ORDER BY t.name`, q)
		assert.Empty(t, args)
	})

	t.Run("published products with filters", func(t *testing.T) {
		t.Parallel()

		q, args, err := buildTermQuery(furniq.TermFilter{Category: &product, Name: &name, Limit: 10, Offset: 20})

		require.NoError(t, err)
		assert.Equal(t, `SELECT t.id::text, t.name FROM "product" AS t WHERE t."isPublished" = TRUE AND lower(t.name) = $1 ORDER BY t.name LIMIT $2 OFFSET $3`, q)
		assert.Equal(t, []any{"bolzan", 10, 20}, args)
	})

	t.Run("name filter keeps accents", func(t *testing.T) {
		t.Parallel()

		accented := "  Sillón España "
		_, args, err := buildTermQuery(furniq.TermFilter{Category: &brand, Name: &accented})

		require.NoError(t, err)
		assert.Equal(t, []any{"sillón españa"}, args)
	})

	t.Run("requires a catalog category", func(t *testing.T) {
		t.Parallel()

		_, _, err := buildTermQuery(furniq.TermFilter{})
		assert.Equal(t, furniq.EINVALID, furniq.ErrorCode(err))

		_, _, err = buildTermQuery(furniq.TermFilter{Category: &style})
		assert.Equal(t, furniq.EINVALID, furniq.ErrorCode(err))
	})
}
