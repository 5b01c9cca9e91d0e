package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/fwojciec/furniq"
	"github.com/fwojciec/furniq/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a scratch database named by FURNIQ_TEST_POSTGRES_DSN.
func TestTermSource_Integration(t *testing.T) {
	dsn := os.Getenv("FURNIQ_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("FURNIQ_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	db := postgres.NewDB(dsn)
	require.NoError(t, db.Open(ctx))
	t.Cleanup(func() { db.Close() })

	setup := []string{
		`DROP TABLE IF EXISTS "Brand"`,
		`DROP TABLE IF EXISTS "product"`,
		`CREATE TABLE "Brand" (id SERIAL PRIMARY KEY, name TEXT NOT NULL)`,
		`CREATE TABLE "product" (id SERIAL PRIMARY KEY, name TEXT NOT NULL, "isPublished" BOOLEAN NOT NULL)`,
		`INSERT INTO "Brand" (name) VALUES ('Bolzan'), ('Poltrona Frau')`,
		`INSERT INTO "product" (name, "isPublished") VALUES ('Cloud Nine', TRUE), ('Draft', FALSE)`,
	}
	for _, stmt := range setup {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err, stmt)
	}

	src := postgres.NewTermSource(db)

	brand := furniq.CategoryBrand
	brands, err := src.FindTerms(ctx, furniq.TermFilter{Category: &brand})
	require.NoError(t, err)
	require.Len(t, brands, 2)
	assert.Equal(t, "Bolzan", brands[0].Name)
	assert.NotEmpty(t, brands[0].ID)

	product := furniq.CategoryProductName
	products, err := src.FindTerms(ctx, furniq.TermFilter{Category: &product})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Cloud Nine", products[0].Name)
	assert.Equal(t, furniq.CategoryProductName, products[0].Category)
}
