package integration

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mainak-2006/rn-zomato/internal/catalog"
	"github.com/Mainak-2006/rn-zomato/internal/db"
	"github.com/Mainak-2006/rn-zomato/internal/dedup"
	"github.com/Mainak-2006/rn-zomato/internal/testutil"
)

func TestCatalogRepository_AgainstMigratedPostgres(t *testing.T) {
	dsn := testutil.StartPostgres(t)
	logger := log.New(io.Discard, "", 0)

	require.NoError(t, db.RunMigrations(dsn, logger))
	require.NoError(t, db.RunMigrations(dsn, logger), "migrations are re-runnable")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := catalog.NewPostgresRepository(pool)

	restaurants, err := repo.Restaurants(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, restaurants)
	for i := 1; i < len(restaurants); i++ {
		assert.GreaterOrEqual(t, restaurants[i-1].Rating, restaurants[i].Rating)
	}

	foods, err := repo.FoodsByRestaurant(ctx, "La Pino'z Pizza")
	require.NoError(t, err)
	require.Len(t, foods, 2)

	food, err := repo.Food(ctx, "food-margherita")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("199").Equal(food.Price))
	assert.Equal(t, []string{"Pizza"}, food.Category)

	_, err = repo.Food(ctx, "food-does-not-exist")
	require.ErrorIs(t, err, catalog.ErrNotFound)

	svc := catalog.NewService(repo)
	results, err := svc.Search(ctx, "biryani")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, catalog.ResultCategory, results[0].Type)
}

func TestDedupRepository_AgainstMigratedPostgres(t *testing.T) {
	dsn := testutil.StartPostgres(t)
	require.NoError(t, db.RunMigrations(dsn, log.New(io.Discard, "", 0)))

	ctx := context.Background()
	pool, err := db.NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := dedup.NewRepository(pool)

	fresh, err := repo.MarkProcessed(ctx, "foodorder.payment.confirmed.v1", "pay-1")
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = repo.MarkProcessed(ctx, "foodorder.payment.confirmed.v1", "pay-1")
	require.NoError(t, err)
	assert.False(t, fresh)

	fresh, err = repo.MarkProcessed(ctx, "another-consumer", "pay-1")
	require.NoError(t, err)
	assert.True(t, fresh)
}
