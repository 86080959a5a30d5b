package models_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mytheresa/catalog-api/app/config"
	"github.com/mytheresa/catalog-api/app/database"
	"github.com/mytheresa/catalog-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(
		config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db
}

func TestRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := models.NewCategoriesRepository(openTestDB(t))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Len(t, list, 0)

	category := &models.Category{Name: "Electronics"}
	require.NoError(t, repo.Create(ctx, category))
	assert.Equal(t, uint(1), category.ID)

	found, err := repo.Find(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Electronics", found.Name)

	found.Name = "Home"
	require.NoError(t, repo.Update(ctx, found))

	updated, err := repo.Find(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, category.ID, updated.ID)
	assert.Equal(t, "Home", updated.Name)
	assert.Equal(t, category.CreatedAt.Unix(), updated.CreatedAt.Unix())

	require.NoError(t, repo.Delete(ctx, category.ID))

	_, err = repo.Find(ctx, category.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRepositoryListOrder(t *testing.T) {
	ctx := context.Background()
	repo := models.NewCategoriesRepository(openTestDB(t))

	for _, name := range []string{"Shoes", "Bags", "Clothing"} {
		require.NoError(t, repo.Create(ctx, &models.Category{Name: name}))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Shoes", list[0].Name)
	assert.Equal(t, "Clothing", list[2].Name)
}

func TestRepositoryMissingRecord(t *testing.T) {
	ctx := context.Background()
	repo := models.NewCategoriesRepository(openTestDB(t))

	_, err := repo.Find(ctx, 42)
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = repo.Update(ctx, &models.Category{ID: 42, Name: "Ghost"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = repo.Delete(ctx, 42)
	assert.ErrorIs(t, err, models.ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 0, "update of a missing id must not insert")
}

func TestRepositoryDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := models.NewUsersRepository(openTestDB(t))

	require.NoError(t, repo.Create(ctx, &models.User{Name: "Ann", Email: "ann@example.com", Password: "hash"}))

	err := repo.Create(ctx, &models.User{Name: "Other Ann", Email: "ann@example.com", Password: "hash"})
	assert.ErrorIs(t, err, models.ErrDuplicate)

	bob := &models.User{Name: "Bob", Email: "bob@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, bob))
	bob.Email = "ann@example.com"
	assert.ErrorIs(t, repo.Update(ctx, bob), models.ErrDuplicate)
}

func TestProductsRepositoryListFiltered(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	categories := models.NewCategoriesRepository(db)
	products := models.NewProductsRepository(db)

	shoes := &models.Category{Name: "Shoes"}
	bags := &models.Category{Name: "Bags"}
	require.NoError(t, categories.Create(ctx, shoes))
	require.NoError(t, categories.Create(ctx, bags))

	seed := []models.Product{
		{Name: "Sneaker", Price: decimal.RequireFromString("79.90"), CategoryID: &shoes.ID},
		{Name: "Boot", Price: decimal.RequireFromString("149.00"), CategoryID: &shoes.ID},
		{Name: "Tote", Price: decimal.RequireFromString("39.50"), CategoryID: &bags.ID},
		{Name: "Gift card", Price: decimal.RequireFromString("25.00")},
	}
	for i := range seed {
		require.NoError(t, products.Create(ctx, &seed[i]))
	}

	price := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	testCases := []struct {
		name     string
		filters  models.ProductFilters
		expected []string
	}{
		{name: "No filters", expected: []string{"Sneaker", "Boot", "Tote", "Gift card"}},
		{name: "By category", filters: models.ProductFilters{CategoryID: &shoes.ID}, expected: []string{"Sneaker", "Boot"}},
		{name: "By price", filters: models.ProductFilters{PriceLessThan: price("50")}, expected: []string{"Tote", "Gift card"}},
		{
			name:     "By category and price",
			filters:  models.ProductFilters{CategoryID: &shoes.ID, PriceLessThan: price("100")},
			expected: []string{"Sneaker"},
		},
		{name: "No match", filters: models.ProductFilters{PriceLessThan: price("1")}, expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := products.ListFiltered(ctx, tc.filters)
			require.NoError(t, err)

			names := make([]string, len(res))
			for i, p := range res {
				names[i] = p.Name
			}
			assert.Equal(t, tc.expected, names)
		})
	}
}

func TestProductPricePrecision(t *testing.T) {
	ctx := context.Background()
	products := models.NewProductsRepository(openTestDB(t))

	product := &models.Product{Name: "Scarf", Description: strings.Repeat("x", 10), Price: decimal.RequireFromString("19.99"), Stock: 3}
	require.NoError(t, products.Create(ctx, product))

	found, err := products.Find(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("19.99").Equal(found.Price), "got %s", found.Price)
	assert.Equal(t, 3, found.Stock)
	assert.Nil(t, found.CategoryID)
}

func TestDeletingCategoryDetachesProducts(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	categories := models.NewCategoriesRepository(db)
	products := models.NewProductsRepository(db)

	shoes := &models.Category{Name: "Shoes"}
	require.NoError(t, categories.Create(ctx, shoes))
	boot := &models.Product{Name: "Boot", Price: decimal.NewFromInt(100), CategoryID: &shoes.ID}
	require.NoError(t, products.Create(ctx, boot))

	require.NoError(t, categories.Delete(ctx, shoes.ID))

	found, err := products.Find(ctx, boot.ID)
	require.NoError(t, err)
	assert.Nil(t, found.CategoryID)
}
