// Package storetest holds the conformance suite every Store backend must pass.
// Backend test packages call Run with a factory producing a fresh, empty store.
package storetest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaezeumeh/thriftline-backend/internal/storage"
	"github.com/adaezeumeh/thriftline-backend/pkg/db/models"
	"github.com/adaezeumeh/thriftline-backend/pkg/enums"
	pkgerrors "github.com/adaezeumeh/thriftline-backend/pkg/errors"
)

// Factory builds a fresh, empty store for one subtest.
type Factory func(t *testing.T) storage.Store

// Run executes the full conformance suite against the backend under test.
func Run(t *testing.T, factory Factory) {
	t.Run("user uniqueness", func(t *testing.T) { testUserUniqueness(t, factory(t)) })
	t.Run("user lookup is case-insensitive", func(t *testing.T) { testUserLookup(t, factory(t)) })
	t.Run("product round-trip", func(t *testing.T) { testProductRoundTrip(t, factory(t)) })
	t.Run("product patch", func(t *testing.T) { testProductPatch(t, factory(t)) })
	t.Run("product delete cascades to carts", func(t *testing.T) { testDeleteCascade(t, factory(t)) })
	t.Run("filters compose conjunctively", func(t *testing.T) { testFilters(t, factory(t)) })
	t.Run("categories", func(t *testing.T) { testCategories(t, factory(t)) })
	t.Run("cart accumulates quantity", func(t *testing.T) { testCartAccumulate(t, factory(t)) })
	t.Run("cart rejects missing product", func(t *testing.T) { testCartMissingProduct(t, factory(t)) })
	t.Run("cart ownership", func(t *testing.T) { testCartOwnership(t, factory(t)) })
	t.Run("cart listing joins products", func(t *testing.T) { testCartListing(t, factory(t)) })
	t.Run("concurrent adds collapse to one row", func(t *testing.T) { testCartConcurrentAdds(t, factory(t)) })
}

func seedUser(t *testing.T, store storage.Store, username, email string) int64 {
	t.Helper()
	user, err := store.CreateUser(context.Background(), storage.NewUser{
		Username:     username,
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdHNhbHQ$aGFzaGhhc2g",
		FullName:     "Test Shopper",
	})
	require.NoError(t, err)
	return user.ID
}

func seedProduct(t *testing.T, store storage.Store, input storage.NewProduct) int64 {
	t.Helper()
	if input.Condition == "" {
		input.Condition = enums.ProductConditionGood
	}
	product, err := store.CreateProduct(context.Background(), input)
	require.NoError(t, err)
	return product.ID
}

func testUserUniqueness(t *testing.T, store storage.Store) {
	ctx := context.Background()
	seedUser(t, store, "adaeze", "adaeze@example.com")

	_, err := store.CreateUser(ctx, storage.NewUser{
		Username: "ADAEZE", Email: "other@example.com", PasswordHash: "x", FullName: "Dup",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict), "duplicate username must map to a conflict, got %v", err)

	_, err = store.CreateUser(ctx, storage.NewUser{
		Username: "someoneelse", Email: "Adaeze@Example.com", PasswordHash: "x", FullName: "Dup",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict), "duplicate email must map to a conflict, got %v", err)
}

func testUserLookup(t *testing.T, store storage.Store) {
	ctx := context.Background()
	id := seedUser(t, store, "chidi", "chidi@example.com")

	byName, err := store.GetUserByUsername(ctx, "CHIDI")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)

	byEmail, err := store.GetUserByEmail(ctx, "Chidi@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)

	_, err = store.GetUserByUsername(ctx, "nobody")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = store.GetUser(ctx, 9999)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func testProductRoundTrip(t *testing.T, store storage.Store) {
	ctx := context.Background()
	sellerID := seedUser(t, store, "seller", "seller@example.com")

	created, err := store.CreateProduct(ctx, storage.NewProduct{
		Title:              "Vintage Oak Chair",
		Description:        "Solid oak, lightly scuffed arms",
		Category:           "Furniture",
		Condition:          enums.ProductConditionLikeNew,
		Price:              22500,
		OriginalPrice:      40000,
		DiscountPercentage: 44,
		Location:           "Lagos",
		IsVerified:         true,
		ImageURL:           "https://img.example.com/chair.jpg",
		SellerID:           sellerID,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := store.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vintage Oak Chair", fetched.Title)
	assert.Equal(t, enums.ProductConditionLikeNew, fetched.Condition)
	assert.Equal(t, 22500.0, fetched.Price)
	assert.Equal(t, sellerID, fetched.SellerID)

	_, err = store.GetProduct(ctx, created.ID+1000)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func testProductPatch(t *testing.T, store storage.Store) {
	ctx := context.Background()
	id := seedProduct(t, store, storage.NewProduct{
		Title: "Leather Satchel", Category: "Accessories", Price: 9000,
	})

	newPrice := 7500.0
	verified := true
	updated, err := store.UpdateProduct(ctx, id, storage.ProductPatch{
		Price:      &newPrice,
		IsVerified: &verified,
	})
	require.NoError(t, err)
	assert.Equal(t, 7500.0, updated.Price)
	assert.True(t, updated.IsVerified)
	assert.Equal(t, "Leather Satchel", updated.Title, "unset fields must stay untouched")

	_, err = store.UpdateProduct(ctx, id+1000, storage.ProductPatch{Price: &newPrice})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func testDeleteCascade(t *testing.T, store storage.Store) {
	ctx := context.Background()
	userID := seedUser(t, store, "buyer", "buyer@example.com")
	keepID := seedProduct(t, store, storage.NewProduct{Title: "Enamel Teapot", Category: "Kitchen", Price: 4000})
	goneID := seedProduct(t, store, storage.NewProduct{Title: "Cracked Vase", Category: "Decor", Price: 1500})

	_, err := store.AddToCart(ctx, userID, keepID, 1)
	require.NoError(t, err)
	_, err = store.AddToCart(ctx, userID, goneID, 2)
	require.NoError(t, err)

	require.NoError(t, store.DeleteProduct(ctx, goneID))

	_, err = store.GetProduct(ctx, goneID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	lines, err := store.ListCartItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, keepID, lines[0].Product.ID)
}

func testFilters(t *testing.T, store storage.Store) {
	ctx := context.Background()
	chairID := seedProduct(t, store, storage.NewProduct{
		Title: "Vintage Oak Chair", Description: "Solid oak dining chair",
		Category: "Furniture", Condition: enums.ProductConditionLikeNew, Price: 22500,
	})
	speakerID := seedProduct(t, store, storage.NewProduct{
		Title: "Bluetooth Speaker", Description: "Portable, minor scratches",
		Category: "Electronics", Condition: enums.ProductConditionGood, Price: 15800,
	})
	lampID := seedProduct(t, store, storage.NewProduct{
		Title: "Brass Desk Lamp", Description: "Warm vintage glow",
		Category: "Furniture", Condition: enums.ProductConditionGood, Price: 8000,
	})

	all, err := store.ListProducts(ctx, storage.ProductFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 3, "no predicates means no constraint")

	furniture, err := store.ListProducts(ctx, storage.ProductFilters{Category: "Furniture"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{chairID, lampID}, productIDs(furniture))

	// Search is a case-insensitive substring over title OR description.
	vintage, err := store.ListProducts(ctx, storage.ProductFilters{Search: "VINTAGE"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{chairID, lampID}, productIDs(vintage))

	good, err := store.ListProducts(ctx, storage.ProductFilters{Condition: string(enums.ProductConditionGood)})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{speakerID, lampID}, productIDs(good))

	minPrice, maxPrice := 10000.0, 20000.0
	mid, err := store.ListProducts(ctx, storage.ProductFilters{MinPrice: &minPrice, MaxPrice: &maxPrice})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{speakerID}, productIDs(mid))

	// Bounds are inclusive.
	exact := 22500.0
	atBound, err := store.ListProducts(ctx, storage.ProductFilters{MinPrice: &exact, MaxPrice: &exact})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{chairID}, productIDs(atBound))

	conjunct, err := store.ListProducts(ctx, storage.ProductFilters{
		Category:  "Furniture",
		Search:    "vintage",
		Condition: string(enums.ProductConditionLikeNew),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{chairID}, productIDs(conjunct))

	empty, err := store.ListProducts(ctx, storage.ProductFilters{Category: "Toys"})
	require.NoError(t, err)
	assert.Empty(t, empty, "an empty result is not an error")
}

func productIDs(products []models.Product) []int64 {
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func testCategories(t *testing.T, store storage.Store) {
	ctx := context.Background()

	created, err := store.CreateCategory(ctx, storage.NewCategory{
		Name:     "Furniture",
		ImageURL: "https://img.example.com/furniture.jpg",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	_, err = store.CreateCategory(ctx, storage.NewCategory{Name: "Furniture"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	_, err = store.CreateCategory(ctx, storage.NewCategory{Name: "Electronics"})
	require.NoError(t, err)

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func testCartAccumulate(t *testing.T, store storage.Store) {
	ctx := context.Background()
	userID := seedUser(t, store, "buyer", "buyer@example.com")
	productID := seedProduct(t, store, storage.NewProduct{Title: "Wool Scarf", Category: "Accessories", Price: 3000})

	first, err := store.AddToCart(ctx, userID, productID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	second, err := store.AddToCart(ctx, userID, productID, 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "re-adding the same product must merge into the existing row")
	assert.Equal(t, 5, second.Quantity)

	lines, err := store.ListCartItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Item.Quantity)
}

func testCartMissingProduct(t *testing.T, store storage.Store) {
	ctx := context.Background()
	userID := seedUser(t, store, "buyer", "buyer@example.com")

	_, err := store.AddToCart(ctx, userID, 424242, 1)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	lines, err := store.ListCartItems(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, lines, "a failed add must not write a row")
}

func testCartOwnership(t *testing.T, store storage.Store) {
	ctx := context.Background()
	alice := seedUser(t, store, "alice", "alice@example.com")
	mallory := seedUser(t, store, "mallory", "mallory@example.com")
	productID := seedProduct(t, store, storage.NewProduct{Title: "Denim Jacket", Category: "Clothing", Price: 6500})

	item, err := store.AddToCart(ctx, alice, productID, 1)
	require.NoError(t, err)

	_, err = store.UpdateCartItem(ctx, item.ID, mallory, 10)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), "ownership miss must read as absence")

	// Removal by a non-owner is a silent no-op; the row survives.
	require.NoError(t, store.RemoveFromCart(ctx, item.ID, mallory))

	lines, err := store.ListCartItems(ctx, alice)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Item.Quantity)

	updated, err := store.UpdateCartItem(ctx, item.ID, alice, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	require.NoError(t, store.RemoveFromCart(ctx, item.ID, alice))
	lines, err = store.ListCartItems(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func testCartListing(t *testing.T, store storage.Store) {
	ctx := context.Background()
	userID := seedUser(t, store, "buyer", "buyer@example.com")
	otherID := seedUser(t, store, "other", "other@example.com")
	chairID := seedProduct(t, store, storage.NewProduct{Title: "Vintage Oak Chair", Category: "Furniture", Price: 22500})
	speakerID := seedProduct(t, store, storage.NewProduct{Title: "Bluetooth Speaker", Category: "Electronics", Price: 15800})

	_, err := store.AddToCart(ctx, userID, chairID, 1)
	require.NoError(t, err)
	_, err = store.AddToCart(ctx, userID, speakerID, 2)
	require.NoError(t, err)
	_, err = store.AddToCart(ctx, otherID, chairID, 7)
	require.NoError(t, err)

	lines, err := store.ListCartItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	byProduct := make(map[int64]storage.CartLine, len(lines))
	for _, line := range lines {
		assert.Equal(t, userID, line.Item.UserID)
		assert.Equal(t, line.Item.ProductID, line.Product.ID)
		byProduct[line.Product.ID] = line
	}
	assert.Equal(t, "Vintage Oak Chair", byProduct[chairID].Product.Title)
	assert.Equal(t, 2, byProduct[speakerID].Item.Quantity)
}

func testCartConcurrentAdds(t *testing.T, store storage.Store) {
	ctx := context.Background()
	userID := seedUser(t, store, "buyer", "buyer@example.com")
	productID := seedProduct(t, store, storage.NewProduct{Title: "Record Player", Category: "Electronics", Price: 30000})

	const adds = 16
	var wg sync.WaitGroup
	errs := make(chan error, adds)
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.AddToCart(ctx, userID, productID, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	lines, err := store.ListCartItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1, "concurrent adds must collapse to one row")
	assert.Equal(t, adds, lines[0].Item.Quantity)
}
