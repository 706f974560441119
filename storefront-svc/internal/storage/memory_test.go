package storage_test

import (
	"errors"
	"testing"

	"foodhub/storefront-svc/internal/domain"
	"foodhub/storefront-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed() domain.Seed {
	original := int64(60000)
	return domain.Seed{
		Restaurants: []domain.Restaurant{
			{ID: "r1", Name: "Pho Hanoi", Status: domain.RestaurantActive},
			{ID: "r2", Name: "Bun Cha", Status: domain.RestaurantInactive},
		},
		Foods: []domain.Food{
			{ID: "f1", Name: "Pho Bo", Price: 55000, OriginalPrice: &original, RestaurantID: "r1"},
			{ID: "f2", Name: "Bun Cha", Price: 45000, RestaurantID: "r2"},
		},
		Categories: []domain.Category{{ID: "c1", Name: "Noodles"}},
		Vouchers: []domain.Voucher{
			{ID: "v1", Code: "FREESHIP15", DiscountValue: 15000, MinOrderValue: 100000, Type: domain.VoucherFreeship},
		},
		Reviews: []domain.Review{
			{ID: "rv1", FoodID: "f1", Rating: 5, Images: []string{"a.jpg"}},
		},
		Users: []domain.User{{ID: "u1", Name: "An", Email: "an@example.com", Role: domain.RoleUser}},
		Orders: []domain.Order{
			{ID: "o1", UserID: "u1", FoodID: "f1", Status: domain.OrderPending},
		},
	}
}

func TestMemoryStore_CopyOnRead(t *testing.T) {
	store := storage.NewMemoryStore(seed())

	foods := store.Foods()
	foods[0].Name = "mutated"
	*foods[0].OriginalPrice = 1

	again, ok := store.FoodByID("f1")
	require.True(t, ok)
	assert.Equal(t, "Pho Bo", again.Name)
	assert.Equal(t, int64(60000), *again.OriginalPrice)

	reviews := store.ReviewsByFood("f1")
	reviews[0].Images[0] = "mutated.jpg"
	assert.Equal(t, "a.jpg", store.Reviews()[0].Images[0])
}

func TestMemoryStore_SeedIsCopied(t *testing.T) {
	s := seed()
	store := storage.NewMemoryStore(s)

	s.Restaurants[0].Name = "mutated"
	r, ok := store.RestaurantByID("r1")
	require.True(t, ok)
	assert.Equal(t, "Pho Hanoi", r.Name)
}

func TestMemoryStore_CreateInsertsAtHead(t *testing.T) {
	store := storage.NewMemoryStore(seed())

	created := store.CreateOrder(domain.Order{ID: "o2", Status: domain.OrderPending})
	assert.Equal(t, "o2", created.ID)

	orders := store.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "o2", orders[0].ID)
	assert.Equal(t, "o1", orders[1].ID)

	_, err := store.CreateRestaurant(domain.Restaurant{ID: "r3", Name: "Com Tam"})
	require.NoError(t, err)
	assert.Equal(t, "r3", store.Restaurants()[0].ID)
}

func TestMemoryStore_UpdateAndDeleteNotFound(t *testing.T) {
	store := storage.NewMemoryStore(seed())
	name := "x"

	tests := []struct {
		name string
		call func() error
	}{
		{name: "update restaurant", call: func() error {
			_, err := store.UpdateRestaurant("missing", domain.RestaurantPatch{Name: &name})
			return err
		}},
		{name: "restaurant status", call: func() error {
			_, err := store.SetRestaurantStatus("missing", domain.RestaurantActive)
			return err
		}},
		{name: "delete restaurant", call: func() error { return store.DeleteRestaurant("missing") }},
		{name: "update food", call: func() error {
			_, err := store.UpdateFood("missing", domain.FoodPatch{Name: &name})
			return err
		}},
		{name: "delete food", call: func() error { return store.DeleteFood("missing") }},
		{name: "delete category", call: func() error { return store.DeleteCategory("missing") }},
		{name: "update voucher", call: func() error {
			_, err := store.UpdateVoucher("missing", domain.VoucherPatch{Title: &name})
			return err
		}},
		{name: "delete voucher", call: func() error { return store.DeleteVoucher("missing") }},
		{name: "update user", call: func() error {
			_, err := store.UpdateUser("missing", domain.UserPatch{Name: &name})
			return err
		}},
		{name: "delete user", call: func() error { return store.DeleteUser("missing") }},
		{name: "update order", call: func() error {
			_, err := store.UpdateOrder("missing", func(*domain.Order) error { return nil })
			return err
		}},
		{name: "delete order", call: func() error { return store.DeleteOrder("missing") }},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.ErrorIs(t, testCase.call(), storage.ErrNotFound)
		})
	}
}

func TestMemoryStore_UpdateMergesPatch(t *testing.T) {
	store := storage.NewMemoryStore(seed())
	address := "12 Hang Bac"

	updated, err := store.UpdateRestaurant("r1", domain.RestaurantPatch{Address: &address})
	require.NoError(t, err)
	assert.Equal(t, "Pho Hanoi", updated.Name)
	assert.Equal(t, address, updated.Address)
	assert.Equal(t, domain.RestaurantActive, updated.Status)
}

func TestMemoryStore_DeleteRestaurantKeepsFoods(t *testing.T) {
	store := storage.NewMemoryStore(seed())

	require.NoError(t, store.DeleteRestaurant("r1"))

	_, ok := store.RestaurantByID("r1")
	assert.False(t, ok)
	_, ok = store.FoodByID("f1")
	assert.True(t, ok)
	assert.Len(t, store.FoodsByRestaurant("r1"), 1)
}

func TestMemoryStore_UpdateOrderIsAtomic(t *testing.T) {
	store := storage.NewMemoryStore(seed())
	boom := errors.New("boom")

	_, err := store.UpdateOrder("o1", func(o *domain.Order) error {
		o.Status = domain.OrderCancelled
		return boom
	})
	assert.ErrorIs(t, err, boom)

	o, _ := store.OrderByID("o1")
	assert.Equal(t, domain.OrderPending, o.Status)

	updated, err := store.UpdateOrder("o1", func(o *domain.Order) error {
		o.Status = domain.OrderDelivering
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderDelivering, updated.Status)
	o, _ = store.OrderByID("o1")
	assert.Equal(t, domain.OrderDelivering, o.Status)
}

func TestMemoryStore_Lookups(t *testing.T) {
	store := storage.NewMemoryStore(seed())

	v, ok := store.VoucherByCode(" freeship15 ")
	require.True(t, ok)
	assert.Equal(t, "v1", v.ID)

	_, ok = store.VoucherByCode("NOPE")
	assert.False(t, ok)

	u, ok := store.UserByEmail("AN@example.com")
	require.True(t, ok)
	assert.Equal(t, "u1", u.ID)

	assert.Empty(t, store.ReviewsByFood("f2"))
	assert.NotNil(t, store.ReviewsByFood("f2"))
}

func TestMemoryStore_Snapshot(t *testing.T) {
	store := storage.NewMemoryStore(seed())

	snap := store.Snapshot()
	snap.Orders[0].Status = domain.OrderCancelled

	assert.Len(t, snap.Restaurants, 2)
	assert.Len(t, snap.Foods, 2)
	o, _ := store.OrderByID("o1")
	assert.Equal(t, domain.OrderPending, o.Status)
}

func TestMemoryStore_CreateRejectsExistingID(t *testing.T) {
	store := storage.NewMemoryStore(seed())

	_, err := store.CreateRestaurant(domain.Restaurant{ID: "r1", Name: "Again"})
	assert.ErrorIs(t, err, storage.ErrDuplicateID)
	_, err = store.CreateFood(domain.Food{ID: "f2", Name: "Again"})
	assert.ErrorIs(t, err, storage.ErrDuplicateID)
	_, err = store.CreateCategory(domain.Category{ID: "c1", Name: "Again"})
	assert.ErrorIs(t, err, storage.ErrDuplicateID)
	_, err = store.CreateVoucher(domain.Voucher{ID: "v1", Code: "AGAIN"})
	assert.ErrorIs(t, err, storage.ErrDuplicateID)
	_, err = store.CreateUser(domain.User{ID: "u1", Name: "Again"})
	assert.ErrorIs(t, err, storage.ErrDuplicateID)

	assert.Len(t, store.Restaurants(), 2)
	assert.Len(t, store.Foods(), 2)
	assert.Len(t, store.Categories(), 1)
	assert.Len(t, store.Vouchers(), 1)
	assert.Len(t, store.Users(), 1)

	r, ok := store.RestaurantByID("r1")
	require.True(t, ok)
	assert.Equal(t, "Pho Hanoi", r.Name)
}
