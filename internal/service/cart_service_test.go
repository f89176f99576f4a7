package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mercata/cart-service/internal/domain"
	"github.com/mercata/cart-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	m     sync.RWMutex
	carts map[string]*domain.Cart
	err   error
}

func newMockRepository() *mockRepository {
	return &mockRepository{carts: make(map[string]*domain.Cart)}
}

func (m *mockRepository) Get(_ context.Context, key repository.Key) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	cart, ok := m.carts[key.String()]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	cp := *cart
	return &cp, nil
}

func (m *mockRepository) Set(_ context.Context, key repository.Key, cart *domain.Cart) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	cart.Version++
	cart.SchemaVersion = domain.SchemaVersion
	cart.UpdatedAt = time.Now()
	m.carts[key.String()] = cart
	return cart, nil
}

func (m *mockRepository) Delete(_ context.Context, key repository.Key) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.carts, key.String())
	return nil
}

func (m *mockRepository) Replace(_ context.Context, dst repository.Key, cart *domain.Cart, src repository.Key) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	cart.Version++
	cart.SchemaVersion = domain.SchemaVersion
	cart.UpdatedAt = time.Now()
	m.carts[dst.String()] = cart
	delete(m.carts, src.String())
	return cart, nil
}

func (m *mockRepository) getCart(key repository.Key) *domain.Cart {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.carts[key.String()]
}

func discount(pct float64) *float64 {
	return &pct
}

func TestGetUserCart_Empty(t *testing.T) {
	sut := NewCartService(newMockRepository())

	cart, err := sut.GetUserCart(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, cart)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Total)
}

func TestGetUserCart_MissingID(t *testing.T) {
	sut := NewCartService(newMockRepository())

	_, err := sut.GetUserCart(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetUserCart_RepoError(t *testing.T) {
	mockRepo := newMockRepository()
	mockRepo.err = fmt.Errorf("database error")
	sut := NewCartService(mockRepo)

	_, err := sut.GetUserCart(context.Background(), "u1")
	require.ErrorContains(t, err, "database error")
}

func TestSaveUserCart_ComputesTotal(t *testing.T) {
	sut := NewCartService(newMockRepository())

	items := []domain.CartItem{
		{ID: "a", Price: 100, Discount: discount(20), Quantity: 3},
		{ID: "b", Price: 50, Quantity: 2},
	}
	cart, err := sut.SaveUserCart(context.Background(), "u1", items)
	require.NoError(t, err)
	assert.Equal(t, 340.0, cart.Total)
	assert.Len(t, cart.Items, 2)
}

func TestSaveUserCart_RoundTrip(t *testing.T) {
	sut := NewCartService(newMockRepository())
	ctx := context.Background()

	items := []domain.CartItem{{ID: "a", Price: 100, Quantity: 2}}
	saved, err := sut.SaveUserCart(ctx, "u1", items)
	require.NoError(t, err)

	got, err := sut.GetUserCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, saved.Items, got.Items)
	assert.Equal(t, saved.Total, got.Total)
}

func TestSaveUserCart_RejectsInvalidItems(t *testing.T) {
	sut := NewCartService(newMockRepository())
	ctx := context.Background()

	cases := []struct {
		name  string
		items []domain.CartItem
	}{
		{"zero quantity", []domain.CartItem{{ID: "a", Price: 10, Quantity: 0}}},
		{"negative quantity", []domain.CartItem{{ID: "a", Price: 10, Quantity: -1}}},
		{"discount above 100", []domain.CartItem{{ID: "a", Price: 10, Discount: discount(101), Quantity: 1}}},
		{"negative discount", []domain.CartItem{{ID: "a", Price: 10, Discount: discount(-1), Quantity: 1}}},
		{"duplicate ids", []domain.CartItem{{ID: "a", Price: 10, Quantity: 1}, {ID: "a", Price: 10, Quantity: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sut.SaveUserCart(ctx, "u1", tc.items)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	// Nothing was persisted
	cart, err := sut.GetUserCart(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestSaveUserCart_EmptyItemsAllowed(t *testing.T) {
	sut := NewCartService(newMockRepository())

	cart, err := sut.SaveUserCart(context.Background(), "u1", []domain.CartItem{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, cart.Total)
}

func TestClearUserCart(t *testing.T) {
	sut := NewCartService(newMockRepository())
	ctx := context.Background()

	_, err := sut.SaveUserCart(ctx, "u1", []domain.CartItem{{ID: "a", Price: 10, Quantity: 1}})
	require.NoError(t, err)

	require.NoError(t, sut.ClearUserCart(ctx, "u1"))

	cart, err := sut.GetUserCart(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Total)
}

func TestSessionCart_IsolatedFromUserCart(t *testing.T) {
	sut := NewCartService(newMockRepository())
	ctx := context.Background()

	_, err := sut.SaveUserCart(ctx, "u1", []domain.CartItem{{ID: "a", Price: 10, Quantity: 1}})
	require.NoError(t, err)
	_, err = sut.SaveSessionCart(ctx, "u1", []domain.CartItem{{ID: "z", Price: 99, Quantity: 9}})
	require.NoError(t, err)

	userCart, err := sut.GetUserCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a", userCart.Items[0].ID)

	require.NoError(t, sut.ClearSessionCart(ctx, "u1"))
	userCart, err = sut.GetUserCart(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, userCart.Items, 1)
}
