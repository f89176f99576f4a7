package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mercata/cart-service/internal/domain"
	"github.com/mercata/cart-service/internal/kv"
)

// SessionTTL bounds how long an anonymous session cart survives
// without a merge. User carts never expire here.
const SessionTTL = 7 * 24 * time.Hour

type storeRepository struct {
	store kv.Store
}

func NewStoreRepository(store kv.Store) CartRepository {
	return &storeRepository{store: store}
}

func (r *storeRepository) Get(ctx context.Context, key Key) (*domain.Cart, error) {
	data, err := r.store.Get(ctx, key.String())
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return &cart, nil
}

func (r *storeRepository) Set(ctx context.Context, key Key, cart *domain.Cart) (*domain.Cart, error) {
	data, err := r.stamp(ctx, key, cart)
	if err != nil {
		return nil, err
	}
	if err := r.store.Set(ctx, key.String(), data, ttlFor(key)); err != nil {
		return nil, fmt.Errorf("failed to set cart: %w", err)
	}
	return cart, nil
}

func (r *storeRepository) Delete(ctx context.Context, key Key) error {
	if err := r.store.Delete(ctx, key.String()); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// Replace persists cart under dst and removes src in one store call,
// so the merge's write and session cleanup land together wherever the
// backend supports a multi-key transaction.
func (r *storeRepository) Replace(ctx context.Context, dst Key, cart *domain.Cart, src Key) (*domain.Cart, error) {
	data, err := r.stamp(ctx, dst, cart)
	if err != nil {
		return nil, err
	}
	if err := r.store.SetAndDelete(ctx, dst.String(), data, ttlFor(dst), src.String()); err != nil {
		return nil, fmt.Errorf("failed to replace cart: %w", err)
	}
	return cart, nil
}

// stamp sets the write-time fields on cart and serializes it. The
// version continues from whatever is currently stored under key;
// writes stay last-writer-wins.
func (r *storeRepository) stamp(ctx context.Context, key Key, cart *domain.Cart) ([]byte, error) {
	var prior int64
	if existing, err := r.Get(ctx, key); err == nil {
		prior = existing.Version
	} else if !errors.Is(err, ErrCartNotFound) {
		return nil, err
	}

	cart.Version = prior + 1
	cart.SchemaVersion = domain.SchemaVersion
	cart.UpdatedAt = time.Now()
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cart: %w", err)
	}
	return data, nil
}

func ttlFor(key Key) time.Duration {
	if key.IsSession() {
		return SessionTTL
	}
	return 0
}
