package repository

import (
	"context"
	"errors"

	"github.com/mercata/cart-service/internal/domain"
)

// CartRepository defines the interface for cart persistence.
// Consumers define this interface, not the store-backed implementation.
type CartRepository interface {
	Get(ctx context.Context, key Key) (*domain.Cart, error)
	Set(ctx context.Context, key Key, cart *domain.Cart) (*domain.Cart, error)
	Delete(ctx context.Context, key Key) error
	Replace(ctx context.Context, dst Key, cart *domain.Cart, src Key) (*domain.Cart, error)
}

var ErrCartNotFound = errors.New("cart not found")
