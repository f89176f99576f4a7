package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mercata/cart-service/internal/domain"
	"github.com/mercata/cart-service/internal/pricing"
	"github.com/mercata/cart-service/internal/repository"
	"golang.org/x/sync/singleflight"
)

type CartService struct {
	repo repository.CartRepository
	sfg  singleflight.Group // Coalesces concurrent reads of the same key
}

func NewCartService(repo repository.CartRepository) *CartService {
	return &CartService{
		repo: repo,
	}
}

func (s *CartService) GetUserCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}
	return s.getCart(ctx, repository.UserKey(userID))
}

func (s *CartService) GetSessionCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionId is required", domain.ErrValidation)
	}
	return s.getCart(ctx, repository.SessionKey(sessionID))
}

func (s *CartService) SaveUserCart(ctx context.Context, userID string, items []domain.CartItem) (*domain.Cart, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}
	return s.saveCart(ctx, repository.UserKey(userID), items)
}

func (s *CartService) SaveSessionCart(ctx context.Context, sessionID string, items []domain.CartItem) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionId is required", domain.ErrValidation)
	}
	return s.saveCart(ctx, repository.SessionKey(sessionID), items)
}

func (s *CartService) ClearUserCart(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}
	return s.clearCart(ctx, repository.UserKey(userID))
}

func (s *CartService) ClearSessionCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: sessionId is required", domain.ErrValidation)
	}
	return s.clearCart(ctx, repository.SessionKey(sessionID))
}

func (s *CartService) getCart(ctx context.Context, key repository.Key) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(key.String(), func() (interface{}, error) {
		cart, errGet := s.repo.Get(ctx, key)
		if errors.Is(errGet, repository.ErrCartNotFound) {
			return domain.Empty(), nil // absent cart reads as the canonical empty cart
		}
		if errGet != nil {
			return nil, errGet
		}
		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

// saveCart replaces the stored item list wholesale: validate, recompute
// the total, persist. The caller's total is never trusted.
func (s *CartService) saveCart(ctx context.Context, key repository.Key, items []domain.CartItem) (*domain.Cart, error) {
	if err := pricing.ValidateItems(items); err != nil {
		return nil, err
	}

	cart := &domain.Cart{
		Items: items,
		Total: pricing.Total(items),
	}
	saved, err := s.repo.Set(ctx, key, cart)
	if err != nil {
		log.Printf("repo set cart error: %v \n", err)
		return nil, err
	}
	return saved, nil
}

func (s *CartService) clearCart(ctx context.Context, key repository.Key) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		log.Printf("repo delete cart error: %v \n", err)
		return err
	}
	return nil
}
