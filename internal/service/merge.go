package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mercata/cart-service/internal/domain"
	"github.com/mercata/cart-service/internal/pricing"
	"github.com/mercata/cart-service/internal/repository"
)

// Merge reconciles an anonymous session's cart into the user's cart at
// login. It reports whether anything was migrated: false means the
// session had no cart (or an empty one) and nothing was written.
//
// On an item id collision the user cart's price and discount win and
// only the quantities are summed; the session item's price is assumed
// stale. New ids are appended in session order.
func (s *CartService) Merge(ctx context.Context, sessionID, userID string) (bool, error) {
	if sessionID == "" {
		return false, fmt.Errorf("%w: sessionId is required", domain.ErrValidation)
	}
	if userID == "" {
		return false, fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}

	sessionKey := repository.SessionKey(sessionID)
	userKey := repository.UserKey(userID)

	sessionCart, err := s.repo.Get(ctx, sessionKey)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		log.Printf("repo get session cart error: %v \n", err)
		return false, err
	}
	if !sessionCart.HasItems() {
		return false, nil
	}

	userCart, err := s.repo.Get(ctx, userKey)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		log.Printf("repo get user cart error: %v \n", err)
		return false, err
	}

	var items []domain.CartItem
	if userCart.HasItems() {
		items = mergeItems(userCart.Items, sessionCart.Items)
	} else {
		// Take-over branch: the user has nothing, the session cart
		// becomes the user cart as-is.
		items = sessionCart.Items
	}

	merged := &domain.Cart{
		Items: items,
		Total: pricing.Total(items),
	}
	if _, err := s.repo.Replace(ctx, userKey, merged, sessionKey); err != nil {
		log.Printf("repo replace cart error: %v \n", err)
		return false, err
	}
	return true, nil
}

func mergeItems(userItems, sessionItems []domain.CartItem) []domain.CartItem {
	items := make([]domain.CartItem, len(userItems))
	copy(items, userItems)

	for _, si := range sessionItems {
		matched := false
		for i := range items {
			if items[i].ID == si.ID {
				items[i].Quantity += si.Quantity
				matched = true
				break
			}
		}
		if !matched {
			items = append(items, si)
		}
	}
	return items
}
