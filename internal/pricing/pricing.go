package pricing

import (
	"fmt"

	"github.com/mercata/cart-service/internal/domain"
)

// EffectivePrice returns the unit price after applying the item's
// discount percentage, or the raw price when no discount is set.
func EffectivePrice(item domain.CartItem) float64 {
	if item.Discount == nil {
		return item.Price
	}
	return item.Price * (1 - *item.Discount/100)
}

// Total sums effective price times quantity over all items. Items are
// assumed valid; callers run ValidateItems first.
func Total(items []domain.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += EffectivePrice(item) * float64(item.Quantity)
	}
	return total
}

// ValidateItems checks every item before any total is computed or any
// write happens: ids must be present and unique within the list,
// prices non-negative, discounts within [0,100], quantities positive.
func ValidateItems(items []domain.CartItem) error {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("%w: item %d has no id", domain.ErrValidation, i)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: duplicate item id %q", domain.ErrValidation, item.ID)
		}
		seen[item.ID] = struct{}{}

		if item.Price < 0 {
			return fmt.Errorf("%w: item %q has negative price", domain.ErrValidation, item.ID)
		}
		if item.Discount != nil && (*item.Discount < 0 || *item.Discount > 100) {
			return fmt.Errorf("%w: item %q discount must be between 0 and 100", domain.ErrValidation, item.ID)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %q quantity must be greater than 0", domain.ErrValidation, item.ID)
		}
	}
	return nil
}
