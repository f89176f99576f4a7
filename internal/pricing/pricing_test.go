package pricing

import (
	"testing"

	"github.com/mercata/cart-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discount(pct float64) *float64 {
	return &pct
}

func TestEffectivePrice_NoDiscount(t *testing.T) {
	item := domain.CartItem{ID: "a", Price: 100, Quantity: 1}
	assert.Equal(t, 100.0, EffectivePrice(item))
}

func TestEffectivePrice_WithDiscount(t *testing.T) {
	item := domain.CartItem{ID: "a", Price: 100, Discount: discount(20), Quantity: 3}
	assert.Equal(t, 80.0, EffectivePrice(item))
}

func TestEffectivePrice_ZeroDiscount(t *testing.T) {
	item := domain.CartItem{ID: "a", Price: 100, Discount: discount(0), Quantity: 1}
	assert.Equal(t, 100.0, EffectivePrice(item))
}

func TestEffectivePrice_FullDiscount(t *testing.T) {
	item := domain.CartItem{ID: "a", Price: 100, Discount: discount(100), Quantity: 1}
	assert.Equal(t, 0.0, EffectivePrice(item))
}

func TestTotal(t *testing.T) {
	items := []domain.CartItem{
		{ID: "a", Price: 100, Discount: discount(20), Quantity: 3}, // 80 * 3 = 240
		{ID: "b", Price: 50, Quantity: 2},                          // 50 * 2 = 100
	}
	assert.Equal(t, 340.0, Total(items))
}

func TestTotal_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Total(nil))
	assert.Equal(t, 0.0, Total([]domain.CartItem{}))
}

func TestValidateItems_Valid(t *testing.T) {
	items := []domain.CartItem{
		{ID: "a", Price: 100, Quantity: 1},
		{ID: "b", Price: 0, Discount: discount(100), Quantity: 99},
	}
	require.NoError(t, ValidateItems(items))
}

func TestValidateItems_EmptyList(t *testing.T) {
	require.NoError(t, ValidateItems(nil))
}

func TestValidateItems_MissingID(t *testing.T) {
	err := ValidateItems([]domain.CartItem{{Price: 10, Quantity: 1}})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "no id")
}

func TestValidateItems_DuplicateID(t *testing.T) {
	items := []domain.CartItem{
		{ID: "a", Price: 10, Quantity: 1},
		{ID: "a", Price: 20, Quantity: 2},
	}
	err := ValidateItems(items)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "duplicate")
}

func TestValidateItems_NegativePrice(t *testing.T) {
	err := ValidateItems([]domain.CartItem{{ID: "a", Price: -1, Quantity: 1}})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidateItems_DiscountOutOfRange(t *testing.T) {
	for _, pct := range []float64{-1, 100.5, 200} {
		err := ValidateItems([]domain.CartItem{{ID: "a", Price: 10, Discount: discount(pct), Quantity: 1}})
		require.ErrorIs(t, err, domain.ErrValidation, "discount %v should be rejected", pct)
	}
}

func TestValidateItems_NonPositiveQuantity(t *testing.T) {
	for _, q := range []int{0, -5} {
		err := ValidateItems([]domain.CartItem{{ID: "a", Price: 10, Quantity: q}})
		require.ErrorIs(t, err, domain.ErrValidation, "quantity %d should be rejected", q)
	}

	// Quantity 1 is the smallest accepted value
	require.NoError(t, ValidateItems([]domain.CartItem{{ID: "a", Price: 10, Quantity: 1}}))
}
