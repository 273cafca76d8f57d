package service

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ShoppingExport is a rendered shopping list ready to download.
type ShoppingExport struct {
	Filename string
	Content  []byte
}

// ExportShoppingList aggregates the user's cart into a plain-text list:
// one line per ingredient with the summed amount and unit.
func (s *RecipeService) ExportShoppingList(ctx context.Context, userID int64, username string) (*ShoppingExport, error) {
	start := time.Now()

	items, err := s.repo.AggregateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate cart: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Список покупок %s.\n", username)
	for _, item := range items {
		fmt.Fprintf(&b, "%s - %d %s\n", item.Name, item.Amount, item.MeasurementUnit)
	}

	s.metrics.IncCartExported()
	s.metrics.ObserveCartBuildDuration(time.Since(start))

	return &ShoppingExport{
		Filename: username + "_shopping_cart.txt",
		Content:  []byte(b.String()),
	}, nil
}
