package catalog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Provider is the read-only catalog source.
type Provider interface {
	Categories(ctx context.Context) ([]Category, error)
	// Restaurants are ordered by rating, highest first.
	Restaurants(ctx context.Context) ([]Restaurant, error)
	Foods(ctx context.Context) ([]Food, error)
	FoodsByRestaurant(ctx context.Context, restaurant string) ([]Food, error)
	Food(ctx context.Context, id string) (Food, error)
}
