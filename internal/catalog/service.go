package catalog

import (
	"context"
	"fmt"
)

type Menu struct {
	Restaurant string   `json:"restaurant"`
	Sections   []string `json:"sections"`
	Section    string   `json:"section"`
	Foods      []Food   `json:"foods"`
}

type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	return s.provider.Categories(ctx)
}

func (s *Service) Restaurants(ctx context.Context) ([]Restaurant, error) {
	return s.provider.Restaurants(ctx)
}

func (s *Service) Food(ctx context.Context, id string) (Food, error) {
	return s.provider.Food(ctx, id)
}

func (s *Service) FoodsInCategory(ctx context.Context, categoryID, categoryName string) ([]Food, error) {
	foods, err := s.provider.Foods(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByCategory(foods, categoryID, categoryName), nil
}

// RestaurantMenu lists a restaurant's foods narrowed to one menu section,
// along with every section available.
func (s *Service) RestaurantMenu(ctx context.Context, restaurant, section string) (Menu, error) {
	foods, err := s.provider.FoodsByRestaurant(ctx, restaurant)
	if err != nil {
		return Menu{}, err
	}
	if section == "" {
		section = SectionAll
	}
	return Menu{
		Restaurant: restaurant,
		Sections:   MenuSections(foods),
		Section:    section,
		Foods:      FilterByMenuSection(foods, section),
	}, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]SearchResult, error) {
	categories, err := s.provider.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("search categories: %w", err)
	}
	restaurants, err := s.provider.Restaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("search restaurants: %w", err)
	}
	foods, err := s.provider.Foods(ctx)
	if err != nil {
		return nil, fmt.Errorf("search foods: %w", err)
	}
	return Search(categories, restaurants, foods, query), nil
}
