package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/Mainak-2006/rn-zomato/internal/cart"
)

type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type Restaurant struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Category     []string `json:"category"`
	DeliveryTime string   `json:"deliveryTime,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	Rating       float64  `json:"rating"`
}

type Food struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Rating      float64         `json:"rating"`
	Restaurant  string          `json:"restaurant"`
	Category    []string        `json:"category"`
	Description string          `json:"description,omitempty"`
	Veg         bool            `json:"veg"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// LineItem converts a food into a cart item. Quantity is left at zero; the
// cart store assigns it.
func (f Food) LineItem() cart.Item {
	veg := f.Veg
	rating := f.Rating
	return cart.Item{
		ID:          f.ID,
		Name:        f.Name,
		Price:       f.Price,
		ImageURL:    f.ImageURL,
		Restaurant:  f.Restaurant,
		Category:    append([]string(nil), f.Category...),
		Description: f.Description,
		Veg:         &veg,
		Rating:      &rating,
	}
}
