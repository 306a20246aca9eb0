package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Item is one distinct purchasable catalog item and the desired quantity.
// Within a single collection the ID is unique.
type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Restaurant  string          `json:"restaurant,omitempty"`
	Category    []string        `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Veg         *bool           `json:"veg,omitempty"`
	Rating      *float64        `json:"rating,omitempty"`
}

// UnmarshalJSON accepts price as a string or a number and category as a string
// or a list of strings. A malformed price decodes to zero.
func (it *Item) UnmarshalJSON(data []byte) error {
	type alias Item
	aux := struct {
		*alias
		Price    json.RawMessage `json:"price"`
		Category json.RawMessage `json:"category"`
	}{alias: (*alias)(it)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	it.Price = ParsePrice(aux.Price)
	it.Category = ParseCategory(aux.Category)
	return nil
}

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	out := it
	if it.Category != nil {
		out.Category = append([]string(nil), it.Category...)
	}
	if it.Veg != nil {
		v := *it.Veg
		out.Veg = &v
	}
	if it.Rating != nil {
		r := *it.Rating
		out.Rating = &r
	}
	return out
}

// LineTotal is price multiplied by quantity.
func (it Item) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// CloneItems deep-copies a slice of items. A nil or empty input yields an
// empty, non-nil slice.
func CloneItems(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		out = append(out, it.Clone())
	}
	return out
}
