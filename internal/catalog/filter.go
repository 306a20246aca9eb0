package catalog

import "strings"

const SectionAll = "All"

type ResultType string

const (
	ResultCategory   ResultType = "category"
	ResultRestaurant ResultType = "restaurant"
	ResultFood       ResultType = "food"
)

// SearchResult carries exactly one of the record pointers, matching Type.
type SearchResult struct {
	Type       ResultType  `json:"type"`
	Category   *Category   `json:"category,omitempty"`
	Restaurant *Restaurant `json:"restaurant,omitempty"`
	Food       *Food       `json:"food,omitempty"`
}

// FilterByCategory keeps foods whose categories contain categoryID, or match
// categoryName ignoring case.
func FilterByCategory(foods []Food, categoryID, categoryName string) []Food {
	out := make([]Food, 0, len(foods))
	for _, f := range foods {
		for _, c := range f.Category {
			if (categoryID != "" && c == categoryID) || (categoryName != "" && strings.EqualFold(c, categoryName)) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// MenuSections lists "All" followed by each distinct food category in
// first-seen order.
func MenuSections(foods []Food) []string {
	sections := []string{SectionAll}
	seen := map[string]bool{}
	for _, f := range foods {
		for _, c := range f.Category {
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			sections = append(sections, c)
		}
	}
	return sections
}

func FilterByMenuSection(foods []Food, section string) []Food {
	if section == "" || section == SectionAll {
		return foods
	}
	out := make([]Food, 0, len(foods))
	for _, f := range foods {
		if contains(f.Category, section) {
			out = append(out, f)
		}
	}
	return out
}

// Search matches query as a case-insensitive substring. Categories come first,
// then restaurants, then foods. A blank query matches nothing.
func Search(categories []Category, restaurants []Restaurant, foods []Food, query string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	match := func(s string) bool { return strings.Contains(strings.ToLower(s), q) }
	anyMatch := func(list []string) bool {
		for _, s := range list {
			if match(s) {
				return true
			}
		}
		return false
	}

	var results []SearchResult
	for i := range categories {
		if match(categories[i].Name) {
			results = append(results, SearchResult{Type: ResultCategory, Category: &categories[i]})
		}
	}
	for i := range restaurants {
		r := &restaurants[i]
		if match(r.Name) || match(r.Address) || anyMatch(r.Category) {
			results = append(results, SearchResult{Type: ResultRestaurant, Restaurant: r})
		}
	}
	for i := range foods {
		f := &foods[i]
		if match(f.Name) || match(f.Description) || match(f.Restaurant) || anyMatch(f.Category) {
			results = append(results, SearchResult{Type: ResultFood, Food: f})
		}
	}
	return results
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
