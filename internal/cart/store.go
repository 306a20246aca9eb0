package cart

// UnpaidLookup finds an item among the unpaid orders of the ledger, first
// match in ledger order. The store only reads through it.
type UnpaidLookup func(id string) (Item, bool)

// Store is the mutable cart. It is not safe for concurrent use; the owning
// session serialises access.
type Store struct {
	items  []Item
	lookup UnpaidLookup
}

func NewStore(lookup UnpaidLookup) *Store {
	return &Store{lookup: lookup}
}

// Add increments the quantity of an existing entry with the same id, or
// appends the item with quantity 1. The incoming quantity is ignored.
func (s *Store) Add(item Item) {
	if i := s.index(item.ID); i >= 0 {
		s.items[i].Quantity++
		return
	}

	added := item.Clone()
	added.Quantity = 1
	s.items = append(s.items, added)
}

// Remove deletes the entry with the given id. It reports false when absent.
func (s *Store) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// UpdateQuantity sets the quantity of an entry, removing it when quantity <= 0.
// An absent id with a positive quantity is recovered from unpaid orders when
// the lookup finds it; otherwise the call is a no-op.
func (s *Store) UpdateQuantity(id string, quantity int) bool {
	if i := s.index(id); i >= 0 {
		if quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
		s.items[i].Quantity = quantity
		return true
	}

	if quantity <= 0 || s.lookup == nil {
		return false
	}

	found, ok := s.lookup(id)
	if !ok {
		return false
	}
	found = found.Clone()
	found.Quantity = quantity
	s.items = append(s.items, found)
	return true
}

// Items returns a deep copy of the cart contents in insertion order.
func (s *Store) Items() []Item {
	return CloneItems(s.items)
}

func (s *Store) Contains(id string) bool {
	return s.index(id) >= 0
}

func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) Clear() {
	s.items = nil
}

func (s *Store) index(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
