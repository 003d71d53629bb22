package domain

// Collection maps each category name to its ordered item sequence.
// It is the unit of persistence: stores load and save the whole collection
// as one document. Item order within a category is insertion order.
type Collection map[string][]*Item

// NewCollection returns an empty collection containing every given category.
func NewCollection(categories []string) Collection {
	c := make(Collection, len(categories))
	for _, cat := range categories {
		c[cat] = []*Item{}
	}
	return c
}

// Normalize guarantees that every configured category key is present, adding
// empty sequences for missing ones. Categories present in the collection but
// absent from the configured set are left untouched; they stay invisible to
// the API but survive a load/save round trip.
func (c Collection) Normalize(categories []string) {
	for _, cat := range categories {
		if _, ok := c[cat]; !ok {
			c[cat] = []*Item{}
		}
	}
}

// Size returns the number of items in the named category.
func (c Collection) Size(category string) int {
	return len(c[category])
}

// TotalItems returns the number of items across all categories.
func (c Collection) TotalItems() int {
	n := 0
	for _, items := range c {
		n += len(items)
	}
	return n
}
