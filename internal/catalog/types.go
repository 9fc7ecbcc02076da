package catalog

// File is the top-level catalog document, read from disk or assembled from
// the catalog service.
//
// Example:
//
//	restaurants:
//	  - id: micro-dose
//	    name: Micro Dose Coffee
//	    aliases: [micro dose, microdose]
//	    menu:
//	      - category: Coffee
//	        items:
//	          - {id: q1, name: The Quickie, price: 5.99}
type File struct {
	Restaurants []Restaurant `json:"restaurants" yaml:"restaurants"`
}

// Restaurant is one venue and its menu.
type Restaurant struct {
	ID      string     `json:"id" yaml:"id"`
	Name    string     `json:"name" yaml:"name"`
	Aliases []string   `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Menu    []Category `json:"menu,omitempty" yaml:"menu,omitempty"`
}

// Category is a named section of a menu.
type Category struct {
	Name  string  `json:"category" yaml:"category"`
	Items []Entry `json:"items" yaml:"items"`
}

// Entry is a reference item the matcher compares against. Price is nil when
// the supplier did not provide one; such entries are never sold.
type Entry struct {
	ID       string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string   `json:"name" yaml:"name"`
	Price    *float64 `json:"price,omitempty" yaml:"price,omitempty"`
	Category string   `json:"category,omitempty" yaml:"category,omitempty"`
}

// RestaurantsResponse is the body of GET /restaurants.
type RestaurantsResponse struct {
	Restaurants []Restaurant `json:"restaurants"`
}

// MenuResponse is the body of GET /restaurants/{id}/menu.
type MenuResponse struct {
	RestaurantID string     `json:"restaurantId"`
	Menu         []Category `json:"menu"`
}

// Items flattens the menu in order, stamping each entry with its category.
func (r Restaurant) Items() []Entry {
	var out []Entry
	for _, c := range r.Menu {
		for _, e := range c.Items {
			if e.Category == "" {
				e.Category = c.Name
			}
			out = append(out, e)
		}
	}
	return out
}

// CategoryNames returns the restaurant's menu sections in menu order.
func (r Restaurant) CategoryNames() []string {
	out := make([]string, 0, len(r.Menu))
	for _, c := range r.Menu {
		out = append(out, c.Name)
	}
	return out
}

// Sellable reports whether e has both a name and a price.
func (e Entry) Sellable() bool {
	return e.Name != "" && e.Price != nil
}

// Deref safely dereferences a price pointer, returning 0 for nil.
func Deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Price returns a pointer to v, for building entries in code.
func Price(v float64) *float64 { return &v }
