package tenant

// CategoryRef is the embedded category of a dish; Name is optional.
type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// Dish represents a menu item priced in BGN.
type Dish struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	Price       float64      `json:"price"`
	IsActive    bool         `json:"is_active"`
	ImageURL    *string      `json:"image_url,omitempty"`
	Category    *CategoryRef `json:"category,omitempty"`
	CategoryID  int          `json:"category_id,omitempty"`
}

// CategoryKey returns the owning category id, preferring the embedded
// category over the flat category_id column. Zero means unassigned.
func (d Dish) CategoryKey() int {
	if d.Category != nil && d.Category.ID != 0 {
		return d.Category.ID
	}
	return d.CategoryID
}

// DescriptionText returns the description or "".
func (d Dish) DescriptionText() string {
	if d.Description == nil {
		return ""
	}
	return *d.Description
}
