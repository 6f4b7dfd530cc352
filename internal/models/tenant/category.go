package tenant

import "time"

// Category is a menu section. Position is the persisted serve order.
type Category struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug,omitempty"`
	IsActive    bool       `json:"is_active"`
	Position    int        `json:"position,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	DishesCount *int       `json:"dishes_count,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// ItemID makes Category usable by the reorder editor.
func (c Category) ItemID() int { return c.ID }
