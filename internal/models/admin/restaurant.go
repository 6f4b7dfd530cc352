package admin

import "github.com/dzhngzturi/qr-menu-management-admin/internal/models/shared"

// Restaurant is a tenant as seen by the platform scope.
type Restaurant struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// RestaurantUser is a user attached to one restaurant.
type RestaurantUser struct {
	ID    int                   `json:"id"`
	Name  string                `json:"name"`
	Email string                `json:"email"`
	Role  shared.RestaurantRole `json:"role"`
}
