package admin

import "github.com/dzhngzturi/qr-menu-management-admin/internal/models/shared"

type CreateRestaurantRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// AttachUserRequest attaches an existing user or creates one. Password and
// Name are only sent when set.
type AttachUserRequest struct {
	Email    string                `json:"email"`
	Password string                `json:"password,omitempty"`
	Role     shared.RestaurantRole `json:"role"`
	Name     string                `json:"name,omitempty"`
}
