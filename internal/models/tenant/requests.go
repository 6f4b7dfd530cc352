package tenant

import "io"

// ===== Query parameters =====

// CategoryQuery filters a category list. PerPage -1 asks for the full set.
type CategoryQuery struct {
	Page       int
	Sort       string
	OnlyActive *bool
	PerPage    int
}

type DishQuery struct {
	Page       int
	CategoryID int
	Search     string
	Sort       string
	OnlyActive *bool
	PerPage    int
}

type AllergenQuery struct {
	Page       int
	Search     string
	OnlyActive *bool
	PerPage    int
}

// ===== Mutations =====

// Image is a picked file to be sent as the multipart "image" field.
type Image struct {
	Filename string
	Content  io.Reader
}

// CategoryInput creates or partially updates a category. Nil fields are
// omitted from the form on update.
type CategoryInput struct {
	Name     *string
	IsActive *bool
	Image    *Image
}

type DishInput struct {
	Name        *string
	Price       *float64
	CategoryID  *int
	Description *string
	IsActive    *bool
	Image       *Image
}

type AllergenInput struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type ReorderRequest struct {
	IDs []int `json:"ids"`
}
