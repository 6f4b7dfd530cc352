package tenant

// Allergen is an entry of the restaurant's allergen legend (e.g. code "A1").
type Allergen struct {
	ID       int    `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}
