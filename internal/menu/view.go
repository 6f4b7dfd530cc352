package menu

import (
	"strings"

	tenantmodel "github.com/dzhngzturi/qr-menu-management-admin/internal/models/tenant"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/money"
)

// View is the loaded public menu of one restaurant.
type View struct {
	Slug       string
	NotFound   bool
	Categories []tenantmodel.Category
	Allergens  []tenantmodel.Allergen

	byCategory map[int][]tenantmodel.Dish
	prices     money.Converter
}

// Section is one category with the dishes shown under it.
type Section struct {
	Category tenantmodel.Category `json:"category"`
	Dishes   []tenantmodel.Dish   `json:"dishes"`
}

// PriceLine is a dish price in BGN with the derived EUR amount.
type PriceLine struct {
	BGN    float64 `json:"bgn"`
	EUR    float64 `json:"eur"`
	BGNStr string  `json:"bgn_text"`
	EURStr string  `json:"eur_text"`
}

func (p PriceLine) String() string {
	return p.BGNStr + " / " + p.EURStr
}

// NewView shapes already fetched lists the way Load does. Inactive entries
// are dropped.
func NewView(slug string, prices money.Converter, categories []tenantmodel.Category, dishes []tenantmodel.Dish, allergens []tenantmodel.Allergen) *View {
	v := &View{Slug: slug, prices: prices}
	v.build(categories, dishes, allergens)
	v.NotFound = len(v.Categories) == 0
	return v
}

func (v *View) build(categories []tenantmodel.Category, dishes []tenantmodel.Dish, allergens []tenantmodel.Allergen) {
	v.Categories = v.Categories[:0]
	for _, c := range categories {
		if c.IsActive {
			v.Categories = append(v.Categories, c)
		}
	}

	v.byCategory = make(map[int][]tenantmodel.Dish)
	for _, d := range dishes {
		if !d.IsActive {
			continue
		}
		cid := d.CategoryKey()
		if cid == 0 {
			continue
		}
		v.byCategory[cid] = append(v.byCategory[cid], d)
	}

	v.Allergens = v.Allergens[:0]
	for _, a := range allergens {
		if a.IsActive {
			v.Allergens = append(v.Allergens, a)
		}
	}
}

// Dishes returns the dishes of one category, in the fetched order.
func (v *View) Dishes(categoryID int) []tenantmodel.Dish {
	return v.byCategory[categoryID]
}

// Sections returns the categories in menu order with their dishes. A
// non-empty query keeps only dishes whose name or description contains it,
// case-insensitively. Sections without dishes are dropped.
func (v *View) Sections(query string) []Section {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Section
	for _, c := range v.Categories {
		var list []tenantmodel.Dish
		for _, d := range v.byCategory[c.ID] {
			if q == "" || matches(d, q) {
				list = append(list, d)
			}
		}
		if len(list) > 0 {
			out = append(out, Section{Category: c, Dishes: list})
		}
	}
	return out
}

// Category returns the section of one category for a deep link. Empty
// categories are still returned.
func (v *View) Category(id int) (Section, bool) {
	for _, c := range v.Categories {
		if c.ID == id {
			return Section{Category: c, Dishes: v.byCategory[id]}, true
		}
	}
	return Section{}, false
}

// FilterAllergens matches code or name, case-insensitively.
func (v *View) FilterAllergens(query string) []tenantmodel.Allergen {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return v.Allergens
	}
	var out []tenantmodel.Allergen
	for _, a := range v.Allergens {
		if strings.Contains(strings.ToLower(a.Code), q) || strings.Contains(strings.ToLower(a.Name), q) {
			out = append(out, a)
		}
	}
	return out
}

// SplitBarFood partitions the categories into food and bar by name.
func (v *View) SplitBarFood() (food, bar []tenantmodel.Category) {
	for _, c := range v.Categories {
		if IsBarCategory(c.Name) {
			bar = append(bar, c)
		} else {
			food = append(food, c)
		}
	}
	return food, bar
}

// Price formats a dish price.
func (v *View) Price(d tenantmodel.Dish) PriceLine {
	eur := v.prices.ToEUR(d.Price)
	return PriceLine{
		BGN:    d.Price,
		EUR:    eur,
		BGNStr: money.FormatBGN(d.Price),
		EURStr: money.FormatEUR(eur),
	}
}

var barKeywords = []string{
	"drink", "bar", "beer", "wine", "cocktail", "coffee", "tea", "alcohol",
	"spirit", "fresh", "milkshake", "whiskey", "cognac", "jin", "vodka",
	"напит", "бар", "бира", "вино", "коктейл", "кафе", "чай", "алкохол",
	"ракия", "фреш", "шейк", "уиски", "коняк", "джин", "водка",
}

// IsBarCategory reports whether a category name looks like drinks.
func IsBarCategory(name string) bool {
	n := strings.ToLower(name)
	for _, k := range barKeywords {
		if strings.Contains(n, k) {
			return true
		}
	}
	return false
}

func matches(d tenantmodel.Dish, q string) bool {
	return strings.Contains(strings.ToLower(d.Name), q) ||
		strings.Contains(strings.ToLower(d.DescriptionText()), q)
}
