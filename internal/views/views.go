// Package views holds the pre-parsed HTML pages of the public menu.
package views

import (
	"fmt"
	"html/template"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/menu"
	tenantmodel "github.com/dzhngzturi/qr-menu-management-admin/internal/models/tenant"
)

// Page names registered with the gin engine.
const (
	PageMenu     = "menu"
	PageCategory = "category"
	PageNotFound = "not_found"
)

// Tab is the public menu section selector.
type Tab string

const (
	TabFood      Tab = "food"
	TabBar       Tab = "bar"
	TabAllergens Tab = "allergens"
)

// ParseTab falls back to food for unknown values.
func ParseTab(s string) Tab {
	switch Tab(s) {
	case TabBar, TabAllergens:
		return Tab(s)
	}
	return TabFood
}

// MenuPage is the data of the full menu page.
type MenuPage struct {
	View          *menu.View
	Tab           Tab
	Query         string
	AllergenQuery string
	Sections      []menu.Section
	Allergens     []tenantmodel.Allergen
}

// NewMenuPage selects what a tab shows: food or bar sections filtered by
// query, or the allergen list filtered by allergenQuery.
func NewMenuPage(v *menu.View, tab Tab, query, allergenQuery string) MenuPage {
	page := MenuPage{View: v, Tab: tab, Query: query, AllergenQuery: allergenQuery}
	if tab == TabAllergens {
		page.Allergens = v.FilterAllergens(allergenQuery)
		return page
	}

	food, bar := v.SplitBarFood()
	keep := map[int]bool{}
	list := food
	if tab == TabBar {
		list = bar
	}
	for _, c := range list {
		keep[c.ID] = true
	}
	for _, s := range v.Sections(query) {
		if keep[s.Category.ID] {
			page.Sections = append(page.Sections, s)
		}
	}
	return page
}

// CategoryPage is the data of a category deep link.
type CategoryPage struct {
	View    *menu.View
	Section menu.Section
}

// NotFoundPage is the data of the not-found page.
type NotFoundPage struct {
	Path string
}

type sectionRow struct {
	Slug    string
	View    *menu.View
	Section menu.Section
}

type dishRow struct {
	Dish  tenantmodel.Dish
	Image string
	Price string
}

var funcs = template.FuncMap{
	"categoryURL": func(slug string, id int) string {
		return fmt.Sprintf("/menu/%s/c/%d", slug, id)
	},
	"tabURL": func(slug, tab string) string {
		return fmt.Sprintf("/menu/%s?tab=%s", slug, tab)
	},
	"sectionRow": func(v *menu.View, s menu.Section) sectionRow {
		return sectionRow{Slug: v.Slug, View: v, Section: s}
	},
	"dishRow": func(v *menu.View, d tenantmodel.Dish) dishRow {
		row := dishRow{Dish: d, Price: v.Price(d).String()}
		if d.ImageURL != nil {
			row.Image = *d.ImageURL
		}
		return row
	},
}

const layout = `{{define "head"}}<!doctype html>
<html lang="bg">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.}}</title>
</head>
<body>{{end}}
{{define "foot"}}</body>
</html>{{end}}
{{define "dish"}}<li class="dish">
  {{if .Image}}<img src="{{.Image}}" alt="{{.Dish.Name}}" loading="lazy">{{end}}
  <span class="name">{{.Dish.Name}}</span>
  <span class="price">{{.Price}}</span>
  {{with .Dish.DescriptionText}}<p class="description">{{.}}</p>{{end}}
</li>{{end}}
{{define "section"}}<section id="c{{.Section.Category.ID}}">
  <h2><a href="{{categoryURL .Slug .Section.Category.ID}}">{{.Section.Category.Name}}</a></h2>
  <ul>{{range .Section.Dishes}}{{template "dish" (dishRow $.View .)}}{{end}}</ul>
</section>{{end}}`

const menuPage = `{{template "head" .View.Slug}}
<nav>
  <a href="{{tabURL .View.Slug "food"}}"{{if eq .Tab "food"}} class="active"{{end}}>Храна</a>
  <a href="{{tabURL .View.Slug "bar"}}"{{if eq .Tab "bar"}} class="active"{{end}}>Бар</a>
  <a href="{{tabURL .View.Slug "allergens"}}"{{if eq .Tab "allergens"}} class="active"{{end}}>Алергени</a>
</nav>
{{if eq .Tab "allergens"}}
<form method="get"><input type="hidden" name="tab" value="allergens"><input type="search" name="aq" value="{{.AllergenQuery}}" placeholder="Търсене на алерген"></form>
{{if .Allergens}}<ul class="allergens">{{range .Allergens}}<li><b>{{.Code}}</b> {{.Name}}</li>{{end}}</ul>
{{else}}<p>Няма алергени.</p>{{end}}
{{else}}
<form method="get"><input type="hidden" name="tab" value="{{.Tab}}"><input type="search" name="q" value="{{.Query}}" placeholder="Търсене"></form>
{{range .Sections}}{{template "section" (sectionRow $.View .)}}{{else}}<p>Няма резултати.</p>{{end}}
{{end}}
{{template "foot"}}`

const categoryPage = `{{template "head" .Section.Category.Name}}
<p><a href="/menu/{{.View.Slug}}">&larr; Меню</a></p>
{{template "section" (sectionRow .View .Section)}}
{{if not .Section.Dishes}}<p>Няма ястия в тази категория.</p>{{end}}
{{template "foot"}}`

const notFoundPage = `{{template "head" "404"}}
<h1>404</h1>
<p>Страницата не е намерена.</p>
{{template "foot"}}`

// Templates parses every page. It panics on a template error, which can
// only be a programming mistake.
func Templates() *template.Template {
	root := template.Must(template.New("layout").Funcs(funcs).Parse(layout))
	template.Must(root.New(PageMenu).Parse(menuPage))
	template.Must(root.New(PageCategory).Parse(categoryPage))
	template.Must(root.New(PageNotFound).Parse(notFoundPage))
	return root
}
