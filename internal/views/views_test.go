package views

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/menu"
	tenantmodel "github.com/dzhngzturi/qr-menu-management-admin/internal/models/tenant"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/money"
)

func sampleView() *menu.View {
	img := "https://cdn.example/tarator.jpg"
	desc := "студена супа <краставици>"
	return menu.NewView("viva", money.Converter{Rate: money.Rate},
		[]tenantmodel.Category{
			{ID: 1, Name: "Супи", IsActive: true},
			{ID: 2, Name: "Напитки", IsActive: true},
		},
		[]tenantmodel.Dish{
			{ID: 10, Name: "Таратор", Price: 10, IsActive: true, ImageURL: &img, Description: &desc, CategoryID: 1},
			{ID: 11, Name: "Айрян", Price: 2, IsActive: true, Category: &tenantmodel.CategoryRef{ID: 2}},
		},
		[]tenantmodel.Allergen{{ID: 1, Code: "A7", Name: "Мляко", IsActive: true}},
	)
}

func TestParseTab(t *testing.T) {
	for in, want := range map[string]Tab{"bar": TabBar, "allergens": TabAllergens, "food": TabFood, "": TabFood, "x": TabFood} {
		if got := ParseTab(in); got != want {
			t.Errorf("ParseTab(%q) = %q", in, got)
		}
	}
}

func TestNewMenuPageTabs(t *testing.T) {
	v := sampleView()

	food := NewMenuPage(v, TabFood, "", "")
	if len(food.Sections) != 1 || food.Sections[0].Category.Name != "Супи" {
		t.Errorf("food sections = %+v", food.Sections)
	}
	bar := NewMenuPage(v, TabBar, "", "")
	if len(bar.Sections) != 1 || bar.Sections[0].Category.Name != "Напитки" {
		t.Errorf("bar sections = %+v", bar.Sections)
	}
	allergens := NewMenuPage(v, TabAllergens, "", "мля")
	if len(allergens.Allergens) != 1 || allergens.Sections != nil {
		t.Errorf("allergen page = %+v", allergens)
	}
}

func TestRenderMenu(t *testing.T) {
	var buf bytes.Buffer
	if err := Templates().ExecuteTemplate(&buf, PageMenu, NewMenuPage(sampleView(), TabFood, "", "")); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	for _, want := range []string{
		"Таратор",
		"10,00 лв. / 5,11 €",
		`href="/menu/viva/c/1"`,
		`src="https://cdn.example/tarator.jpg"`,
		"&lt;краставици&gt;",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("menu page missing %q", want)
		}
	}
	if strings.Contains(html, "Айрян") {
		t.Error("bar dish shown on the food tab")
	}
}

func TestRenderCategoryAndNotFound(t *testing.T) {
	v := sampleView()
	sec, _ := v.Category(2)

	var buf bytes.Buffer
	if err := Templates().ExecuteTemplate(&buf, PageCategory, CategoryPage{View: v, Section: sec}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Айрян") {
		t.Error("category page missing its dish")
	}

	buf.Reset()
	if err := Templates().ExecuteTemplate(&buf, PageNotFound, NotFoundPage{Path: "/x"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "404") {
		t.Error("not found page missing 404")
	}
}
