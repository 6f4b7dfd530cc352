package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/menu"
	tenantmodel "github.com/dzhngzturi/qr-menu-management-admin/internal/models/tenant"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/views"
)

// MenuLoader loads the public menu of one restaurant.
type MenuLoader interface {
	Load(ctx context.Context, slug string) (*menu.View, error)
}

// MenuHandler serves the public menu pages and their JSON form
type MenuHandler struct {
	loader  MenuLoader
	timeout time.Duration
}

func NewMenuHandler(loader MenuLoader, timeout time.Duration) *MenuHandler {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &MenuHandler{loader: loader, timeout: timeout}
}

// Show renders the full menu. Query: tab (food|bar|allergens), q (dish
// search), aq (allergen search).
func (h *MenuHandler) Show(c *gin.Context) {
	view, ok := h.load(c)
	if !ok {
		return
	}
	page := views.NewMenuPage(view, views.ParseTab(c.Query("tab")), c.Query("q"), c.Query("aq"))
	c.HTML(http.StatusOK, views.PageMenu, page)
}

// ShowCategory renders one category by id.
func (h *MenuHandler) ShowCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("cid"))
	if err != nil || id <= 0 {
		NotFound(c)
		return
	}

	view, ok := h.load(c)
	if !ok {
		return
	}
	section, found := view.Category(id)
	if !found {
		NotFound(c)
		return
	}
	c.HTML(http.StatusOK, views.PageCategory, views.CategoryPage{View: view, Section: section})
}

type dishPayload struct {
	tenantmodel.Dish
	Prices menu.PriceLine `json:"prices"`
}

type sectionPayload struct {
	Category tenantmodel.Category `json:"category"`
	Dishes   []dishPayload        `json:"dishes"`
}

// ShowJSON returns the menu as JSON, filtered by q like the HTML page.
func (h *MenuHandler) ShowJSON(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	view, err := h.loader.Load(ctx, c.Param("slug"))
	if err != nil {
		log.Printf("viewer: menu %s unavailable: %v", c.Param("slug"), err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "menu unavailable"})
		return
	}
	if view.NotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu not found"})
		return
	}

	sections := []sectionPayload{}
	for _, s := range view.Sections(c.Query("q")) {
		sp := sectionPayload{Category: s.Category}
		for _, d := range s.Dishes {
			sp.Dishes = append(sp.Dishes, dishPayload{Dish: d, Prices: view.Price(d)})
		}
		sections = append(sections, sp)
	}
	allergens := view.Allergens
	if allergens == nil {
		allergens = []tenantmodel.Allergen{}
	}

	c.JSON(http.StatusOK, gin.H{
		"slug":      view.Slug,
		"sections":  sections,
		"allergens": allergens,
	})
}

// load fetches the view or writes the error page itself.
func (h *MenuHandler) load(c *gin.Context) (*menu.View, bool) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	slug := c.Param("slug")
	view, err := h.loader.Load(ctx, slug)
	if err != nil {
		log.Printf("viewer: menu %s unavailable: %v", slug, err)
		c.String(http.StatusServiceUnavailable, "menu unavailable")
		return nil, false
	}
	if view.NotFound {
		NotFound(c)
		return nil, false
	}
	return view, true
}

// NotFound renders the catch-all page.
func NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, views.PageNotFound, views.NotFoundPage{Path: c.Request.URL.Path})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "menu-viewer"})
}
