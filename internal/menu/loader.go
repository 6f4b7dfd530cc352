// Package menu loads and shapes the public, read-only menu of one
// restaurant.
package menu

import (
	"context"
	"log"
	"net/url"
	"time"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/api"
	tenantmodel "github.com/dzhngzturi/qr-menu-management-admin/internal/models/tenant"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/money"
	"golang.org/x/sync/errgroup"
)

// AllergenGrace is how long a loaded menu waits for a slower allergen list
// before it renders without one.
const AllergenGrace = 300 * time.Millisecond

// Loader fetches everything the public menu shows.
type Loader struct {
	client *api.Client
	prices money.Converter
	grace  time.Duration
}

func NewLoader(client *api.Client, prices money.Converter) *Loader {
	return &Loader{client: client, prices: prices, grace: AllergenGrace}
}

// Load fetches categories and dishes together and allergens on the side.
// The categories and dishes are essential: if either fails, or no active
// category exists, the view is NotFound. The allergen list is never waited
// for on a failure, and at most the grace period otherwise; a failed or
// late allergen fetch leaves the list empty.
func (l *Loader) Load(ctx context.Context, slug string) (*View, error) {
	view := &View{Slug: slug, prices: l.prices}
	if slug == "" {
		view.NotFound = true
		return view, nil
	}

	var (
		categories []tenantmodel.Category
		dishes     []tenantmodel.Dish
	)

	// buffered so the fetch never blocks once Load has moved on
	allergensCh := make(chan []tenantmodel.Allergen, 1)
	go func() {
		allergensCh <- l.allergens(ctx, slug)
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := l.client.Get(gctx, "/categories", l.params(slug, url.Values{
			"only_active": {"1"},
			"sort":        {"position,name"},
		}))
		if err != nil {
			return err
		}
		page, err := api.DecodeList[tenantmodel.Category](res)
		if err != nil {
			return err
		}
		categories = page.Items
		return nil
	})
	g.Go(func() error {
		res, err := l.client.Get(gctx, "/dishes", l.params(slug, url.Values{
			"only_active": {"1"},
			"sort":        {"name"},
		}))
		if err != nil {
			return err
		}
		page, err := api.DecodeList[tenantmodel.Dish](res)
		if err != nil {
			return err
		}
		dishes = page.Items
		return nil
	})

	if essentialErr := g.Wait(); essentialErr != nil {
		if err := ctx.Err(); err != nil {
			// the caller went away; that says nothing about the restaurant
			return nil, err
		}
		log.Printf("menu: failed to load %s: %v", slug, essentialErr)
		view.NotFound = true
		return view, nil
	}
	view.build(categories, dishes, l.awaitAllergens(allergensCh, slug))
	if len(view.Categories) == 0 {
		view.NotFound = true
	}
	return view, nil
}

func (l *Loader) allergens(ctx context.Context, slug string) []tenantmodel.Allergen {
	res, err := l.client.Get(ctx, "/allergens", l.params(slug, url.Values{"only_active": {"1"}}))
	if err != nil {
		log.Printf("menu: allergens for %s unavailable: %v", slug, err)
		return nil
	}
	page, err := api.DecodeList[tenantmodel.Allergen](res)
	if err != nil {
		log.Printf("menu: allergens for %s unavailable: %v", slug, err)
		return nil
	}
	return page.Items
}

func (l *Loader) awaitAllergens(ch <-chan []tenantmodel.Allergen, slug string) []tenantmodel.Allergen {
	timer := time.NewTimer(l.grace)
	defer timer.Stop()
	select {
	case items := <-ch:
		return items
	case <-timer.C:
		log.Printf("menu: allergens for %s not ready after %s, rendering without", slug, l.grace)
		return nil
	}
}

// params scopes a request to slug explicitly, independent of any selected
// restaurant, and asks for the complete list.
func (l *Loader) params(slug string, v url.Values) url.Values {
	v.Set(api.TenantParam, slug)
	v.Set("per_page", "-1")
	return v
}
