package tenant

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/api"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/models/shared"
	tenantmodel "github.com/dzhngzturi/qr-menu-management-admin/internal/models/tenant"
)

const DefaultDishSort = "name"

type DishService struct {
	client *api.Client
}

func NewDishService(client *api.Client) *DishService {
	return &DishService{client: client}
}

// List fetches one page of dishes, optionally narrowed to a category or a
// search term.
func (s *DishService) List(ctx context.Context, q tenantmodel.DishQuery) (shared.Paginated[tenantmodel.Dish], error) {
	params := url.Values{}
	setPage(params, q.Page)
	if q.CategoryID > 0 {
		params.Set("category_id", strconv.Itoa(q.CategoryID))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	params.Set("sort", orDefault(q.Sort, DefaultDishSort))
	setActive(params, q.OnlyActive)
	setPerPage(params, q.PerPage)

	res, err := s.client.Get(ctx, "/dishes", params)
	if err != nil {
		return shared.Paginated[tenantmodel.Dish]{}, err
	}
	return api.DecodeList[tenantmodel.Dish](res)
}

// Create adds a dish. Name, price and category are required.
func (s *DishService) Create(ctx context.Context, in tenantmodel.DishInput) (*tenantmodel.Dish, error) {
	if in.Name == nil || *in.Name == "" {
		return nil, ErrNameRequired
	}
	if in.Price == nil || *in.Price < 0 {
		return nil, errors.New("price must be zero or positive")
	}
	if in.CategoryID == nil || *in.CategoryID <= 0 {
		return nil, errors.New("category is required")
	}
	if in.IsActive == nil {
		active := true
		in.IsActive = &active
	}
	if in.Description == nil {
		empty := ""
		in.Description = &empty
	}

	res, err := s.client.PostForm(ctx, "/dishes", dishForm(in))
	if err != nil {
		return nil, err
	}
	return api.DecodeItem[tenantmodel.Dish](res)
}

func (s *DishService) Update(ctx context.Context, id int, in tenantmodel.DishInput) (*tenantmodel.Dish, error) {
	if in.Price != nil && *in.Price < 0 {
		return nil, errors.New("price must be zero or positive")
	}
	res, err := s.client.Patch(ctx, fmt.Sprintf("/dishes/%d", id), dishForm(in))
	if err != nil {
		return nil, err
	}
	return api.DecodeItem[tenantmodel.Dish](res)
}

func (s *DishService) Delete(ctx context.Context, id int) error {
	_, err := s.client.Delete(ctx, fmt.Sprintf("/dishes/%d", id))
	return err
}

func dishForm(in tenantmodel.DishInput) *api.Form {
	form := api.NewForm()
	if in.Name != nil {
		form.Set("name", *in.Name)
	}
	if in.Price != nil {
		form.Set("price", strconv.FormatFloat(*in.Price, 'f', -1, 64))
	}
	if in.CategoryID != nil {
		form.Set("category_id", strconv.Itoa(*in.CategoryID))
	}
	if in.Description != nil {
		form.Set("description", *in.Description)
	}
	if in.IsActive != nil {
		form.Set("is_active", shared.FormFlag(*in.IsActive))
	}
	attachImage(form, in.Image)
	return form
}
