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

// DefaultCategorySort keeps the list in menu order.
const DefaultCategorySort = "position,name"

var ErrNameRequired = errors.New("name is required")

type CategoryService struct {
	client *api.Client
}

func NewCategoryService(client *api.Client) *CategoryService {
	return &CategoryService{client: client}
}

// List fetches one page of categories of the active restaurant.
func (s *CategoryService) List(ctx context.Context, q tenantmodel.CategoryQuery) (shared.Paginated[tenantmodel.Category], error) {
	params := url.Values{}
	setPage(params, q.Page)
	params.Set("sort", orDefault(q.Sort, DefaultCategorySort))
	setActive(params, q.OnlyActive)
	setPerPage(params, q.PerPage)

	res, err := s.client.Get(ctx, "/categories", params)
	if err != nil {
		return shared.Paginated[tenantmodel.Category]{}, err
	}
	return api.DecodeList[tenantmodel.Category](res)
}

// Create adds a category. A nil IsActive creates it active.
func (s *CategoryService) Create(ctx context.Context, in tenantmodel.CategoryInput) (*tenantmodel.Category, error) {
	if in.Name == nil || *in.Name == "" {
		return nil, ErrNameRequired
	}
	if in.IsActive == nil {
		active := true
		in.IsActive = &active
	}

	res, err := s.client.PostForm(ctx, "/categories", categoryForm(in))
	if err != nil {
		return nil, err
	}
	return api.DecodeItem[tenantmodel.Category](res)
}

// Update sends only the fields that are set.
func (s *CategoryService) Update(ctx context.Context, id int, in tenantmodel.CategoryInput) (*tenantmodel.Category, error) {
	res, err := s.client.Patch(ctx, fmt.Sprintf("/categories/%d", id), categoryForm(in))
	if err != nil {
		return nil, err
	}
	return api.DecodeItem[tenantmodel.Category](res)
}

func (s *CategoryService) Delete(ctx context.Context, id int) error {
	_, err := s.client.Delete(ctx, fmt.Sprintf("/categories/%d", id))
	return err
}

// Reorder persists the complete order of the restaurant's categories.
func (s *CategoryService) Reorder(ctx context.Context, ids []int) error {
	_, err := s.client.PostJSON(ctx, "/categories/reorder", tenantmodel.ReorderRequest{IDs: ids})
	return err
}

func categoryForm(in tenantmodel.CategoryInput) *api.Form {
	form := api.NewForm()
	if in.Name != nil {
		form.Set("name", *in.Name)
	}
	if in.IsActive != nil {
		form.Set("is_active", shared.FormFlag(*in.IsActive))
	}
	attachImage(form, in.Image)
	return form
}

func attachImage(form *api.Form, img *tenantmodel.Image) {
	if img != nil && img.Content != nil {
		form.File("image", img.Filename, img.Content)
	}
}

func setPage(params url.Values, page int) {
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
}

// setPerPage passes -1 (everything) and positive sizes through.
func setPerPage(params url.Values, perPage int) {
	if perPage != 0 {
		params.Set("per_page", strconv.Itoa(perPage))
	}
}

func setActive(params url.Values, onlyActive *bool) {
	if onlyActive != nil {
		params.Set("only_active", shared.FormFlag(*onlyActive))
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
