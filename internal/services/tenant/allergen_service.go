package tenant

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/api"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/models/shared"
	tenantmodel "github.com/dzhngzturi/qr-menu-management-admin/internal/models/tenant"
)

// AllergenService manages the allergen catalog. Unlike categories and
// dishes it talks JSON, including native PATCH for updates.
type AllergenService struct {
	client *api.Client
}

func NewAllergenService(client *api.Client) *AllergenService {
	return &AllergenService{client: client}
}

func (s *AllergenService) List(ctx context.Context, q tenantmodel.AllergenQuery) (shared.Paginated[tenantmodel.Allergen], error) {
	params := url.Values{}
	setPage(params, q.Page)
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	setActive(params, q.OnlyActive)
	setPerPage(params, q.PerPage)

	res, err := s.client.Get(ctx, "/allergens", params)
	if err != nil {
		return shared.Paginated[tenantmodel.Allergen]{}, err
	}
	return api.DecodeList[tenantmodel.Allergen](res)
}

func (s *AllergenService) Create(ctx context.Context, in tenantmodel.AllergenInput) (*tenantmodel.Allergen, error) {
	in, err := validAllergen(in)
	if err != nil {
		return nil, err
	}
	res, err := s.client.PostJSON(ctx, "/allergens", in)
	if err != nil {
		return nil, err
	}
	return api.DecodeItem[tenantmodel.Allergen](res)
}

func (s *AllergenService) Update(ctx context.Context, id int, in tenantmodel.AllergenInput) (*tenantmodel.Allergen, error) {
	in, err := validAllergen(in)
	if err != nil {
		return nil, err
	}
	res, err := s.client.PatchJSON(ctx, fmt.Sprintf("/allergens/%d", id), in)
	if err != nil {
		return nil, err
	}
	return api.DecodeItem[tenantmodel.Allergen](res)
}

func (s *AllergenService) Delete(ctx context.Context, id int) error {
	_, err := s.client.Delete(ctx, fmt.Sprintf("/allergens/%d", id))
	return err
}

func validAllergen(in tenantmodel.AllergenInput) (tenantmodel.AllergenInput, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" {
		return in, errors.New("code is required")
	}
	if in.Name == "" {
		return in, ErrNameRequired
	}
	return in, nil
}
