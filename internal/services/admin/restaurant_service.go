package admin

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/api"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/models/admin"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/utils"
)

// RestaurantService manages restaurants and their users in the platform
// scope. These calls never carry the restaurant parameter.
type RestaurantService struct {
	client *api.Client
}

func NewRestaurantService(client *api.Client) *RestaurantService {
	return &RestaurantService{client: client}
}

// List returns every restaurant, unpaginated.
func (s *RestaurantService) List(ctx context.Context) ([]admin.Restaurant, error) {
	res, err := s.client.Get(ctx, "/platform/restaurants", url.Values{"paginate": {"false"}})
	if err != nil {
		return nil, err
	}
	page, err := api.DecodeList[admin.Restaurant](res)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// Create registers a restaurant. Both fields are required; the slug is
// normalized before it is sent.
func (s *RestaurantService) Create(ctx context.Context, name, slug string) (*admin.Restaurant, error) {
	req := admin.CreateRestaurantRequest{
		Name: strings.TrimSpace(name),
		Slug: utils.NormalizeSlug(slug),
	}
	if req.Name == "" || req.Slug == "" {
		return nil, errors.New("name and slug are required")
	}

	res, err := s.client.PostJSON(ctx, "/platform/restaurants", req)
	if err != nil {
		return nil, err
	}
	return api.DecodeItem[admin.Restaurant](res)
}

func (s *RestaurantService) Delete(ctx context.Context, id int) error {
	_, err := s.client.Delete(ctx, fmt.Sprintf("/platform/restaurants/%d", id))
	return err
}

// Users lists the users attached to a restaurant.
func (s *RestaurantService) Users(ctx context.Context, restaurantID int) ([]admin.RestaurantUser, error) {
	res, err := s.client.Get(ctx, fmt.Sprintf("/platform/restaurants/%d/users", restaurantID), nil)
	if err != nil {
		return nil, err
	}
	page, err := api.DecodeList[admin.RestaurantUser](res)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// AttachUser attaches an existing user by email, or creates one when the
// server does not know the address. Empty password and name are omitted.
func (s *RestaurantService) AttachUser(ctx context.Context, restaurantID int, req admin.AttachUserRequest) error {
	req.Email = utils.NormalizeEmail(req.Email)
	if req.Email == "" {
		return errors.New("email is required")
	}
	if !req.Role.Valid() {
		return fmt.Errorf("invalid role %q", req.Role)
	}
	req.Name = strings.TrimSpace(req.Name)

	_, err := s.client.PostJSON(ctx, fmt.Sprintf("/platform/restaurants/%d/users", restaurantID), req)
	return err
}

func (s *RestaurantService) DetachUser(ctx context.Context, restaurantID, userID int) error {
	_, err := s.client.Delete(ctx, fmt.Sprintf("/platform/restaurants/%d/users/%d", restaurantID, userID))
	return err
}
