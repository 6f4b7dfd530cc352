package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/models"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/models/shared"
)

// DecodeList normalizes a list response into one page. The remote API
// answers either {data, meta} or a bare array; a bare array (or a missing
// meta block) is treated as a single complete page.
func DecodeList[T any](res *Response) (shared.Paginated[T], error) {
	body := bytes.TrimSpace(res.Body)
	if len(body) == 0 {
		return shared.Paginated[T]{}, fmt.Errorf("failed to decode list: empty body")
	}

	if body[0] == '[' {
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return shared.Paginated[T]{}, fmt.Errorf("failed to decode list: %w", err)
		}
		return shared.SinglePage(items), nil
	}

	var envelope struct {
		Data *[]T             `json:"data"`
		Meta *shared.PageMeta `json:"meta"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return shared.Paginated[T]{}, fmt.Errorf("failed to decode list: %w", err)
	}
	if envelope.Data == nil {
		return shared.Paginated[T]{}, fmt.Errorf("failed to decode list: no data field")
	}
	if envelope.Meta == nil {
		return shared.SinglePage(*envelope.Data), nil
	}

	items := *envelope.Data
	if items == nil {
		items = []T{}
	}
	return shared.Paginated[T]{Items: items, Meta: envelope.Meta.Normalize()}, nil
}

// DecodeSelf normalizes the two shapes of the current-user endpoint: a
// {user, is_admin} wrapper or a bare user object.
func DecodeSelf(res *Response) (models.Self, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(res.Body, &fields); err != nil {
		return models.Self{}, fmt.Errorf("failed to decode profile: %w", err)
	}

	var self models.Self
	if raw, ok := fields["is_admin"]; ok {
		if flag, ok := truthy(raw); ok {
			self.IsAdmin = &flag
		}
	}

	if raw, ok := fields["user"]; ok && !isNull(raw) {
		var u models.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return models.Self{}, fmt.Errorf("failed to decode profile user: %w", err)
		}
		self.User = &u
		return self, nil
	}

	_, hasID := fields["id"]
	_, hasEmail := fields["email"]
	if hasID || hasEmail {
		var u models.User
		if err := json.Unmarshal(res.Body, &u); err != nil {
			return models.Self{}, fmt.Errorf("failed to decode profile: %w", err)
		}
		self.User = &u
	}
	return self, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

// truthy accepts booleans and 0/1 numbers.
func truthy(raw json.RawMessage) (bool, bool) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, true
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0, true
	}
	return false, false
}

// DecodeItem unmarshals a single resource, unwrapping a {"data": {...}}
// envelope when the server sends one. An empty body yields nil.
func DecodeItem[T any](res *Response) (*T, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	body := bytes.TrimSpace(res.Body)
	if len(body) == 0 {
		return nil, nil
	}
	if body[0] == '{' {
		if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 && envelope.Data[0] == '{' {
			body = envelope.Data
		}
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode item: %w", err)
	}
	return &out, nil
}
