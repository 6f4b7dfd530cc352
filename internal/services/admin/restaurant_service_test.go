package admin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/api"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/models/admin"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/models/shared"
)

type alwaysViva struct{}

func (alwaysViva) Resolve(context.Context) (string, bool) { return "viva", true }

type hit struct {
	method string
	path   string
	query  url.Values
	body   map[string]any
}

func platformServer(t *testing.T, reply string) (*RestaurantService, func() hit) {
	t.Helper()
	var (
		mu   sync.Mutex
		last hit
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := hit{method: r.Method, path: r.URL.Path, query: r.URL.Query()}
		if r.Body != nil {
			data, _ := io.ReadAll(r.Body)
			json.Unmarshal(data, &h.body)
		}
		mu.Lock()
		last = h
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	client := api.NewClient(api.Options{BaseURL: srv.URL, Tenants: alwaysViva{}})
	return NewRestaurantService(client), func() hit {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func TestListIsUnpaginatedAndPlatformScoped(t *testing.T) {
	svc, last := platformServer(t, `[{"id":1,"name":"Viva","slug":"viva"},{"id":2,"name":"Avva","slug":"avva"}]`)

	rows, err := svc.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1].Slug != "avva" {
		t.Errorf("rows = %+v", rows)
	}
	h := last()
	if h.query.Get("paginate") != "false" {
		t.Errorf("paginate = %q", h.query.Get("paginate"))
	}
	if h.query.Has("restaurant") {
		t.Error("platform call carried a restaurant parameter")
	}
}

func TestCreateNormalizesSlug(t *testing.T) {
	svc, last := platformServer(t, `{"id":3,"name":"Nova Bar","slug":"nova-bar"}`)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "Nova", "  "); err == nil {
		t.Error("empty slug should fail")
	}

	r, err := svc.Create(ctx, "Nova Bar", "Nova Bar")
	if err != nil {
		t.Fatal(err)
	}
	if r.ID != 3 {
		t.Errorf("restaurant = %+v", r)
	}
	if h := last(); h.body["slug"] != "nova-bar" || h.body["name"] != "Nova Bar" {
		t.Errorf("body = %v", h.body)
	}
}

func TestAttachUserOmitsEmptyOptionals(t *testing.T) {
	svc, last := platformServer(t, `{}`)
	ctx := context.Background()

	err := svc.AttachUser(ctx, 4, admin.AttachUserRequest{Email: " Staff@Viva.bg ", Role: shared.RoleStaff})
	if err != nil {
		t.Fatal(err)
	}
	h := last()
	if h.path != "/platform/restaurants/4/users" {
		t.Errorf("path = %s", h.path)
	}
	if h.body["email"] != "staff@viva.bg" || h.body["role"] != "staff" {
		t.Errorf("body = %v", h.body)
	}
	for _, k := range []string{"password", "name"} {
		if _, ok := h.body[k]; ok {
			t.Errorf("empty %s was sent", k)
		}
	}

	if err := svc.AttachUser(ctx, 4, admin.AttachUserRequest{Email: "a@b.bg", Role: "chef"}); err == nil {
		t.Error("invalid role should fail")
	}
}

func TestUsersAndDetach(t *testing.T) {
	svc, last := platformServer(t, `[{"id":9,"name":"Ана","email":"ana@viva.bg","role":"owner"}]`)
	ctx := context.Background()

	users, err := svc.Users(ctx, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || users[0].Role != shared.RoleOwner {
		t.Errorf("users = %+v", users)
	}

	if err := svc.DetachUser(ctx, 4, 9); err != nil {
		t.Fatal(err)
	}
	if h := last(); h.method != http.MethodDelete || h.path != "/platform/restaurants/4/users/9" {
		t.Errorf("%s %s", h.method, h.path)
	}
}
