package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/models/tenant"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

type staticTenant string

func (s staticTenant) Resolve(context.Context) (string, bool) {
	return string(s), s != ""
}

type recorder struct {
	mu     sync.Mutex
	errors []string
}

func (r *recorder) Success(string) {}
func (r *recorder) Info(string)    {}
func (r *recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

type captured struct {
	method string
	path   string
	query  url.Values
	header http.Header
	body   string
}

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *[]captured) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []captured
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, captured{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.Query(),
			header: r.Header.Clone(),
			body:   string(b),
		})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func TestTenantInjection(t *testing.T) {
	srv, reqs := newTestServer(t, http.StatusOK, `[]`)
	c := NewClient(Options{
		BaseURL:     srv.URL + "/api/",
		Credentials: staticToken("T1"),
		Tenants:     staticTenant("viva"),
	})
	ctx := context.Background()

	calls := []struct {
		name  string
		path  string
		query url.Values
		want  []string
	}{
		{"tenant scoped", "/categories", nil, []string{"viva"}},
		{"tenant scoped with raw query", "/dishes?page=2", nil, []string{"viva"}},
		{"explicit param", "/categories", url.Values{"restaurant": {"other"}}, []string{"other"}},
		{"explicit raw param", "/categories?only_active=1&restaurant=other", nil, []string{"other"}},
		{"platform", "/platform/restaurants", nil, nil},
		{"nested platform", "/v2/platform/restaurants", nil, nil},
		{"auth", "/auth/me", nil, nil},
		{"nested auth", "/x/auth/logout", nil, nil},
	}

	for _, call := range calls {
		if _, err := c.Get(ctx, call.path, call.query); err != nil {
			t.Fatalf("%s: unexpected error: %v", call.name, err)
		}
	}

	if len(*reqs) != len(calls) {
		t.Fatalf("server saw %d requests, want %d", len(*reqs), len(calls))
	}
	for i, call := range calls {
		got := (*reqs)[i].query[TenantParam]
		if strings.Join(got, ",") != strings.Join(call.want, ",") {
			t.Errorf("%s: restaurant params = %v, want %v", call.name, got, call.want)
		}
		if !strings.HasPrefix((*reqs)[i].path, "/api/") {
			t.Errorf("%s: path %q not under base", call.name, (*reqs)[i].path)
		}
	}

	if got := (*reqs)[1].query.Get("page"); got != "2" {
		t.Errorf("raw query lost: page = %q", got)
	}
}

func TestNoTenantWhenUnresolvable(t *testing.T) {
	srv, reqs := newTestServer(t, http.StatusOK, `[]`)
	c := NewClient(Options{BaseURL: srv.URL, Tenants: staticTenant("")})

	if _, err := c.Get(context.Background(), "/categories", nil); err != nil {
		t.Fatal(err)
	}
	if (*reqs)[0].query.Has(TenantParam) {
		t.Errorf("tenant injected without a resolvable tenant: %v", (*reqs)[0].query)
	}
}

func TestAuthorizationHeader(t *testing.T) {
	srv, reqs := newTestServer(t, http.StatusOK, `{}`)
	c := NewClient(Options{BaseURL: srv.URL})
	ctx := context.Background()

	c.Get(ctx, "/auth/me", nil)
	c.SetCredentials(staticToken("abc"))
	c.Get(ctx, "/auth/me", nil)

	if h := (*reqs)[0].header.Get("Authorization"); h != "" {
		t.Errorf("anonymous request carried Authorization %q", h)
	}
	if h := (*reqs)[1].header.Get("Authorization"); h != "Bearer abc" {
		t.Errorf("Authorization = %q, want Bearer abc", h)
	}
	if (*reqs)[1].header.Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id")
	}
	if a := (*reqs)[1].header.Get("Accept"); a != "application/json" {
		t.Errorf("Accept = %q", a)
	}
}

func TestFailureMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", 422, `{"message":"Името е задължително","error":"x"}`, "Името е задължително"},
		{"error field", 403, `{"error":"forbidden"}`, "forbidden"},
		{"errors list", 422, `{"errors":["first","second"]}`, "first"},
		{"errors by field", 422, `{"errors":{"slug":["taken"],"name":["required"]}}`, "required"},
		{"empty body", 500, ``, "fallback"},
		{"html body", 502, `<html>bad gateway</html>`, "fallback"},
		{"no known field", 404, `{"detail":"nope"}`, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)
			rec := &recorder{}
			c := NewClient(Options{BaseURL: srv.URL, Notifier: rec, FallbackMessage: "fallback"})

			_, err := c.Get(context.Background(), "/categories", nil)
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *Error", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Message != tt.want {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.want)
			}
			if len(rec.errors) != 1 || rec.errors[0] != tt.want {
				t.Errorf("notified %v, want [%q]", rec.errors, tt.want)
			}
			if StatusOf(err) != tt.status {
				t.Errorf("StatusOf = %d", StatusOf(err))
			}
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	rec := &recorder{}
	c := NewClient(Options{BaseURL: base, Notifier: rec, FallbackMessage: "offline"})

	_, err := c.Get(context.Background(), "/categories", nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if !apiErr.IsTransport() || apiErr.Err == nil {
		t.Errorf("expected a transport error, got %+v", apiErr)
	}
	if len(rec.errors) != 1 || rec.errors[0] != "offline" {
		t.Errorf("notified %v", rec.errors)
	}
}

func TestPatchUsesMethodOverride(t *testing.T) {
	srv, reqs := newTestServer(t, http.StatusOK, `{"id":3}`)
	c := NewClient(Options{BaseURL: srv.URL, Tenants: staticTenant("viva")})

	form := NewForm().Set("name", "Салати").Set("is_active", "1").
		File("image", "salad.jpg", strings.NewReader("jpegbytes"))
	if _, err := c.Patch(context.Background(), "/categories/3", form); err != nil {
		t.Fatal(err)
	}

	got := (*reqs)[0]
	if got.method != http.MethodPost {
		t.Errorf("method = %s, want POST", got.method)
	}
	if got.query.Get("_method") != "PATCH" || got.query.Get(TenantParam) != "viva" {
		t.Errorf("query = %v", got.query)
	}
	if !strings.HasPrefix(got.header.Get("Content-Type"), "multipart/form-data") {
		t.Errorf("Content-Type = %q", got.header.Get("Content-Type"))
	}
	for _, want := range []string{"Салати", `name="is_active"`, `filename="salad.jpg"`, "jpegbytes"} {
		if !strings.Contains(got.body, want) {
			t.Errorf("multipart body missing %q", want)
		}
	}
}

func TestPostJSON(t *testing.T) {
	srv, reqs := newTestServer(t, http.StatusCreated, `{}`)
	c := NewClient(Options{BaseURL: srv.URL})

	if _, err := c.PostJSON(context.Background(), "/categories/reorder", tenant.ReorderRequest{IDs: []int{3, 1, 2}}); err != nil {
		t.Fatal(err)
	}
	got := (*reqs)[0]
	if got.body != `{"ids":[3,1,2]}` {
		t.Errorf("body = %s", got.body)
	}
	if got.header.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", got.header.Get("Content-Type"))
	}
}

func TestCancelledRequestIsNotReported(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	rec := &recorder{}
	c := NewClient(Options{BaseURL: srv.URL, Notifier: rec, FallbackMessage: "fallback"})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()
	_, err := c.Get(ctx, "/dishes", nil)

	var apiErr *Error
	if !errors.As(err, &apiErr) || !apiErr.IsTransport() {
		t.Fatalf("err = %v, want a transport *Error", err)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.errors) != 0 {
		t.Errorf("cancelled call notified %v", rec.errors)
	}
}

func TestRequestIDForwarded(t *testing.T) {
	srv, reqs := newTestServer(t, http.StatusOK, `{}`)
	c := NewClient(Options{BaseURL: srv.URL})

	if _, err := c.Get(WithRequestID(context.Background(), "req-42"), "/dishes", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(context.Background(), "/dishes", nil); err != nil {
		t.Fatal(err)
	}

	if got := (*reqs)[0].header.Get("X-Request-Id"); got != "req-42" {
		t.Errorf("forwarded id = %q, want req-42", got)
	}
	if got := (*reqs)[1].header.Get("X-Request-Id"); got == "" || got == "req-42" {
		t.Errorf("fresh id = %q", got)
	}
}
