package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/notify"
	"github.com/google/uuid"
)

// TenantParam is the query parameter carrying the restaurant slug.
const TenantParam = "restaurant"

// CredentialSource exposes the current bearer token ("" when logged out).
type CredentialSource interface {
	Token() string
}

// TenantSource resolves the active restaurant for a request.
type TenantSource interface {
	Resolve(ctx context.Context) (string, bool)
}

type Options struct {
	BaseURL         string
	HTTPClient      *http.Client
	Credentials     CredentialSource
	Tenants         TenantSource
	Notifier        notify.Notifier
	FallbackMessage string
}

// Client is the authenticated request gateway. Every call gets the bearer
// token, the tenant parameter where applicable, and uniform failure handling.
type Client struct {
	baseURL  string
	http     *http.Client
	tenants  TenantSource
	notifier notify.Notifier
	fallback string

	mu          sync.RWMutex
	credentials CredentialSource
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	n := opts.Notifier
	if n == nil {
		n = notify.Discard
	}
	fallback := opts.FallbackMessage
	if fallback == "" {
		fallback = "Възникна грешка. Опитайте отново."
	}
	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		http:        httpClient,
		tenants:     opts.Tenants,
		notifier:    n,
		fallback:    fallback,
		credentials: opts.Credentials,
	}
}

// SetCredentials replaces the credential source.
func (c *Client) SetCredentials(src CredentialSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.credentials = src
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.credentials == nil {
		return ""
	}
	return c.credentials.Token()
}

type requestIDKey struct{}

// WithRequestID makes every call issued with ctx carry id as its
// X-Request-Id, so one inbound request and its outbound calls share an id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Response is a successful (2xx) response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// IsPlatformEndpoint reports paths of the platform (all-restaurants) scope.
func IsPlatformEndpoint(path string) bool {
	return strings.HasPrefix(path, "/platform") || strings.Contains(path, "/platform/")
}

// IsAuthEndpoint reports paths of the authentication scope.
func IsAuthEndpoint(path string) bool {
	return strings.HasPrefix(path, "/auth") || strings.Contains(path, "/auth/")
}

var rawTenantParam = regexp.MustCompile(`[?&]` + TenantParam + `=`)

// Do sends one request. body is nil, a *Form (multipart) or any value
// marshaled as JSON. path may already carry a query string; query is merged
// into it.
func (c *Client) Do(ctx context.Context, method, path string, body any, query url.Values) (*Response, error) {
	req, err := c.newRequest(ctx, method, path, body, query)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		apiErr := &Error{Method: method, Path: path, Message: c.fallback, Err: err}
		if ctx.Err() != nil {
			// abandoned by the caller, not a failure to report
			log.Printf("api: %s %s cancelled [%s]: %v", method, path, req.Header.Get("X-Request-Id"), ctx.Err())
			return nil, apiErr
		}
		return nil, c.fail(apiErr, req)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, c.fail(&Error{Method: method, Path: path, Status: res.StatusCode, Message: c.fallback, Err: err}, req)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, c.fail(&Error{
			Method:  method,
			Path:    path,
			Status:  res.StatusCode,
			Message: extractMessage(data, c.fallback),
			Body:    data,
		}, req)
	}

	return &Response{Status: res.StatusCode, Header: res.Header, Body: data}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any, query url.Values) (*http.Request, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("invalid request path %q: %w", path, err)
	}

	values := ref.Query()
	for k, vs := range query {
		for _, v := range vs {
			values.Add(k, v)
		}
	}

	if !IsPlatformEndpoint(ref.Path) && !IsAuthEndpoint(ref.Path) {
		explicit := query.Has(TenantParam) || rawTenantParam.MatchString(path)
		if !explicit && c.tenants != nil {
			if slug, ok := c.tenants.Resolve(ctx); ok {
				values.Set(TenantParam, slug)
			}
		}
	}

	target := c.baseURL + ref.Path
	if encoded := values.Encode(); encoded != "" {
		target += "?" + encoded
	}

	var (
		reader      io.Reader
		contentType string
	)
	switch b := body.(type) {
	case nil:
	case *Form:
		reader, contentType, err = b.encode()
		if err != nil {
			return nil, err
		}
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	requestID := RequestIDFrom(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-Id", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// fail surfaces the message through the notifier and hands the error back
// unchanged so callers can still branch on it.
func (c *Client) fail(apiErr *Error, req *http.Request) error {
	log.Printf("api: %s %s failed [%s]: status=%d message=%q",
		apiErr.Method, apiErr.Path, req.Header.Get("X-Request-Id"), apiErr.Status, apiErr.Message)
	c.notifier.Error(apiErr.Message)
	return apiErr
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, query)
}

// PostJSON sends body as JSON.
func (c *Client) PostJSON(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, nil)
}

// PostForm sends a multipart form.
func (c *Client) PostForm(ctx context.Context, path string, form *Form) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, form, nil)
}

// Patch sends form as a method-override POST (_method=PATCH), which the
// remote form handling accepts for multipart bodies.
func (c *Client) Patch(ctx context.Context, path string, form *Form) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, form, url.Values{"_method": {"PATCH"}})
}

// PatchJSON sends a native PATCH with a JSON body.
func (c *Client) PatchJSON(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, body, nil)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}
