package tenant

import (
	"context"
	"strings"
)

// Route prefixes that carry a restaurant slug as their next segment, in
// match order.
var slugPrefixes = []string{"/admin/r/", "/menu/"}

// FromPath extracts the restaurant slug from a navigation path such as
// /admin/r/viva/categories or /menu/viva/c/3.
func FromPath(path string) (string, bool) {
	for _, prefix := range slugPrefixes {
		idx := strings.Index(path, prefix)
		if idx < 0 {
			continue
		}
		rest := path[idx+len(prefix):]
		if cut := strings.IndexAny(rest, "/?#"); cut >= 0 {
			rest = rest[:cut]
		}
		if rest != "" {
			return rest, true
		}
	}
	return "", false
}

type pathKey struct{}

// WithPath records the current navigation location on ctx.
func WithPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, pathKey{}, path)
}

// PathFrom returns the navigation location recorded on ctx, or "".
func PathFrom(ctx context.Context) string {
	p, _ := ctx.Value(pathKey{}).(string)
	return p
}

// AdminPath is the navigation path of a restaurant's admin screens.
func AdminPath(slug string) string {
	return "/admin/r/" + slug
}
