package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const requestInfoKey contextKey = "request_info"

// requestInfo is filled in by handlers deeper in the chain so that Metrics and
// Logging, which wrap the whole router, can read the matched route and user.
type requestInfo struct {
	route  string
	userID uuid.UUID
	authed bool
}

// withRequestInfo attaches a requestInfo to r, reusing one an outer middleware already set.
func withRequestInfo(r *http.Request) (*http.Request, *requestInfo) {
	if info := requestInfoFrom(r.Context()); info != nil {
		return r, info
	}
	info := &requestInfo{}
	return r.WithContext(context.WithValue(r.Context(), requestInfoKey, info)), info
}

func requestInfoFrom(ctx context.Context) *requestInfo {
	info, _ := ctx.Value(requestInfoKey).(*requestInfo)
	return info
}

// routeOf returns the template recorded by RecordRoute, or the one of the current mux route.
func (i *requestInfo) routeOf(r *http.Request) string {
	if i.route != "" {
		return i.route
	}
	return routeTemplate(r)
}

// RecordRoute is installed with router.Use and stores the matched route template.
func RecordRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if info := requestInfoFrom(r.Context()); info != nil {
			info.route = routeTemplate(r)
		}
		next.ServeHTTP(w, r)
	})
}
