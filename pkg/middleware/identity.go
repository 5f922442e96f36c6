package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/user"
	"github.com/crewcall-hq/crewcall/pkg/composables"
)

// WithIdentity resolves the acting tenant and user from the X-Tenant-ID and
// X-User-ID headers, set by the authenticating reverse proxy in front of
// this service. Requests without the headers proceed unauthenticated and
// are rejected later by the access checks that need an identity.
func WithIdentity(users user.Repository) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if tenantID, err := uuid.Parse(r.Header.Get("X-Tenant-ID")); err == nil {
				ctx = composables.WithTenantID(ctx, tenantID)
			}
			if userID, err := uuid.Parse(r.Header.Get("X-User-ID")); err == nil {
				if u, err := users.GetByID(ctx, userID); err == nil {
					ctx = composables.WithUser(ctx, u)
					if params, ok := composables.UseParams(ctx); ok {
						params.Authenticated = true
					}
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
