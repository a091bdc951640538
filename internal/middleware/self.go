package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mhagyesh07/ITCC-System/internal/utils"
)

// RequireSelfOrRoles allows the request if the {employeeId} path parameter
// equals the authenticated user id, OR the user holds one of the given
// roles. Guards the per-employee ticket listing.
func RequireSelfOrRoles(roles ...string) func(http.Handler) http.Handler {
	roleSet := map[string]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxUID, _ := utils.GetString(r.Context(), CtxUserID)
			ctxRole, _ := utils.GetString(r.Context(), CtxRole)
			pathID := chi.URLParam(r, "employeeId")

			if _, ok := roleSet[ctxRole]; ok {
				next.ServeHTTP(w, r)
				return
			}
			if ctxUID != "" && pathID == ctxUID {
				next.ServeHTTP(w, r)
				return
			}
			utils.Error(w, http.StatusForbidden, "not authorized to view these tickets")
		})
	}
}
