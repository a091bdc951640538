package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mhagyesh07/ITCC-System/internal/errs"
	"github.com/mhagyesh07/ITCC-System/internal/middleware"
	"github.com/mhagyesh07/ITCC-System/internal/models"
	"github.com/mhagyesh07/ITCC-System/internal/service"
	"github.com/mhagyesh07/ITCC-System/internal/utils"
)

// writeErr maps the shared error taxonomy onto HTTP statuses. Unknown
// errors are logged and reported generically so internals never leak.
func writeErr(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		msg := strings.TrimPrefix(err.Error(), errs.ErrValidation.Error()+": ")
		utils.Error(w, http.StatusBadRequest, msg)
	case errors.Is(err, errs.ErrDuplicate):
		utils.Error(w, http.StatusBadRequest, "email or employee number already exists")
	case errors.Is(err, errs.ErrInvalidCredentials):
		utils.Error(w, http.StatusBadRequest, "invalid email or password")
	case errors.Is(err, errs.ErrForbidden):
		utils.Error(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, errs.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "not found")
	default:
		log.Error().Err(err).Msg("request failed")
		utils.Error(w, http.StatusInternalServerError, "internal error")
	}
}

// identity assembles the caller's identity from the guard's context values.
func identity(r *http.Request) service.Identity {
	uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
	role, _ := utils.GetString(r.Context(), middleware.CtxRole)
	return service.Identity{UserID: uid, Role: models.Role(role)}
}
