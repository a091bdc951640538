package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/mhagyesh07/ITCC-System/internal/errs"
	"github.com/mhagyesh07/ITCC-System/internal/repository"
	"github.com/mhagyesh07/ITCC-System/internal/service"
	"github.com/mhagyesh07/ITCC-System/internal/utils"
)

// UserHTTP wires the account endpoints: signup, login, profile, listing and
// the admin password reset.
type UserHTTP struct {
	svc   *service.AuthService
	users repository.UserRepository
	log   zerolog.Logger
}

func NewUserHTTP(svc *service.AuthService, users repository.UserRepository, log zerolog.Logger) *UserHTTP {
	return &UserHTTP{svc: svc, users: users, log: log}
}

// POST /api/users
func (h *UserHTTP) Signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.SignupInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		u, tok, err := h.svc.Signup(r.Context(), in)
		if err != nil {
			writeErr(w, h.log, err)
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{
			"message": "User created successfully",
			"token":   tok,
			"user":    u,
		})
	}
}

// POST /api/users/login
func (h *UserHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		tok, u, err := h.svc.Login(r.Context(), in.Email, in.Password)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				utils.Error(w, http.StatusNotFound, "no account found with this email")
				return
			}
			writeErr(w, h.log, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"message": "Login successful",
			"token":   tok,
			"role":    u.Role,
		})
	}
}

// GET /api/users/profile
func (h *UserHTTP) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := identity(r)
		u, err := h.users.GetByID(r.Context(), caller.UserID)
		if err != nil {
			writeErr(w, h.log, err)
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}

// GET /api/users (admin only, guarded at the route)
func (h *UserHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.users.List(r.Context())
		if err != nil {
			writeErr(w, h.log, err)
			return
		}
		utils.JSON(w, http.StatusOK, users)
	}
}

// POST /api/users/admin/reset-password (admin only)
func (h *UserHTTP) ResetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email       string `json:"email"`
			NewPassword string `json:"newPassword"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := h.svc.ResetEmployeePassword(r.Context(), in.Email, in.NewPassword); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				utils.Error(w, http.StatusNotFound, "employee not found")
				return
			}
			writeErr(w, h.log, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]string{"message": "Password reset successfully"})
	}
}
