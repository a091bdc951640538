package service

import (
	"context"
	"strings"
	"time"

	"github.com/mhagyesh07/ITCC-System/internal/errs"
	"github.com/mhagyesh07/ITCC-System/internal/models"
	"github.com/mhagyesh07/ITCC-System/internal/repository"
	"github.com/mhagyesh07/ITCC-System/internal/utils"
)

type AuthService struct {
	users         repository.UserRepository
	sessionSecret string
	tokenTTL      time.Duration
}

func NewAuthService(users repository.UserRepository, sessionSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, sessionSecret: sessionSecret, tokenTTL: tokenTTL}
}

type SignupInput struct {
	Name           string `json:"name"`
	Dept           string `json:"dept"`
	Designation    string `json:"designation"`
	Email          string `json:"email"`
	ContactNumber  string `json:"contactNumber"`
	EmployeeNumber string `json:"employeeNumber"`
	Role           string `json:"role"`
	Password       string `json:"password"`
}

// Signup creates an account. The password is hashed explicitly here, before
// the store write; the store never sees plaintext.
func (a *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, string, error) {
	u := &models.User{
		Name:           strings.TrimSpace(in.Name),
		Dept:           strings.TrimSpace(in.Dept),
		Designation:    strings.TrimSpace(in.Designation),
		Email:          strings.ToLower(strings.TrimSpace(in.Email)),
		ContactNumber:  strings.TrimSpace(in.ContactNumber),
		EmployeeNumber: strings.TrimSpace(in.EmployeeNumber),
		Role:           models.Role(strings.ToLower(strings.TrimSpace(in.Role))),
	}

	switch {
	case u.Name == "", u.Dept == "", u.Designation == "", u.Email == "",
		u.ContactNumber == "", u.EmployeeNumber == "":
		return nil, "", errs.Validation("all fields are required")
	case !u.Role.Valid():
		return nil, "", errs.Validation("role must be employee or admin")
	case len(in.Password) < 6:
		return nil, "", errs.Validation("password must be at least 6 characters")
	}

	if existing, _, err := a.users.GetByEmail(ctx, u.Email); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", errs.ErrDuplicate
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}
	// The unique indexes still backstop the race between the email check
	// above and this insert (duplicate employee numbers land here too).
	if err := a.users.Create(ctx, u, hash); err != nil {
		return nil, "", err
	}

	tok, err := utils.SignJWT(a.sessionSecret, u.ID, string(u.Role), a.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

// Login verifies credentials and issues a session token. An unknown email
// reports ErrNotFound; a wrong password reports ErrInvalidCredentials.
func (a *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	u, hash, err := a.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, errs.ErrNotFound
	}
	if !utils.CheckPassword(hash, password) {
		return "", nil, errs.ErrInvalidCredentials
	}
	tok, err := utils.SignJWT(a.sessionSecret, u.ID, string(u.Role), a.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// ResetEmployeePassword rehashes and replaces the credential of the employee
// with the given email. Admin accounts cannot be reset through this path.
func (a *AuthService) ResetEmployeePassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < 6 {
		return errs.Validation("password must be at least 6 characters")
	}
	u, oldHash, err := a.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if u == nil || u.Role != models.RoleEmployee {
		return errs.ErrNotFound
	}
	// Skip the write when the submitted password already matches.
	if utils.CheckPassword(oldHash, newPassword) {
		return nil
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return a.users.UpdatePassword(ctx, u.ID, hash)
}
