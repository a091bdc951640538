package models

import "time"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// User is the public shape of an account. The bcrypt credential lives only
// in the store and is never serialized.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Dept           string    `json:"dept"`
	Designation    string    `json:"designation"`
	Email          string    `json:"email"`
	ContactNumber  string    `json:"contactNumber"`
	EmployeeNumber string    `json:"employeeNumber"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
