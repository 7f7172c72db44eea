package customer

import (
	"time"

	"fitnessmanager/internal/auth"
)

type Customer struct {
	ID                  int        `db:"id" json:"id"`
	Email               string     `db:"email" json:"email"`
	FirstName           string     `db:"first_name" json:"first_name"`
	LastName            string     `db:"last_name" json:"last_name"`
	PasswordHash        string     `db:"password_hash" json:"-"`
	IsStaff             bool       `db:"is_staff" json:"is_staff"`
	IsSuperuser         bool       `db:"is_superuser" json:"is_superuser"`
	DateOfBirth         *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Address             *string    `db:"address" json:"address,omitempty"`
	PhoneNumber         *string    `db:"phone_number" json:"phone_number,omitempty"`
	RegistrationDate    time.Time  `db:"registration_date" json:"registration_date"`
	ActiveMembership    bool       `db:"active_membership" json:"active_membership"`
	MembershipStartDate *time.Time `db:"membership_start_date" json:"membership_start_date,omitempty"`
	MembershipEndDate   *time.Time `db:"membership_end_date" json:"membership_end_date,omitempty"`
	Notes               *string    `db:"notes" json:"notes,omitempty"`
	PassportNumber      *string    `db:"passport_number" json:"passport_number,omitempty"`
	Weight              *float64   `db:"weight" json:"weight,omitempty"`
	Height              *float64   `db:"height" json:"height,omitempty"`
}

// Role maps the account flags onto the token role.
func (c *Customer) Role() string {
	switch {
	case c.IsSuperuser:
		return auth.RoleAdmin
	case c.IsStaff:
		return auth.RoleStaff
	default:
		return auth.RoleMember
	}
}

func (c *Customer) Identity() auth.Identity {
	return auth.Identity{CustomerID: c.ID, Email: c.Email, Role: c.Role()}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	Customer     Customer `json:"customer"`
}

type AddToGroupRequest struct {
	GroupID int `json:"group_id" binding:"required,min=1"`
}

type CustomerDataResponse struct {
	CustomerData []map[string]any `json:"customer_data"`
}

type CustomerFieldsResponse struct {
	Fields []FieldInfo `json:"fields"`
}
