package userapimodels

import (
	"net/mail"

	"github.com/pkg/errors"

	"servis-takip-backend/models"
)

type UserData struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	Role      models.UserRole `json:"role"`
	IsActive  *bool           `json:"is_active"`
}

func (r UserData) Validate() error {
	if r.FirstName == "" || r.LastName == "" {
		return errors.New("ad ve soyad zorunludur")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("geçersiz e-posta adresi")
	}
	if r.Role != models.AdminRole && r.Role != models.StaffRole {
		return errors.New("geçersiz rol")
	}
	return nil
}

type UserView struct {
	ID        string          `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	IsActive  bool            `json:"is_active"`
}
