package customerapimodels

import (
	"net/mail"

	"github.com/pkg/errors"
)

type CustomerData struct {
	Name         string `json:"name"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

func (r CustomerData) Validate() error {
	if r.Name == "" {
		return errors.New("müşteri adı zorunludur")
	}
	if r.ContactEmail != "" {
		if _, err := mail.ParseAddress(r.ContactEmail); err != nil {
			return errors.New("geçersiz e-posta adresi")
		}
	}
	return nil
}

type CustomerView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}
