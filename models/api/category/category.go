package categoryapimodels

import (
	"github.com/pkg/errors"
)

type CategoryData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

func (r CategoryData) Validate() error {
	if r.Name == "" {
		return errors.New("kategori adı zorunludur")
	}
	return nil
}

type CategoryView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}
