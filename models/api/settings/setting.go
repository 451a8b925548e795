package settingsapimodels

import (
	"github.com/pkg/errors"

	"servis-takip-backend/models"
)

type AppSettingView struct {
	ID    string                  `json:"id"`
	Code  models.AppSettingCode   `json:"code"`
	Name  string                  `json:"name"`
	Kind  models.SettingValueKind `json:"kind"`
	Value string                  `json:"value"`
}

type UpdateAppSettingValue struct {
	Value string `json:"value"`
}

func (r UpdateAppSettingValue) Validate() error {
	if len(r.Value) > 2000 {
		return errors.New("değer çok uzun")
	}
	return nil
}

// CompanyInfo is the structured document stored under the company_info setting
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}
