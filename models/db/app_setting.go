package dbmodels

import (
	"servis-takip-backend/models"
	settingsapimodels "servis-takip-backend/models/api/settings"
)

type AppSetting struct {
	BaseModel
	Code  models.AppSettingCode   `gorm:"type:varchar(255);uniqueIndex"`
	Name  string                  `gorm:"type:varchar(255)"`
	Kind  models.SettingValueKind `gorm:"type:varchar(20);default:string"`
	Value string                  `gorm:"type:varchar(2000)"`
}

func (r AppSetting) ToModelView() settingsapimodels.AppSettingView {
	return settingsapimodels.AppSettingView{
		ID:    r.ID,
		Code:  r.Code,
		Name:  r.Name,
		Kind:  r.Kind,
		Value: r.Value,
	}
}

var DefaultCompanyInfoSetting = AppSetting{
	Name:  "şirket bilgileri (ad, adres, telefon)",
	Code:  models.CompanyInfoSetting,
	Kind:  models.SettingValueJSON,
	Value: `{"name":"Servis Takip","address":"","phone":""}`,
}

var DefaultAppBaseUrlSetting = AppSetting{
	Name:  "onay bağlantıları için uygulama adresi",
	Code:  models.AppBaseUrlSetting,
	Kind:  models.SettingValueString,
	Value: "http://localhost:3000",
}

var DefaultSenderEmailSetting = AppSetting{
	Name:  "müşterilere gönderilen e-postaların adresi",
	Code:  models.SenderEmailSetting,
	Kind:  models.SettingValueString,
	Value: "",
}

var DefaultRejectReasonSetting = AppSetting{
	Name:  "gerekçe belirtilmediğinde kullanılacak red mesajı",
	Code:  models.RejectDefaultReason,
	Kind:  models.SettingValueString,
	Value: "Müşteri tarafından reddedildi",
}

var DefaultSettingsMap = map[models.AppSettingCode]AppSetting{
	models.CompanyInfoSetting:  DefaultCompanyInfoSetting,
	models.AppBaseUrlSetting:   DefaultAppBaseUrlSetting,
	models.SenderEmailSetting:  DefaultSenderEmailSetting,
	models.RejectDefaultReason: DefaultRejectReasonSetting,
}
