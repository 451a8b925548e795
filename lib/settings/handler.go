package settingshandler

import (
	"encoding/json"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"servis-takip-backend/db"
	settingsstore "servis-takip-backend/lib/settings/store"
	"servis-takip-backend/models"
	settingsapimodels "servis-takip-backend/models/api/settings"
)

type Provider interface {
	GetList() ([]settingsapimodels.AppSettingView, error)
	UpdateSettingValue(code models.AppSettingCode, value string) error
	GetString(code models.AppSettingCode) (string, error)
	GetCompanyInfo() (settingsapimodels.CompanyInfo, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		settingsStore: settingsstore.NewInstance(db.DB),
	}
}

type impl struct {
	settingsStore settingsstore.Provider
}

func (i impl) GetList() (settingsList []settingsapimodels.AppSettingView, err error) {
	list, err := i.settingsStore.List()
	if err != nil {
		log.WithError(err).Error("ayar listesi alınamadı")
		return nil, err
	}
	for _, setting := range list {
		settingsList = append(settingsList, setting.ToModelView())
	}
	return settingsList, nil
}

func (i impl) UpdateSettingValue(code models.AppSettingCode, value string) error {
	logger := log.WithField("setting_code", code)
	rec, err := i.settingsStore.GetByCode(code)
	if err != nil {
		logger.WithError(err).Error("ayar okunamadı")
		return err
	}
	if rec == nil {
		return errors.New("ayar bulunamadı")
	}
	// value must decode with the stored kind before it is persisted
	decoded, err := DecodeValue(rec.Kind, value)
	if err != nil {
		return err
	}
	encoded, err := decoded.Encode()
	if err != nil {
		return err
	}
	err = i.settingsStore.Update(code, encoded)
	if err != nil {
		logger.WithError(err).Error("ayar güncellenemedi")
		return err
	}
	return nil
}

func (i impl) GetString(code models.AppSettingCode) (string, error) {
	rec, err := i.settingsStore.GetByCode(code)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", nil
	}
	value, err := DecodeValue(rec.Kind, rec.Value)
	if err != nil {
		return "", err
	}
	if value.Kind != models.SettingValueString {
		return "", errors.Errorf("ayar düz metin değil: %v", code)
	}
	return value.Str, nil
}

func (i impl) GetCompanyInfo() (info settingsapimodels.CompanyInfo, err error) {
	rec, err := i.settingsStore.GetByCode(models.CompanyInfoSetting)
	if err != nil {
		return info, err
	}
	if rec == nil {
		return info, nil
	}
	value, err := DecodeValue(rec.Kind, rec.Value)
	if err != nil {
		return info, err
	}
	data, err := json.Marshal(value.Doc)
	if err != nil {
		return info, err
	}
	if err = json.Unmarshal(data, &info); err != nil {
		return info, errors.Wrap(err, "şirket bilgileri çözümlenemedi")
	}
	return info, nil
}
