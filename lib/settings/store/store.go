package settingsstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"servis-takip-backend/models"
	dbmodels "servis-takip-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.AppSetting) error
	GetByCode(code models.AppSettingCode) (*dbmodels.AppSetting, error)
	List() ([]dbmodels.AppSetting, error)
	Update(code models.AppSettingCode, value string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AppSetting) error {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) GetByCode(code models.AppSettingCode) (*dbmodels.AppSetting, error) {
	rec := dbmodels.AppSetting{}
	err := i.db.
		Where("code = ?", code).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List() (list []dbmodels.AppSetting, err error) {
	err = i.db.
		Order("code").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(code models.AppSettingCode, value string) error {
	return i.db.
		Model(&dbmodels.AppSetting{}).
		Where("code = ?", code).
		Update("value", value).
		Error
}
