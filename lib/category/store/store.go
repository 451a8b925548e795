package categorystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "servis-takip-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Category) (id string, err error)
	GetByID(id string) (*dbmodels.Category, error)
	List(onlyActive bool) ([]dbmodels.Category, error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Category) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Category, error) {
	rec := dbmodels.Category{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) List(onlyActive bool) (list []dbmodels.Category, err error) {
	tx := i.db.Order("name")
	if onlyActive {
		tx = tx.Where("is_active = ?", true)
	}
	err = tx.
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.Category{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Category{}).
		Error
}
