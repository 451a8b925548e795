package categoryhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"servis-takip-backend/db"
	categorystore "servis-takip-backend/lib/category/store"
	categoryapimodels "servis-takip-backend/models/api/category"
	dbmodels "servis-takip-backend/models/db"
)

type Provider interface {
	Create(data categoryapimodels.CategoryData) (id string, err error)
	Update(id string, data categoryapimodels.CategoryData) error
	List(onlyActive bool) ([]categoryapimodels.CategoryView, error)
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		categoryStore: categorystore.NewInstance(db.DB),
	}
}

type impl struct {
	categoryStore categorystore.Provider
}

func (i impl) Create(data categoryapimodels.CategoryData) (string, error) {
	rec := dbmodels.Category{
		Name:        data.Name,
		Description: data.Description,
		IsActive:    true,
	}
	if data.IsActive != nil {
		rec.IsActive = *data.IsActive
	}
	id, err := i.categoryStore.Create(rec)
	if err != nil {
		log.WithError(err).Error("kategori kaydedilemedi")
		return "", err
	}
	return id, nil
}

func (i impl) Update(id string, data categoryapimodels.CategoryData) error {
	rec, err := i.categoryStore.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("kategori bulunamadı")
	}
	updMap := map[string]interface{}{
		"name":        data.Name,
		"description": data.Description,
	}
	if data.IsActive != nil {
		updMap["is_active"] = *data.IsActive
	}
	return i.categoryStore.Update(id, updMap)
}

func (i impl) List(onlyActive bool) (list []categoryapimodels.CategoryView, err error) {
	recList, err := i.categoryStore.List(onlyActive)
	if err != nil {
		log.WithError(err).Error("kategori listesi alınamadı")
		return nil, err
	}
	for _, rec := range recList {
		list = append(list, rec.ToModelView())
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	rec, err := i.categoryStore.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("kategori bulunamadı")
	}
	return i.categoryStore.Delete(id)
}
