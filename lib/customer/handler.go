package customerhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"servis-takip-backend/db"
	customerstore "servis-takip-backend/lib/customer/store"
	customerapimodels "servis-takip-backend/models/api/customer"
	dbmodels "servis-takip-backend/models/db"
)

type Provider interface {
	Create(data customerapimodels.CustomerData) (id string, err error)
	Update(id string, data customerapimodels.CustomerData) error
	Get(id string) (*customerapimodels.CustomerView, error)
	List() ([]customerapimodels.CustomerView, error)
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		customerStore: customerstore.NewInstance(db.DB),
	}
}

type impl struct {
	customerStore customerstore.Provider
}

func (i impl) Create(data customerapimodels.CustomerData) (string, error) {
	rec := dbmodels.Customer{
		Name:         data.Name,
		ContactName:  data.ContactName,
		ContactEmail: data.ContactEmail,
		Phone:        data.Phone,
		Address:      data.Address,
	}
	id, err := i.customerStore.Create(rec)
	if err != nil {
		log.WithError(err).Error("müşteri kaydedilemedi")
		return "", err
	}
	return id, nil
}

func (i impl) Update(id string, data customerapimodels.CustomerData) error {
	rec, err := i.customerStore.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("müşteri bulunamadı")
	}
	updMap := map[string]interface{}{
		"name":          data.Name,
		"contact_name":  data.ContactName,
		"contact_email": data.ContactEmail,
		"phone":         data.Phone,
		"address":       data.Address,
	}
	return i.customerStore.Update(id, updMap)
}

func (i impl) Get(id string) (*customerapimodels.CustomerView, error) {
	rec, err := i.customerStore.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	view := rec.ToModelView()
	return &view, nil
}

func (i impl) List() (list []customerapimodels.CustomerView, err error) {
	recList, err := i.customerStore.List()
	if err != nil {
		log.WithError(err).Error("müşteri listesi alınamadı")
		return nil, err
	}
	for _, rec := range recList {
		list = append(list, rec.ToModelView())
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	rec, err := i.customerStore.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("müşteri bulunamadı")
	}
	return i.customerStore.Delete(id)
}
