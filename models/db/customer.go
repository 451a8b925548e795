package dbmodels

import (
	customerapimodels "servis-takip-backend/models/api/customer"
)

type Customer struct {
	BaseModel
	Name         string `gorm:"type:varchar(255)"`
	ContactName  string `gorm:"type:varchar(255)"`
	ContactEmail string `gorm:"type:varchar(255)"`
	Phone        string `gorm:"type:varchar(50)"`
	Address      string
}

func (r Customer) ToModelView() customerapimodels.CustomerView {
	return customerapimodels.CustomerView{
		ID:           r.ID,
		Name:         r.Name,
		ContactName:  r.ContactName,
		ContactEmail: r.ContactEmail,
		Phone:        r.Phone,
		Address:      r.Address,
	}
}
