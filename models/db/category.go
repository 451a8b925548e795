package dbmodels

import (
	categoryapimodels "servis-takip-backend/models/api/category"
)

type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(255)"`
	Description string
	IsActive    bool `gorm:"default:true"`
}

func (r Category) ToModelView() categoryapimodels.CategoryView {
	return categoryapimodels.CategoryView{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
	}
}
