package dbmodels

import (
	"fmt"

	"servis-takip-backend/models"
	userapimodels "servis-takip-backend/models/api/user"
)

type User struct {
	BaseModel
	FirstName string          `gorm:"type:varchar(100)"`
	LastName  string          `gorm:"type:varchar(100)"`
	Email     string          `gorm:"type:varchar(255);uniqueIndex"`
	Password  string          `gorm:"type:varchar(64)"` // md5 hex
	Role      models.UserRole `gorm:"type:varchar(20)"`
	IsActive  bool            `gorm:"default:true"`
}

func (u User) GetFullName() string {
	return fmt.Sprintf("%v %v", u.FirstName, u.LastName)
}

func (u User) ToModelView() userapimodels.UserView {
	return userapimodels.UserView{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
	}
}
