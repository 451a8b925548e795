package dbmodels

import (
	ticketapimodels "servis-takip-backend/models/api/ticket"
)

type TicketImage struct {
	BaseModel
	TicketID    string `gorm:"type:varchar(36);index"`
	ObjectKey   string `gorm:"type:varchar(500)"`
	FileName    string `gorm:"type:varchar(255)"`
	ContentType string `gorm:"type:varchar(100)"`
	Caption     string `gorm:"type:varchar(255)"`
}

func (r TicketImage) ToModelView() ticketapimodels.TicketImageView {
	return ticketapimodels.TicketImageView{
		ID:       r.ID,
		FileName: r.FileName,
		Caption:  r.Caption,
	}
}
