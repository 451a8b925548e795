package dbmodels

import (
	"time"

	"servis-takip-backend/models"
	approvalapimodels "servis-takip-backend/models/api/approval"
	ticketapimodels "servis-takip-backend/models/api/ticket"
)

type ServiceTicket struct {
	BaseModel
	CustomerID string    `gorm:"type:varchar(36);index"`
	Customer   *Customer `gorm:"foreignKey:CustomerID"`
	CategoryID string    `gorm:"type:varchar(36);index"`
	Category   *Category `gorm:"foreignKey:CategoryID"`
	UserID     string    `gorm:"type:varchar(36);index"`
	User       *User     `gorm:"foreignKey:UserID"`
	ApproverID string    `gorm:"type:varchar(36)"`
	Approver   *User     `gorm:"foreignKey:ApproverID"`

	StartTime time.Time
	EndTime   time.Time
	// saat cinsinden, kaydetme sırasında yeniden hesaplanır
	Duration float64

	Subject     string `gorm:"type:varchar(100)"`
	Description string
	Location    string `gorm:"type:varchar(500)"`

	Status           models.TicketStatus `gorm:"type:varchar(20);index;default:pending"`
	ApprovalToken    *string             `gorm:"type:varchar(64);uniqueIndex"`
	// cleared approval token, kept so a used link can be told apart from an unknown one
	SpentToken       *string             `gorm:"type:varchar(64);index"`
	PdfToken         *string             `gorm:"type:varchar(64);index"`
	EmailSent        bool                `gorm:"default:false"`
	ExternalApproval bool                `gorm:"default:false"`
	ApprovalDate     *time.Time
	ApprovalNotes    string

	Images []TicketImage `gorm:"foreignKey:TicketID"`
}

// CalcDuration returns the end-start span in hours
func (t ServiceTicket) CalcDuration() float64 {
	return t.EndTime.Sub(t.StartTime).Hours()
}

func (t ServiceTicket) ToModelView() ticketapimodels.TicketView {
	view := ticketapimodels.TicketView{
		ID:               t.ID,
		CustomerID:       t.CustomerID,
		CategoryID:       t.CategoryID,
		UserID:           t.UserID,
		StartTime:        t.StartTime,
		EndTime:          t.EndTime,
		Duration:         t.Duration,
		Subject:          t.Subject,
		Description:      t.Description,
		Location:         t.Location,
		Status:           t.Status,
		EmailSent:        t.EmailSent,
		ExternalApproval: t.ExternalApproval,
		ApprovalDate:     t.ApprovalDate,
		ApprovalNotes:    t.ApprovalNotes,
		CreatedAt:        t.CreatedAt,
	}
	if t.Customer != nil {
		view.CustomerName = t.Customer.Name
	}
	if t.Category != nil {
		view.CategoryName = t.Category.Name
	}
	if t.User != nil {
		view.UserName = t.User.GetFullName()
	}
	return view
}

// ToPublicView exposes only what the token-bearing customer may see
func (t ServiceTicket) ToPublicView() approvalapimodels.TicketPublicView {
	startTime := t.StartTime
	endTime := t.EndTime
	view := approvalapimodels.TicketPublicView{
		ID:          t.ID,
		Subject:     t.Subject,
		Description: t.Description,
		Location:    t.Location,
		StartTime:   &startTime,
		EndTime:     &endTime,
		Status:      t.Status,
	}
	if t.Customer != nil {
		view.Customer = t.Customer.Name
	}
	if t.Category != nil {
		view.Category = t.Category.Name
	}
	if t.User != nil {
		view.Staff = t.User.GetFullName()
	}
	return view
}

// ToProcessedView is the reduced snapshot returned for a spent approval link
func (t ServiceTicket) ToProcessedView() approvalapimodels.TicketPublicView {
	return approvalapimodels.TicketPublicView{
		ID:           t.ID,
		Status:       t.Status,
		ApprovalDate: t.ApprovalDate,
	}
}
