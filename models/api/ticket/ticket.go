package ticketapimodels

import (
	"time"

	"github.com/pkg/errors"

	"servis-takip-backend/models"
	apimodels "servis-takip-backend/models/api"
)

type TicketData struct {
	CustomerID  string    `json:"customer_id"`
	CategoryID  string    `json:"category_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
}

func (r TicketData) Validate() error {
	if r.CustomerID == "" {
		return errors.New("müşteri seçilmedi")
	}
	if r.CategoryID == "" {
		return errors.New("kategori seçilmedi")
	}
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		return errors.New("başlangıç ve bitiş zamanı zorunludur")
	}
	if !r.EndTime.After(r.StartTime) {
		return errors.New("bitiş zamanı başlangıçtan sonra olmalıdır")
	}
	if len(r.Subject) > 100 {
		return errors.New("konu en fazla 100 karakter olabilir")
	}
	return nil
}

type TicketView struct {
	ID               string              `json:"id"`
	CustomerID       string              `json:"customer_id"`
	CustomerName     string              `json:"customer_name,omitempty"`
	CategoryID       string              `json:"category_id"`
	CategoryName     string              `json:"category_name,omitempty"`
	UserID           string              `json:"user_id"`
	UserName         string              `json:"user_name,omitempty"`
	StartTime        time.Time           `json:"start_time"`
	EndTime          time.Time           `json:"end_time"`
	Duration         float64             `json:"duration"`
	Subject          string              `json:"subject"`
	Description      string              `json:"description"`
	Location         string              `json:"location"`
	Status           models.TicketStatus `json:"status"`
	EmailSent        bool                `json:"email_sent"`
	ExternalApproval bool                `json:"external_approval"`
	ApprovalDate     *time.Time          `json:"approval_date,omitempty"`
	ApprovalNotes    string              `json:"approval_notes,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

type TicketFilter struct {
	apimodels.Pagination
	Status     models.TicketStatus `json:"status"`
	CategoryID string              `json:"category_id"`
	CustomerID string              `json:"customer_id"`
	DateFrom   *time.Time          `json:"date_from"`
	DateTo     *time.Time          `json:"date_to"`
}

type TicketImageView struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	Caption  string `json:"caption"`
}
