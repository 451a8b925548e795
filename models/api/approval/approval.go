package approvalapimodels

import (
	"time"

	"servis-takip-backend/models"
)

// TicketPublicView is the snapshot shown to the token-bearing customer.
// It must never expose internal ids other than the ticket's own id.
// A processed link carries only id, status and approval date.
type TicketPublicView struct {
	ID           string              `json:"id"`
	Customer     string              `json:"customer,omitempty"`
	Category     string              `json:"category,omitempty"`
	Staff        string              `json:"staff,omitempty"`
	Subject      string              `json:"subject,omitempty"`
	Description  string              `json:"description,omitempty"`
	Location     string              `json:"location,omitempty"`
	StartTime    *time.Time          `json:"start_time,omitempty"`
	EndTime      *time.Time          `json:"end_time,omitempty"`
	Status       models.TicketStatus `json:"status,omitempty"`
	ApprovalDate *time.Time          `json:"approval_date,omitempty"`
}

type VerifyResult struct {
	Valid     bool              `json:"valid"`
	Processed bool              `json:"processed,omitempty"`
	Message   string            `json:"message,omitempty"`
	Ticket    *TicketPublicView `json:"ticket,omitempty"`
}

type ProcessRequest struct {
	Reason string `json:"reason"`
}

type ProcessResult struct {
	ID               string              `json:"id"`
	Status           models.TicketStatus `json:"status"`
	Customer         string              `json:"customer"`
	ApprovalDate     *time.Time          `json:"approvalDate,omitempty"`
	AlreadyProcessed bool                `json:"-"`
}

type StaffTransitionRequest struct {
	Notes string `json:"notes"`
}
