package models

type UserRole string

const (
	AdminRole UserRole = "admin"
	StaffRole UserRole = "staff"
)

type TicketStatus string

const (
	TicketStatusPending  TicketStatus = "pending"
	TicketStatusApproved TicketStatus = "approved"
	TicketStatusRejected TicketStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusApproved || s == TicketStatusRejected
}

type ApprovalAction string

const (
	ApprovalActionApprove ApprovalAction = "approve"
	ApprovalActionReject  ApprovalAction = "reject"
)

func (a ApprovalAction) IsValid() bool {
	return a == ApprovalActionApprove || a == ApprovalActionReject
}

func (a ApprovalAction) ToStatus() TicketStatus {
	if a == ApprovalActionApprove {
		return TicketStatusApproved
	}
	return TicketStatusRejected
}

type AppSettingCode string

const (
	CompanyInfoSetting  AppSettingCode = "company_info"
	AppBaseUrlSetting   AppSettingCode = "app_base_url"
	SenderEmailSetting  AppSettingCode = "sender_email"
	RejectDefaultReason AppSettingCode = "reject_default_reason"
)

type SettingValueKind string

const (
	SettingValueString SettingValueKind = "string"
	SettingValueJSON   SettingValueKind = "json"
)

type WsEventCode string

const (
	WsTicketCreated    WsEventCode = "ticket_created"
	WsTicketTransition WsEventCode = "ticket_transition"
)
