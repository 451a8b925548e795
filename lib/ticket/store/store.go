package ticketstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"servis-takip-backend/models"
	ticketapimodels "servis-takip-backend/models/api/ticket"
	dbmodels "servis-takip-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ServiceTicket) (id string, err error)
	GetByID(id string) (*dbmodels.ServiceTicket, error)
	GetByApprovalToken(token string) (*dbmodels.ServiceTicket, error)
	GetByPdfToken(token string) (*dbmodels.ServiceTicket, error)
	FindProcessedByToken(token string) (*dbmodels.ServiceTicket, error)
	List(filter ticketapimodels.TicketFilter) (list []dbmodels.ServiceTicket, rowCount int64, err error)
	Update(id string, updMap map[string]interface{}) error
	// TransitionByToken performs the conditional pending->terminal update.
	// The affected row count is the only truth for whether this call made the transition.
	TransitionByToken(token string, updMap map[string]interface{}) (affected int64, err error)
	TransitionByID(id string, updMap map[string]interface{}) (affected int64, err error)
	Delete(id string) error
	AddImage(rec dbmodels.TicketImage) (id string, err error)
	ListImages(ticketID string) ([]dbmodels.TicketImage, error)
	GetImage(ticketID, imageID string) (*dbmodels.TicketImage, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ServiceTicket) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) getPreloaded() *gorm.DB {
	return i.db.
		Preload("Customer").
		Preload("Category").
		Preload("User").
		Preload("Approver").
		Preload("Images")
}

func (i impl) GetByID(id string) (*dbmodels.ServiceTicket, error) {
	rec := dbmodels.ServiceTicket{}
	err := i.getPreloaded().
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByApprovalToken(token string) (*dbmodels.ServiceTicket, error) {
	rec := dbmodels.ServiceTicket{}
	err := i.getPreloaded().
		Where("approval_token = ?", token).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByPdfToken(token string) (*dbmodels.ServiceTicket, error) {
	rec := dbmodels.ServiceTicket{}
	err := i.getPreloaded().
		Where("pdf_token = ?", token).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// FindProcessedByToken locates a terminal ticket that carried the given
// approval token before the token column was cleared.
func (i impl) FindProcessedByToken(token string) (*dbmodels.ServiceTicket, error) {
	rec := dbmodels.ServiceTicket{}
	err := i.getPreloaded().
		Where("spent_token = ? AND status <> ?", token, models.TicketStatusPending).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(filter ticketapimodels.TicketFilter) (list []dbmodels.ServiceTicket, rowCount int64, err error) {
	tx := i.db.Model(&dbmodels.ServiceTicket{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != "" {
		tx = tx.Where("category_id = ?", filter.CategoryID)
	}
	if filter.CustomerID != "" {
		tx = tx.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.DateFrom != nil {
		tx = tx.Where("start_time >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		tx = tx.Where("start_time <= ?", *filter.DateTo)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	err = tx.
		Preload("Customer").
		Preload("Category").
		Preload("User").
		Order("start_time desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.ServiceTicket{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) TransitionByToken(token string, updMap map[string]interface{}) (affected int64, err error) {
	res := i.db.
		Model(&dbmodels.ServiceTicket{}).
		Where("approval_token = ? AND status = ?", token, models.TicketStatusPending).
		Updates(updMap)
	return res.RowsAffected, res.Error
}

func (i impl) TransitionByID(id string, updMap map[string]interface{}) (affected int64, err error) {
	res := i.db.
		Model(&dbmodels.ServiceTicket{}).
		Where("id = ? AND status = ?", id, models.TicketStatusPending).
		Updates(updMap)
	return res.RowsAffected, res.Error
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.ServiceTicket{}).
		Error
}

func (i impl) AddImage(rec dbmodels.TicketImage) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListImages(ticketID string) (list []dbmodels.TicketImage, err error) {
	err = i.db.
		Where("ticket_id = ?", ticketID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetImage(ticketID, imageID string) (*dbmodels.TicketImage, error) {
	rec := dbmodels.TicketImage{}
	err := i.db.
		Where("ticket_id = ? AND id = ?", ticketID, imageID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
