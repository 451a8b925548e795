package reporthandler

import (
	"bytes"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"servis-takip-backend/db"
	xlsexport "servis-takip-backend/lib/export/xls"
	reportapimodels "servis-takip-backend/models/api/report"
	dbmodels "servis-takip-backend/models/db"
)

type Provider interface {
	Summary(filter reportapimodels.ReportFilter) (*reportapimodels.SummaryView, error)
	ExportTickets(filter reportapimodels.ReportFilter) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		db: db.DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) scoped(filter reportapimodels.ReportFilter) *gorm.DB {
	tx := i.db.Model(&dbmodels.ServiceTicket{})
	if filter.DateFrom != nil {
		tx = tx.Where("start_time >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		tx = tx.Where("start_time <= ?", *filter.DateTo)
	}
	return tx
}

type countRow struct {
	Key   string
	Label string
	Count int64
}

func (i impl) Summary(filter reportapimodels.ReportFilter) (*reportapimodels.SummaryView, error) {
	view := reportapimodels.SummaryView{}
	err := i.scoped(filter).Count(&view.Total).Error
	if err != nil {
		log.WithError(err).Error("rapor toplamı alınamadı")
		return nil, err
	}

	byStatus := []countRow{}
	err = i.scoped(filter).
		Select("status as key, status as label, count(*) as count").
		Group("status").
		Scan(&byStatus).
		Error
	if err != nil {
		log.WithError(err).Error("durum kırılımı alınamadı")
		return nil, err
	}
	view.ByStatus = toApiRows(byStatus)

	byCategory := []countRow{}
	err = i.scoped(filter).
		Select("service_tickets.category_id as key, categories.name as label, count(*) as count").
		Joins("left join categories on categories.id = service_tickets.category_id").
		Group("service_tickets.category_id, categories.name").
		Scan(&byCategory).
		Error
	if err != nil {
		log.WithError(err).Error("kategori kırılımı alınamadı")
		return nil, err
	}
	view.ByCategory = toApiRows(byCategory)

	byStaff := []countRow{}
	err = i.scoped(filter).
		Select("service_tickets.user_id as key, concat(users.first_name, ' ', users.last_name) as label, count(*) as count").
		Joins("left join users on users.id = service_tickets.user_id").
		Group("service_tickets.user_id, users.first_name, users.last_name").
		Scan(&byStaff).
		Error
	if err != nil {
		log.WithError(err).Error("personel kırılımı alınamadı")
		return nil, err
	}
	view.ByStaff = toApiRows(byStaff)

	return &view, nil
}

func (i impl) ExportTickets(filter reportapimodels.ReportFilter) (*bytes.Buffer, error) {
	list := []dbmodels.ServiceTicket{}
	tx := i.db.
		Preload("Customer").
		Preload("Category").
		Preload("User")
	if filter.DateFrom != nil {
		tx = tx.Where("start_time >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		tx = tx.Where("start_time <= ?", *filter.DateTo)
	}
	err := tx.
		Order("start_time desc").
		Find(&list).
		Error
	if err != nil {
		log.WithError(err).Error("rapor için servis formları alınamadı")
		return nil, err
	}
	return xlsexport.Instance.ExportTicketList(list)
}

func toApiRows(rows []countRow) []reportapimodels.CountRow {
	result := make([]reportapimodels.CountRow, 0, len(rows))
	for _, row := range rows {
		label := row.Label
		if label == "" || label == " " {
			label = row.Key
		}
		result = append(result, reportapimodels.CountRow{
			Key:   row.Key,
			Label: label,
			Count: row.Count,
		})
	}
	return result
}

// DefaultRange returns the current month when no range is supplied
func DefaultRange() reportapimodels.ReportFilter {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return reportapimodels.ReportFilter{DateFrom: &from, DateTo: &now}
}
