package xlsexport

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"servis-takip-backend/models"
	dbmodels "servis-takip-backend/models/db"
)

type Provider interface {
	ExportTicketList(list []dbmodels.ServiceTicket) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var ticketHeaders = []string{"Tarih", "Müşteri", "Kategori", "Personel", "Konu", "Başlangıç", "Bitiş", "Süre (saat)", "Durum", "Onay Tarihi"}

func (i impl) ExportTicketList(list []dbmodels.ServiceTicket) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("xlsx dosyası kapatılamadı")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, ticketHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "xlsx başlık satırı oluşturulamadı")
	}
	if len(list) != 0 {
		row, err = writeTicketData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "xlsx veri tablosu oluşturulamadı")
		}
	}
	f.SetSheetName(sheet, "Servis Formları")
	return f.WriteToBuffer()
}

func writeTicketData(f *excelize.File, sheet string, list []dbmodels.ServiceTicket, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(ticketHeaders), len(list)+1); err != nil {
		return row, err
	}
	const layout = "02.01.2006 15:04"
	for _, item := range list {
		row++
		// "Tarih"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format(layout)); err != nil {
			return row, err
		}

		// "Müşteri"
		col++
		if item.Customer != nil {
			if err := writeColumn(f, sheet, col, row, item.Customer.Name); err != nil {
				return row, err
			}
		}

		// "Kategori"
		col++
		if item.Category != nil {
			if err := writeColumn(f, sheet, col, row, item.Category.Name); err != nil {
				return row, err
			}
		}

		// "Personel"
		col++
		if item.User != nil {
			if err := writeColumn(f, sheet, col, row, item.User.GetFullName()); err != nil {
				return row, err
			}
		}

		// "Konu"
		col++
		if err := writeColumn(f, sheet, col, row, item.Subject); err != nil {
			return row, err
		}

		// "Başlangıç"
		col++
		if err := writeColumn(f, sheet, col, row, item.StartTime.Format(layout)); err != nil {
			return row, err
		}

		// "Bitiş"
		col++
		if err := writeColumn(f, sheet, col, row, item.EndTime.Format(layout)); err != nil {
			return row, err
		}

		// "Süre"
		col++
		if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%.1f", item.Duration)); err != nil {
			return row, err
		}

		// "Durum"
		col++
		if err := writeColumn(f, sheet, col, row, statusLabel(item.Status)); err != nil {
			return row, err
		}

		// "Onay Tarihi"
		col++
		if item.ApprovalDate != nil {
			if err := writeColumn(f, sheet, col, row, item.ApprovalDate.Format(layout)); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

func statusLabel(status models.TicketStatus) string {
	switch status {
	case models.TicketStatusApproved:
		return "Onaylandı"
	case models.TicketStatusRejected:
		return "Reddedildi"
	default:
		return "Onay bekliyor"
	}
}
