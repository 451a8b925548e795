package pdfexport

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"servis-takip-backend/models"
	settingsapimodels "servis-takip-backend/models/api/settings"
	dbmodels "servis-takip-backend/models/db"
)

// Türkçe karakterler için kod sayfası tablosu ikiliye gömülü, çalışma
// zamanında dosya aranmaz.
//
//go:embed cp1254.map
var cp1254Map []byte

type ImageData struct {
	FileName string
	Body     []byte
	Caption  string
}

type TicketDocumentData struct {
	Company settingsapimodels.CompanyInfo
	Ticket  dbmodels.ServiceTicket
	// at most one image is embedded
	Image *ImageData
}

const dateTimeLayout = "02.01.2006 15:04"

// GenerateTicketDocument renders the service form as an A4 PDF.
// Missing optional fields render as "-" and an unreadable image becomes a
// textual placeholder; neither fails the document.
func GenerateTicketDocument(data TicketDocumentData) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateTicketDocument panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	tr, err := fpdf.UnicodeTranslator(bytes.NewReader(cp1254Map))
	if err != nil {
		return nil, errors.Wrap(err, "cp1254 çeviri tablosu yüklenemedi")
	}
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	// şirket başlığı
	companyName := data.Company.Name
	if companyName == "" {
		companyName = "Servis Takip"
	}
	pdf.CellFormat(0, 10, tr(companyName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if data.Company.Address != "" || data.Company.Phone != "" {
		pdf.CellFormat(0, 5, tr(strings.TrimSpace(data.Company.Address+"  "+data.Company.Phone)), "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr("Hizmet Servis Formu"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	t := data.Ticket
	writeRow(pdf, tr, "Tarih", t.CreatedAt.Format(dateTimeLayout))
	writeRow(pdf, tr, "Durum", statusLabel(t.Status))
	writeRow(pdf, tr, "Kategori", nameOrDash(t.Category != nil, func() string { return t.Category.Name }))
	writeRow(pdf, tr, "Müşteri", nameOrDash(t.Customer != nil, func() string { return t.Customer.Name }))
	writeRow(pdf, tr, "İletişim", contactLine(t.Customer))
	writeRow(pdf, tr, "Personel", nameOrDash(t.User != nil, func() string { return t.User.GetFullName() }))
	writeRow(pdf, tr, "Başlangıç", t.StartTime.Format(dateTimeLayout))
	writeRow(pdf, tr, "Bitiş", t.EndTime.Format(dateTimeLayout))
	writeRow(pdf, tr, "Süre", fmt.Sprintf("%.1f saat", t.Duration))
	writeRow(pdf, tr, "Konu", orDash(t.Subject))
	writeLocation(pdf, tr, t.Location)

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr("Açıklama"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, tr(orDash(t.Description)), "", "L", false)
	pdf.Ln(2)

	if data.Image != nil {
		putTicketImage(pdf, tr, data.Image)
	}

	if t.Status.IsTerminal() {
		writeApprovalBlock(pdf, tr, t)
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(45, 6, tr(label), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, tr(value), "", "L", false)
}

func writeLocation(pdf *fpdf.Fpdf, tr func(string) string, location string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(45, 6, tr("Konum"), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if isMapLink(location) {
		pdf.SetTextColor(0, 0, 200)
		pdf.WriteLinkString(6, tr("Haritada göster"), location)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
		return
	}
	pdf.MultiCell(0, 6, tr(orDash(location)), "", "L", false)
}

func putTicketImage(pdf *fpdf.Fpdf, tr func(string) string, img *ImageData) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(img.Body))
	if err != nil || cfg.Width == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("[görsel yüklenemedi: %s]", img.FileName)), "", 1, "L", false, 0, "")
		return
	}
	options := fpdf.ImageOptions{
		ReadDpi:   false,
		ImageType: format,
	}
	pdf.RegisterImageOptionsReader(img.FileName, options, bytes.NewReader(img.Body))
	// taşma durumunda görsel sonraki sayfaya alınır
	width := 120.0
	height := width * float64(cfg.Height) / float64(cfg.Width)
	_, pageH := pdf.GetPageSize()
	_, _, _, mbot := pdf.GetMargins()
	if pdf.GetY()+height > pageH-mbot {
		pdf.AddPage()
	}
	pdf.ImageOptions(img.FileName, 45, pdf.GetY(), width, 0, true, options, 0, "")
	if img.Caption != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 5, tr(img.Caption), "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)
}

func writeApprovalBlock(pdf *fpdf.Fpdf, tr func(string) string, t dbmodels.ServiceTicket) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, tr(statusLabel(t.Status)), "T", 1, "L", false, 0, "")
	approvedAt := "-"
	if t.ApprovalDate != nil {
		approvedAt = t.ApprovalDate.Format(dateTimeLayout)
	}
	writeRow(pdf, tr, "İşlem tarihi", approvedAt)
	approver := "müşteri (e-posta onayı)"
	if !t.ExternalApproval {
		if t.Approver != nil {
			approver = t.Approver.GetFullName()
		} else {
			approver = "-"
		}
	}
	writeRow(pdf, tr, "Onaylayan", approver)
	writeRow(pdf, tr, "Notlar", orDash(t.ApprovalNotes))
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

func contactLine(c *dbmodels.Customer) string {
	if c == nil {
		return "-"
	}
	line := strings.TrimSpace(c.ContactName)
	if c.ContactEmail != "" {
		if line == "" {
			line = c.ContactEmail
		} else {
			line += " <" + c.ContactEmail + ">"
		}
	}
	return orDash(line)
}

func isMapLink(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func nameOrDash(ok bool, get func() string) string {
	if !ok {
		return "-"
	}
	return orDash(get())
}
