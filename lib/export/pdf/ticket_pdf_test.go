package pdfexport

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"servis-takip-backend/models"
	settingsapimodels "servis-takip-backend/models/api/settings"
	dbmodels "servis-takip-backend/models/db"
)

func sampleTicket() dbmodels.ServiceTicket {
	rec := dbmodels.ServiceTicket{
		Customer: &dbmodels.Customer{
			Name:         "Acme A.Ş.",
			ContactName:  "Ali Veli",
			ContactEmail: "ali@acme.example",
		},
		Category:    &dbmodels.Category{Name: "Bakım"},
		User:        &dbmodels.User{FirstName: "Ayşe", LastName: "Yılmaz"},
		StartTime:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
		Duration:    3.5,
		Subject:     "Klima bakımı",
		Description: "Periyodik bakım yapıldı, filtreler değiştirildi",
		Location:    "Üretim sahası, 2. kat",
		Status:      models.TicketStatusPending,
	}
	rec.ID = "t1"
	rec.CreatedAt = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	return rec
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestGenerateTicketDocument(t *testing.T) {
	t.Run("bekleyen form", func(t *testing.T) {
		pdfFile, err := GenerateTicketDocument(TicketDocumentData{
			Company: settingsapimodels.CompanyInfo{Name: "Test Servis", Phone: "0212 000 00 00"},
			Ticket:  sampleTicket(),
		})
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(pdfFile, []byte("%PDF")))
	})

	t.Run("türkçe karakterler gömülü tabloyla çevrilir", func(t *testing.T) {
		rec := sampleTicket()
		rec.Subject = "ĞİŞğış ÖÜ öü çÇ"
		rec.Description = "Isıtıcı değişimi ve şebeke kontrolü"
		pdfFile, err := GenerateTicketDocument(TicketDocumentData{Ticket: rec})
		require.NoError(t, err)
		require.NotEmpty(t, pdfFile)
	})

	t.Run("eksik alanlar belgeyi bozmaz", func(t *testing.T) {
		rec := dbmodels.ServiceTicket{Status: models.TicketStatusPending}
		rec.ID = "t2"
		pdfFile, err := GenerateTicketDocument(TicketDocumentData{Ticket: rec})
		require.NoError(t, err)
		require.NotEmpty(t, pdfFile)
	})

	t.Run("onaylanmış form onay bloğu içerir", func(t *testing.T) {
		rec := sampleTicket()
		rec.Status = models.TicketStatusApproved
		rec.ExternalApproval = true
		now := time.Now()
		rec.ApprovalDate = &now
		pdfFile, err := GenerateTicketDocument(TicketDocumentData{Ticket: rec})
		require.NoError(t, err)
		require.NotEmpty(t, pdfFile)
	})

	t.Run("harita bağlantılı konum", func(t *testing.T) {
		rec := sampleTicket()
		rec.Location = "https://maps.example/?q=41.0,29.0"
		pdfFile, err := GenerateTicketDocument(TicketDocumentData{Ticket: rec})
		require.NoError(t, err)
		require.NotEmpty(t, pdfFile)
	})

	t.Run("görsel gömülür", func(t *testing.T) {
		pdfFile, err := GenerateTicketDocument(TicketDocumentData{
			Ticket: sampleTicket(),
			Image: &ImageData{
				FileName: "foto.png",
				Body:     pngBytes(t),
				Caption:  "Bakım sonrası",
			},
		})
		require.NoError(t, err)
		require.NotEmpty(t, pdfFile)
	})

	t.Run("bozuk görsel yer tutucuya düşer", func(t *testing.T) {
		pdfFile, err := GenerateTicketDocument(TicketDocumentData{
			Ticket: sampleTicket(),
			Image: &ImageData{
				FileName: "bozuk.png",
				Body:     []byte("bu bir görsel değil"),
			},
		})
		require.NoError(t, err)
		require.NotEmpty(t, pdfFile)
	})
}

func TestContactLine(t *testing.T) {
	require.Equal(t, "-", contactLine(nil))
	require.Equal(t, "-", contactLine(&dbmodels.Customer{}))
	require.Equal(t, "Ali Veli", contactLine(&dbmodels.Customer{ContactName: "Ali Veli"}))
	require.Equal(t, "ali@acme.example", contactLine(&dbmodels.Customer{ContactEmail: "ali@acme.example"}))
	require.Equal(t, "Ali Veli <ali@acme.example>", contactLine(&dbmodels.Customer{
		ContactName:  "Ali Veli",
		ContactEmail: "ali@acme.example",
	}))
}
