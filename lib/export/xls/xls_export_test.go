package xlsexport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"servis-takip-backend/models"
	dbmodels "servis-takip-backend/models/db"
)

func TestExportTicketList(t *testing.T) {
	handler := impl{}

	t.Run("boş liste yalnızca başlık satırı üretir", func(t *testing.T) {
		buf, err := handler.ExportTicketList(nil)
		require.NoError(t, err)

		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Servis Formları")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, ticketHeaders, rows[0])
	})

	t.Run("kayıtlar satırlara yazılır", func(t *testing.T) {
		approvedAt := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)
		rec := dbmodels.ServiceTicket{
			Customer:     &dbmodels.Customer{Name: "Acme A.Ş."},
			Category:     &dbmodels.Category{Name: "Bakım"},
			User:         &dbmodels.User{FirstName: "Ayşe", LastName: "Yılmaz"},
			StartTime:    time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			EndTime:      time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
			Duration:     3.5,
			Subject:      "Klima bakımı",
			Status:       models.TicketStatusApproved,
			ApprovalDate: &approvedAt,
		}
		rec.CreatedAt = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

		buf, err := handler.ExportTicketList([]dbmodels.ServiceTicket{rec})
		require.NoError(t, err)

		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Servis Formları")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, "Acme A.Ş.", rows[1][1])
		require.Equal(t, "Onaylandı", rows[1][8])
		require.Equal(t, "11.03.2025 10:00", rows[1][9])
	})
}
