package tickethandler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"servis-takip-backend/models"
	ticketapimodels "servis-takip-backend/models/api/ticket"
	dbmodels "servis-takip-backend/models/db"
)

type fakeTicketStore struct {
	tickets map[string]*dbmodels.ServiceTicket
	images  map[string][]dbmodels.TicketImage
	nextID  int
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{
		tickets: map[string]*dbmodels.ServiceTicket{},
		images:  map[string][]dbmodels.TicketImage{},
	}
}

func (f *fakeTicketStore) Create(rec dbmodels.ServiceTicket) (string, error) {
	f.nextID++
	rec.ID = "t" + string(rune('0'+f.nextID))
	f.tickets[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeTicketStore) GetByID(id string) (*dbmodels.ServiceTicket, error) {
	return f.tickets[id], nil
}

func (f *fakeTicketStore) GetByApprovalToken(token string) (*dbmodels.ServiceTicket, error) {
	return nil, nil
}

func (f *fakeTicketStore) GetByPdfToken(token string) (*dbmodels.ServiceTicket, error) {
	return nil, nil
}

func (f *fakeTicketStore) FindProcessedByToken(token string) (*dbmodels.ServiceTicket, error) {
	return nil, nil
}

func (f *fakeTicketStore) List(filter ticketapimodels.TicketFilter) ([]dbmodels.ServiceTicket, int64, error) {
	list := []dbmodels.ServiceTicket{}
	for _, rec := range f.tickets {
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		list = append(list, *rec)
	}
	return list, int64(len(list)), nil
}

func (f *fakeTicketStore) Update(id string, updMap map[string]interface{}) error {
	rec := f.tickets[id]
	if value, ok := updMap["subject"]; ok {
		rec.Subject = value.(string)
	}
	if value, ok := updMap["duration"]; ok {
		rec.Duration = value.(float64)
	}
	if value, ok := updMap["start_time"]; ok {
		rec.StartTime = value.(time.Time)
	}
	if value, ok := updMap["end_time"]; ok {
		rec.EndTime = value.(time.Time)
	}
	return nil
}

func (f *fakeTicketStore) TransitionByToken(token string, updMap map[string]interface{}) (int64, error) {
	return 0, nil
}

func (f *fakeTicketStore) TransitionByID(id string, updMap map[string]interface{}) (int64, error) {
	return 0, nil
}

func (f *fakeTicketStore) Delete(id string) error {
	delete(f.tickets, id)
	return nil
}

func (f *fakeTicketStore) AddImage(rec dbmodels.TicketImage) (string, error) {
	rec.ID = "img1"
	f.images[rec.TicketID] = append(f.images[rec.TicketID], rec)
	return rec.ID, nil
}

func (f *fakeTicketStore) ListImages(ticketID string) ([]dbmodels.TicketImage, error) {
	return f.images[ticketID], nil
}

func (f *fakeTicketStore) GetImage(ticketID, imageID string) (*dbmodels.TicketImage, error) {
	for _, rec := range f.images[ticketID] {
		if rec.ID == imageID {
			return &rec, nil
		}
	}
	return nil, nil
}

type fakeCustomerStore struct {
	customers map[string]*dbmodels.Customer
}

func (f fakeCustomerStore) Create(rec dbmodels.Customer) (string, error) { return rec.ID, nil }
func (f fakeCustomerStore) GetByID(id string) (*dbmodels.Customer, error) {
	return f.customers[id], nil
}
func (f fakeCustomerStore) List() ([]dbmodels.Customer, error)                 { return nil, nil }
func (f fakeCustomerStore) Update(id string, u map[string]interface{}) error   { return nil }
func (f fakeCustomerStore) Delete(id string) error                             { return nil }

type fakeCategoryStore struct {
	categories map[string]*dbmodels.Category
}

func (f fakeCategoryStore) Create(rec dbmodels.Category) (string, error) { return rec.ID, nil }
func (f fakeCategoryStore) GetByID(id string) (*dbmodels.Category, error) {
	return f.categories[id], nil
}
func (f fakeCategoryStore) List(onlyActive bool) ([]dbmodels.Category, error) { return nil, nil }
func (f fakeCategoryStore) Update(id string, u map[string]interface{}) error  { return nil }
func (f fakeCategoryStore) Delete(id string) error                            { return nil }

type fakeStorage struct {
	files map[string][]byte
}

func (f *fakeStorage) UploadTicketImage(ctx context.Context, ticketID string, file []byte, fileName, contentType string) (string, error) {
	key := "tickets/" + ticketID + "/" + fileName
	f.files[key] = file
	return key, nil
}

func (f *fakeStorage) GetFile(ctx context.Context, objectKey string) ([]byte, error) {
	return f.files[objectKey], nil
}

func newTestHandler() (Provider, *fakeTicketStore) {
	store := newFakeTicketStore()
	customer := &dbmodels.Customer{Name: "Acme A.Ş."}
	customer.ID = "c1"
	category := &dbmodels.Category{Name: "Bakım", IsActive: true}
	category.ID = "k1"
	handler := NewInstance(store,
		fakeCustomerStore{customers: map[string]*dbmodels.Customer{"c1": customer}},
		fakeCategoryStore{categories: map[string]*dbmodels.Category{"k1": category}},
		&fakeStorage{files: map[string][]byte{}},
		nil,
	)
	return handler, store
}

func validData() ticketapimodels.TicketData {
	return ticketapimodels.TicketData{
		CustomerID:  "c1",
		CategoryID:  "k1",
		StartTime:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
		Subject:     "Klima bakımı",
		Description: "Periyodik bakım",
	}
}

func TestTicketCreate(t *testing.T) {
	t.Run("süre hesaplanarak bekleyen durumda oluşturulur", func(t *testing.T) {
		handler, store := newTestHandler()

		id, err := handler.Create(validData(), "u1")
		require.NoError(t, err)
		require.NotEmpty(t, id)

		rec := store.tickets[id]
		require.Equal(t, models.TicketStatusPending, rec.Status)
		require.Equal(t, "u1", rec.UserID)
		require.InDelta(t, 3.5, rec.Duration, 0.001)
		require.Nil(t, rec.ApprovalToken)
		require.False(t, rec.EmailSent)
	})

	t.Run("bilinmeyen müşteri reddedilir", func(t *testing.T) {
		handler, _ := newTestHandler()
		data := validData()
		data.CustomerID = "yok"
		_, err := handler.Create(data, "u1")
		require.Error(t, err)
	})

	t.Run("bilinmeyen kategori reddedilir", func(t *testing.T) {
		handler, _ := newTestHandler()
		data := validData()
		data.CategoryID = "yok"
		_, err := handler.Create(data, "u1")
		require.Error(t, err)
	})
}

func TestTicketUpdate(t *testing.T) {
	t.Run("zaman değişince süre yeniden hesaplanır", func(t *testing.T) {
		handler, store := newTestHandler()
		id, err := handler.Create(validData(), "u1")
		require.NoError(t, err)

		data := validData()
		data.EndTime = data.StartTime.Add(2 * time.Hour)
		require.NoError(t, handler.Update(id, data))
		require.InDelta(t, 2.0, store.tickets[id].Duration, 0.001)
	})

	t.Run("sonuçlanmış form güncellenemez", func(t *testing.T) {
		handler, store := newTestHandler()
		id, err := handler.Create(validData(), "u1")
		require.NoError(t, err)
		store.tickets[id].Status = models.TicketStatusApproved

		err = handler.Update(id, validData())
		require.Error(t, err)
	})

	t.Run("bilinmeyen form", func(t *testing.T) {
		handler, _ := newTestHandler()
		require.Error(t, handler.Update("yok", validData()))
	})
}

func TestTicketImages(t *testing.T) {
	t.Run("yükleme ve geri okuma", func(t *testing.T) {
		handler, _ := newTestHandler()
		id, err := handler.Create(validData(), "u1")
		require.NoError(t, err)

		imageID, err := handler.UploadImage(context.TODO(), id, []byte("resim"), "foto.png", "image/png", "bakım sonrası")
		require.NoError(t, err)

		list, err := handler.ListImages(id)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "foto.png", list[0].FileName)
		require.Equal(t, "bakım sonrası", list[0].Caption)

		body, fileName, err := handler.GetImage(context.TODO(), id, imageID)
		require.NoError(t, err)
		require.Equal(t, []byte("resim"), body)
		require.Equal(t, "foto.png", fileName)
	})

	t.Run("bilinmeyen forma yükleme yapılmaz", func(t *testing.T) {
		handler, _ := newTestHandler()
		_, err := handler.UploadImage(context.TODO(), "yok", []byte("resim"), "foto.png", "image/png", "")
		require.Error(t, err)
	})
}
