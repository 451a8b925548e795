package approvalhandler

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	pdfexport "servis-takip-backend/lib/export/pdf"
	"servis-takip-backend/models"
	settingsapimodels "servis-takip-backend/models/api/settings"
	ticketapimodels "servis-takip-backend/models/api/ticket"
	dbmodels "servis-takip-backend/models/db"
)

type fakeTicketStore struct {
	tickets map[string]*dbmodels.ServiceTicket
}

func newFakeTicketStore(recs ...*dbmodels.ServiceTicket) *fakeTicketStore {
	store := &fakeTicketStore{tickets: map[string]*dbmodels.ServiceTicket{}}
	for _, rec := range recs {
		store.tickets[rec.ID] = rec
	}
	return store
}

func (f *fakeTicketStore) Create(rec dbmodels.ServiceTicket) (string, error) {
	f.tickets[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeTicketStore) GetByID(id string) (*dbmodels.ServiceTicket, error) {
	return f.tickets[id], nil
}

func (f *fakeTicketStore) GetByApprovalToken(token string) (*dbmodels.ServiceTicket, error) {
	for _, rec := range f.tickets {
		if rec.ApprovalToken != nil && *rec.ApprovalToken == token {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeTicketStore) GetByPdfToken(token string) (*dbmodels.ServiceTicket, error) {
	for _, rec := range f.tickets {
		if rec.PdfToken != nil && *rec.PdfToken == token {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeTicketStore) FindProcessedByToken(token string) (*dbmodels.ServiceTicket, error) {
	for _, rec := range f.tickets {
		if rec.SpentToken != nil && *rec.SpentToken == token && rec.Status != models.TicketStatusPending {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeTicketStore) List(filter ticketapimodels.TicketFilter) ([]dbmodels.ServiceTicket, int64, error) {
	return nil, 0, nil
}

func (f *fakeTicketStore) Update(id string, updMap map[string]interface{}) error {
	rec, ok := f.tickets[id]
	if !ok {
		return errors.New("kayıt yok")
	}
	applyUpdMap(rec, updMap)
	return nil
}

func (f *fakeTicketStore) TransitionByToken(token string, updMap map[string]interface{}) (int64, error) {
	for _, rec := range f.tickets {
		if rec.ApprovalToken != nil && *rec.ApprovalToken == token && rec.Status == models.TicketStatusPending {
			applyUpdMap(rec, updMap)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeTicketStore) TransitionByID(id string, updMap map[string]interface{}) (int64, error) {
	rec, ok := f.tickets[id]
	if !ok || rec.Status != models.TicketStatusPending {
		return 0, nil
	}
	applyUpdMap(rec, updMap)
	return 1, nil
}

func (f *fakeTicketStore) Delete(id string) error {
	delete(f.tickets, id)
	return nil
}

func (f *fakeTicketStore) AddImage(rec dbmodels.TicketImage) (string, error) {
	return rec.ID, nil
}

func (f *fakeTicketStore) ListImages(ticketID string) ([]dbmodels.TicketImage, error) {
	return nil, nil
}

func (f *fakeTicketStore) GetImage(ticketID, imageID string) (*dbmodels.TicketImage, error) {
	return nil, nil
}

func applyUpdMap(rec *dbmodels.ServiceTicket, updMap map[string]interface{}) {
	for key, value := range updMap {
		switch key {
		case "status":
			rec.Status = value.(models.TicketStatus)
		case "approval_date":
			date := value.(time.Time)
			rec.ApprovalDate = &date
		case "approval_notes":
			rec.ApprovalNotes = value.(string)
		case "external_approval":
			rec.ExternalApproval = value.(bool)
		case "email_sent":
			rec.EmailSent = value.(bool)
		case "approver_id":
			rec.ApproverID = value.(string)
		case "approval_token":
			if value == nil {
				rec.ApprovalToken = nil
			} else {
				token := value.(string)
				rec.ApprovalToken = &token
			}
		case "pdf_token":
			token := value.(string)
			rec.PdfToken = &token
		case "spent_token":
			token := value.(string)
			rec.SpentToken = &token
		}
	}
}

type sentMail struct {
	to      string
	subject string
	body    string
	attach  bool
}

type fakeSender struct {
	failPlain  bool
	failAttach bool
	sent       []sentMail
}

func (f *fakeSender) SendEMail(to, subject, htmlBody string) error {
	if f.failPlain {
		return errors.New("smtp kapalı")
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

func (f *fakeSender) SendEMailWithAttachment(to, subject, htmlBody, attachmentPath, attachmentName string) error {
	if f.failAttach {
		return errors.New("ek gönderilemedi")
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: htmlBody, attach: true})
	return nil
}

type fakeSettings struct {
	values map[models.AppSettingCode]string
}

func (f fakeSettings) GetList() ([]settingsapimodels.AppSettingView, error) { return nil, nil }

func (f fakeSettings) UpdateSettingValue(code models.AppSettingCode, value string) error {
	return nil
}

func (f fakeSettings) GetString(code models.AppSettingCode) (string, error) {
	return f.values[code], nil
}

func (f fakeSettings) GetCompanyInfo() (settingsapimodels.CompanyInfo, error) {
	return settingsapimodels.CompanyInfo{Name: "Test Servis"}, nil
}

type fakeHub struct {
	events []string
}

func (f *fakeHub) AddClient(userID string, conn *websocket.Conn) {}
func (f *fakeHub) DeleteClient(userID string)                    {}
func (f *fakeHub) SendClose(userID string)                       {}
func (f *fakeHub) IsConnected(userID string) bool                { return false }
func (f *fakeHub) Broadcast(code models.WsEventCode, msg string) {
	f.events = append(f.events, string(code)+": "+msg)
}

func okRenderer(data pdfexport.TicketDocumentData) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

func failRenderer(data pdfexport.TicketDocumentData) ([]byte, error) {
	return nil, errors.New("pdf hatası")
}

func pendingTicket(id string) *dbmodels.ServiceTicket {
	rec := &dbmodels.ServiceTicket{
		CustomerID: "c1",
		Customer: &dbmodels.Customer{
			Name:         "Acme A.Ş.",
			ContactName:  "Ali Veli",
			ContactEmail: "ali@acme.example",
		},
		Category:  &dbmodels.Category{Name: "Bakım"},
		StartTime: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		Subject:   "Klima bakımı",
		Status:    models.TicketStatusPending,
	}
	rec.ID = id
	return rec
}

type testEnv struct {
	store  *fakeTicketStore
	sender *fakeSender
	hub    *fakeHub
	impl   Provider
}

func newTestEnv(t *testing.T, renderer DocumentRenderer, recs ...*dbmodels.ServiceTicket) testEnv {
	t.Helper()
	store := newFakeTicketStore(recs...)
	sender := &fakeSender{}
	hub := &fakeHub{}
	handler := NewInstance(Config{AppBaseUrl: "https://app.example"},
		store,
		fakeSettings{values: map[models.AppSettingCode]string{}},
		sender,
		renderer,
		nil,
		hub,
	)
	return testEnv{store: store, sender: sender, hub: hub, impl: handler}
}

func TestRequestExternalApproval(t *testing.T) {
	t.Run("onay e-postası token ve bağlantılarla gönderilir", func(t *testing.T) {
		env := newTestEnv(t, okRenderer, pendingTicket("t1"))

		sentTo, warn, err := env.impl.RequestExternalApproval(context.TODO(), "t1")
		require.NoError(t, err)
		require.Nil(t, warn)
		require.Equal(t, "ali@acme.example", sentTo)

		rec := env.store.tickets["t1"]
		require.NotNil(t, rec.ApprovalToken)
		require.NotNil(t, rec.PdfToken)
		require.NotEqual(t, *rec.ApprovalToken, *rec.PdfToken)
		require.True(t, rec.EmailSent)

		require.Len(t, env.sender.sent, 1)
		mail := env.sender.sent[0]
		require.True(t, mail.attach)
		require.Contains(t, mail.body, "/ticket-approval/"+*rec.ApprovalToken+"/approve")
		require.Contains(t, mail.body, "/ticket-approval/"+*rec.ApprovalToken+"/reject")
		require.Contains(t, mail.body, "https://app.example")
		require.Contains(t, mail.body, "ekteki PDF")
	})

	t.Run("tekrar gönderim eski bağlantıyı geçersiz kılar", func(t *testing.T) {
		env := newTestEnv(t, okRenderer, pendingTicket("t1"))

		_, _, err := env.impl.RequestExternalApproval(context.TODO(), "t1")
		require.NoError(t, err)
		firstToken := *env.store.tickets["t1"].ApprovalToken

		_, _, err = env.impl.RequestExternalApproval(context.TODO(), "t1")
		require.NoError(t, err)
		require.NotEqual(t, firstToken, *env.store.tickets["t1"].ApprovalToken)

		result, err := env.impl.VerifyToken(firstToken)
		require.ErrorIs(t, err, ErrNotFound)
		require.False(t, result.Valid)
	})

	t.Run("bulunamayan form", func(t *testing.T) {
		env := newTestEnv(t, okRenderer)
		_, _, err := env.impl.RequestExternalApproval(context.TODO(), "yok")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("sonuçlanmış form onaya gönderilemez", func(t *testing.T) {
		rec := pendingTicket("t1")
		rec.Status = models.TicketStatusApproved
		env := newTestEnv(t, okRenderer, rec)
		_, _, err := env.impl.RequestExternalApproval(context.TODO(), "t1")
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("iletişim e-postası olmadan gönderim yapılmaz", func(t *testing.T) {
		rec := pendingTicket("t1")
		rec.Customer.ContactEmail = ""
		env := newTestEnv(t, okRenderer, rec)
		_, _, err := env.impl.RequestExternalApproval(context.TODO(), "t1")
		require.ErrorIs(t, err, ErrMissingContact)
	})

	t.Run("pdf hatasında e-posta eksiz gider ve uyarı döner", func(t *testing.T) {
		env := newTestEnv(t, failRenderer, pendingTicket("t1"))

		sentTo, warn, err := env.impl.RequestExternalApproval(context.TODO(), "t1")
		require.NoError(t, err)
		require.Equal(t, "ali@acme.example", sentTo)
		require.NotNil(t, warn)
		require.Equal(t, "render", warn.Phase)

		require.Len(t, env.sender.sent, 1)
		require.False(t, env.sender.sent[0].attach)
		// eksiz giden e-posta ek olduğunu iddia etmez
		require.NotContains(t, env.sender.sent[0].body, "ekteki PDF")
		require.Contains(t, env.sender.sent[0].body, "onay sayfasındaki")
	})

	t.Run("ekli gönderim hatasında eksiz tekrar denenir", func(t *testing.T) {
		env := newTestEnv(t, okRenderer, pendingTicket("t1"))
		env.sender.failAttach = true

		_, warn, err := env.impl.RequestExternalApproval(context.TODO(), "t1")
		require.NoError(t, err)
		require.NotNil(t, warn)
		require.Equal(t, "attachment", warn.Phase)
		require.Len(t, env.sender.sent, 1)
		require.False(t, env.sender.sent[0].attach)
		require.NotContains(t, env.sender.sent[0].body, "ekteki PDF")
	})

	t.Run("iptal edilen bağlam gönderimi başlatmaz", func(t *testing.T) {
		env := newTestEnv(t, okRenderer, pendingTicket("t1"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := env.impl.RequestExternalApproval(ctx, "t1")
		require.Error(t, err)
		require.Nil(t, env.store.tickets["t1"].ApprovalToken)
		require.Empty(t, env.sender.sent)
	})

	t.Run("hiçbir gönderim başarılı olmazsa hata döner", func(t *testing.T) {
		env := newTestEnv(t, okRenderer, pendingTicket("t1"))
		env.sender.failAttach = true
		env.sender.failPlain = true

		_, _, err := env.impl.RequestExternalApproval(context.TODO(), "t1")
		require.ErrorIs(t, err, ErrDeliveryFailure)
	})
}

func TestVerifyToken(t *testing.T) {
	t.Run("bekleyen form için özet döner", func(t *testing.T) {
		env := newTestEnv(t, okRenderer, pendingTicket("t1"))
		_, _, err := env.impl.RequestExternalApproval(context.TODO(), "t1")
		require.NoError(t, err)
		token := *env.store.tickets["t1"].ApprovalToken

		result, err := env.impl.VerifyToken(token)
		require.NoError(t, err)
		require.True(t, result.Valid)
		require.NotNil(t, result.Ticket)
		require.Equal(t, "Acme A.Ş.", result.Ticket.Customer)
		require.Equal(t, "Bakım", result.Ticket.Category)
		require.Equal(t, "Klima bakımı", result.Ticket.Subject)
	})

	t.Run("kullanılmış bağlantı mevcut sonucu gösterir", func(t *testing.T) {
		env := newTestEnv(t, okRenderer, pendingTicket("t1"))
		_, _, err := env.impl.RequestExternalApproval(context.TODO(), "t1")
		require.NoError(t, err)
		token := *env.store.tickets["t1"].ApprovalToken

		_, _, err = env.impl.ProcessExternalApproval(context.TODO(), token, models.ApprovalActionApprove, "")
		require.NoError(t, err)

		result, err := env.impl.VerifyToken(token)
		require.NoError(t, err)
		require.False(t, result.Valid)
		require.True(t, result.Processed)
		require.NotNil(t, result.Ticket)
		require.Equal(t, "t1", result.Ticket.ID)
		require.Equal(t, models.TicketStatusApproved, result.Ticket.Status)
		require.NotNil(t, result.Ticket.ApprovalDate)

		// sonuç özeti de ticket anahtarı altında serileşir
		raw, err := json.Marshal(result)
		require.NoError(t, err)
		decoded := map[string]json.RawMessage{}
		require.NoError(t, json.Unmarshal(raw, &decoded))
		require.Contains(t, decoded, "ticket")
	})

	t.Run("bilinmeyen bağlantı", func(t *testing.T) {
		env := newTestEnv(t, okRenderer)
		_, err := env.impl.VerifyToken("bilinmeyen")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestProcessExternalApproval(t *testing.T) {
	t.Run("onaylama geçişi ve yan etkileri", func(t *testing.T) {
		env := newTestEnv(t, okRenderer, pendingTicket("t1"))
		_, _, err := env.impl.RequestExternalApproval(context.TODO(), "t1")
		require.NoError(t, err)
		token := *env.store.tickets["t1"].ApprovalToken
		env.sender.sent = nil

		result, warn, err := env.impl.ProcessExternalApproval(context.TODO(), token, models.ApprovalActionApprove, "")
		require.NoError(t, err)
		require.Nil(t, warn)
		require.False(t, result.AlreadyProcessed)
		require.Equal(t, models.TicketStatusApproved, result.Status)
		require.Equal(t, "Acme A.Ş.", result.Customer)
		require.NotNil(t, result.ApprovalDate)

		rec := env.store.tickets["t1"]
		require.Equal(t, models.TicketStatusApproved, rec.Status)
		require.Nil(t, rec.ApprovalToken)
		require.NotNil(t, rec.SpentToken)
		require.Equal(t, token, *rec.SpentToken)
		require.True(t, rec.ExternalApproval)
		require.Empty(t, rec.ApprovalNotes)

		require.Len(t, env.sender.sent, 1)
		require.Contains(t, env.sender.sent[0].body, "onaylandı")
		require.Len(t, env.hub.events, 1)
		require.True(t, strings.HasPrefix(env.hub.events[0], string(models.WsTicketTransition)))
	})

	t.Run("gerekçesiz ret varsayılan gerekçeyi alır", func(t *testing.T) {
		env := newTestEnv(t, okRenderer, pendingTicket("t1"))
		_, _, err := env.impl.RequestExternalApproval(context.TODO(), "t1")
		require.NoError(t, err)
		token := *env.store.tickets["t1"].ApprovalToken

		result, _, err := env.impl.ProcessExternalApproval(context.TODO(), token, models.ApprovalActionReject, "")
		require.NoError(t, err)
		require.Equal(t, models.TicketStatusRejected, result.Status)
		require.Equal(t, fallbackRejectReason, env.store.tickets["t1"].ApprovalNotes)
	})

	t.Run("gerekçeli ret verilen gerekçeyi kaydeder", func(t *testing.T) {
		env := newTestEnv(t, okRenderer, pendingTicket("t1"))
		_, _, err := env.impl.RequestExternalApproval(context.TODO(), "t1")
		require.NoError(t, err)
		token := *env.store.tickets["t1"].ApprovalToken

		_, _, err = env.impl.ProcessExternalApproval(context.TODO(), token, models.ApprovalActionReject, "eksik iş")
		require.NoError(t, err)
		require.Equal(t, "eksik iş", env.store.tickets["t1"].ApprovalNotes)
	})

	t.Run("yinelenen istek mevcut sonucu döner, yan etki tekrarlanmaz", func(t *testing.T) {
		env := newTestEnv(t, okRenderer, pendingTicket("t1"))
		_, _, err := env.impl.RequestExternalApproval(context.TODO(), "t1")
		require.NoError(t, err)
		token := *env.store.tickets["t1"].ApprovalToken
		env.sender.sent = nil

		first, _, err := env.impl.ProcessExternalApproval(context.TODO(), token, models.ApprovalActionApprove, "")
		require.NoError(t, err)
		require.False(t, first.AlreadyProcessed)

		second, _, err := env.impl.ProcessExternalApproval(context.TODO(), token, models.ApprovalActionReject, "")
		require.NoError(t, err)
		require.True(t, second.AlreadyProcessed)
		require.Equal(t, models.TicketStatusApproved, second.Status)

		// bilgilendirme ve bildirim yalnızca ilk geçişte
		require.Len(t, env.sender.sent, 1)
		require.Len(t, env.hub.events, 1)
	})

	t.Run("geçersiz işlem", func(t *testing.T) {
		env := newTestEnv(t, okRenderer, pendingTicket("t1"))
		_, _, err := env.impl.ProcessExternalApproval(context.TODO(), "x", models.ApprovalAction("delete"), "")
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("bilgilendirme hatası geçişi geri almaz", func(t *testing.T) {
		env := newTestEnv(t, okRenderer, pendingTicket("t1"))
		_, _, err := env.impl.RequestExternalApproval(context.TODO(), "t1")
		require.NoError(t, err)
		token := *env.store.tickets["t1"].ApprovalToken
		env.sender.failPlain = true

		result, warn, err := env.impl.ProcessExternalApproval(context.TODO(), token, models.ApprovalActionApprove, "")
		require.NoError(t, err)
		require.NotNil(t, warn)
		require.Equal(t, "confirmation", warn.Phase)
		require.Equal(t, models.TicketStatusApproved, result.Status)
		require.Equal(t, models.TicketStatusApproved, env.store.tickets["t1"].Status)
	})
}

func TestStaffTransition(t *testing.T) {
	t.Run("yönetici onayı", func(t *testing.T) {
		env := newTestEnv(t, okRenderer, pendingTicket("t1"))

		err := env.impl.StaffTransition("t1", models.ApprovalActionApprove, "yerinde kontrol edildi", "admin-1")
		require.NoError(t, err)

		rec := env.store.tickets["t1"]
		require.Equal(t, models.TicketStatusApproved, rec.Status)
		require.False(t, rec.ExternalApproval)
		require.Equal(t, "admin-1", rec.ApproverID)
		require.Equal(t, "yerinde kontrol edildi", rec.ApprovalNotes)
		require.Len(t, env.hub.events, 1)
	})

	t.Run("bekleyen onay bağlantısı yönetici geçişinden sonra da yaşar", func(t *testing.T) {
		env := newTestEnv(t, okRenderer, pendingTicket("t1"))
		_, _, err := env.impl.RequestExternalApproval(context.TODO(), "t1")
		require.NoError(t, err)
		token := *env.store.tickets["t1"].ApprovalToken

		err = env.impl.StaffTransition("t1", models.ApprovalActionApprove, "", "admin-1")
		require.NoError(t, err)
		require.NotNil(t, env.store.tickets["t1"].ApprovalToken)
		require.Equal(t, token, *env.store.tickets["t1"].ApprovalToken)
	})

	t.Run("sonuçlanmış form tekrar geçirilemez", func(t *testing.T) {
		rec := pendingTicket("t1")
		rec.Status = models.TicketStatusRejected
		env := newTestEnv(t, okRenderer, rec)
		err := env.impl.StaffTransition("t1", models.ApprovalActionApprove, "", "admin-1")
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("gerekçesiz ret varsayılan gerekçeyi alır", func(t *testing.T) {
		env := newTestEnv(t, okRenderer, pendingTicket("t1"))
		err := env.impl.StaffTransition("t1", models.ApprovalActionReject, "", "admin-1")
		require.NoError(t, err)
		require.Equal(t, fallbackRejectReason, env.store.tickets["t1"].ApprovalNotes)
	})
}

func TestGetPdfByToken(t *testing.T) {
	t.Run("geçerli belirteç pdf döner", func(t *testing.T) {
		env := newTestEnv(t, okRenderer, pendingTicket("t1"))
		_, _, err := env.impl.RequestExternalApproval(context.TODO(), "t1")
		require.NoError(t, err)
		pdfToken := *env.store.tickets["t1"].PdfToken

		body, fileName, err := env.impl.GetPdfByToken(context.TODO(), pdfToken)
		require.NoError(t, err)
		require.NotEmpty(t, body)
		require.Equal(t, "servis-formu-t1.pdf", fileName)
	})

	t.Run("bilinmeyen belirteç", func(t *testing.T) {
		env := newTestEnv(t, okRenderer)
		_, _, err := env.impl.GetPdfByToken(context.TODO(), "yok")
		require.ErrorIs(t, err, ErrNotFound)
	})
}
