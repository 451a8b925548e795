package approvalhandler

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"servis-takip-backend/db"
	pdfexport "servis-takip-backend/lib/export/pdf"
	filestorage "servis-takip-backend/lib/file-storage"
	settingshandler "servis-takip-backend/lib/settings"
	"servis-takip-backend/lib/smtp"
	ticketstore "servis-takip-backend/lib/ticket/store"
	"servis-takip-backend/lib/utils/helpers"
	connectionhub "servis-takip-backend/lib/ws/hub/connection-hub"
	"servis-takip-backend/models"
	approvalapimodels "servis-takip-backend/models/api/approval"
	dbmodels "servis-takip-backend/models/db"
)

const fallbackRejectReason = "Müşteri tarafından reddedildi"

type Provider interface {
	RequestExternalApproval(ctx context.Context, ticketID string) (sentTo string, warn *Warning, err error)
	VerifyToken(token string) (approvalapimodels.VerifyResult, error)
	ProcessExternalApproval(ctx context.Context, token string, action models.ApprovalAction, reason string) (approvalapimodels.ProcessResult, *Warning, error)
	StaffTransition(ticketID string, action models.ApprovalAction, notes, adminID string) error
	GetPdfByToken(ctx context.Context, pdfToken string) (pdfFile []byte, fileName string, err error)
}

var Instance Provider

// Config carries the ambient values the workflow needs; they are injected
// here instead of being read mid-operation.
type Config struct {
	AppBaseUrl string
}

// DocumentRenderer renders a ticket snapshot into a PDF byte stream
type DocumentRenderer func(data pdfexport.TicketDocumentData) ([]byte, error)

type FileReader func(ctx context.Context, objectKey string) ([]byte, error)

func NewHandler(cfg Config) {
	Instance = NewInstance(cfg,
		ticketstore.NewInstance(db.DB),
		settingshandler.Instance,
		smtp.Instance,
		pdfexport.GenerateTicketDocument,
		filestorage.Instance.GetFile,
		connectionhub.Instance,
	)
}

func NewInstance(cfg Config,
	ticketStore ticketstore.Provider,
	settings settingshandler.Provider,
	sender smtp.Provider,
	renderer DocumentRenderer,
	fileReader FileReader,
	hub connectionhub.Provider,
) Provider {
	return &impl{
		cfg:         cfg,
		ticketStore: ticketStore,
		settings:    settings,
		sender:      sender,
		renderer:    renderer,
		fileReader:  fileReader,
		hub:         hub,
	}
}

type impl struct {
	cfg         Config
	ticketStore ticketstore.Provider
	settings    settingshandler.Provider
	sender      smtp.Provider
	renderer    DocumentRenderer
	fileReader  FileReader
	hub         connectionhub.Provider
}

func (i impl) getLogger(ticketID string) *log.Entry {
	return log.WithField("ticket_id", ticketID)
}

func (i impl) RequestExternalApproval(ctx context.Context, ticketID string) (string, *Warning, error) {
	if helpers.IsContextDone(ctx) {
		return "", nil, ctx.Err()
	}
	logger := i.getLogger(ticketID)
	ticket, err := i.ticketStore.GetByID(ticketID)
	if err != nil {
		logger.WithError(err).Error("servis formu okunamadı")
		return "", nil, err
	}
	if ticket == nil {
		return "", nil, ErrNotFound
	}
	if ticket.Status != models.TicketStatusPending {
		return "", nil, ErrInvalidState
	}
	if ticket.Customer == nil || ticket.Customer.ContactEmail == "" {
		return "", nil, ErrMissingContact
	}

	approvalToken := helpers.GenerateToken()
	pdfToken := helpers.GenerateToken()
	updMap := map[string]interface{}{
		"approval_token": approvalToken,
		"pdf_token":      pdfToken,
		"email_sent":     true,
	}
	if err = i.ticketStore.Update(ticketID, updMap); err != nil {
		logger.WithError(err).Error("onay bilgileri kaydedilemedi")
		return "", nil, err
	}

	sentTo := ticket.Customer.ContactEmail
	subject := fmt.Sprintf("Hizmet Servis Formu Onayı - %s", ticket.Customer.Name)

	var warn *Warning
	pdfFile, renderErr := i.renderTicket(ctx, *ticket)
	if renderErr != nil {
		logger.WithError(renderErr).Warn("pdf oluşturulamadı, e-posta eksiz gönderilecek")
		warn = &Warning{Phase: "render", Err: renderErr}
	}

	delivered := false
	if renderErr == nil {
		body := i.buildApprovalMail(*ticket, approvalToken, true)
		attachErr := i.sendWithAttachment(sentTo, subject, body, pdfFile)
		if attachErr == nil {
			delivered = true
		} else {
			logger.WithError(attachErr).Warn("ekli gönderim başarısız, eksiz tekrar denenecek")
			warn = &Warning{Phase: "attachment", Err: attachErr}
		}
	}
	if !delivered {
		// gövde eke atıf yapmadan yeniden kurulur
		body := i.buildApprovalMail(*ticket, approvalToken, false)
		if err = i.sender.SendEMail(sentTo, subject, body); err != nil {
			logger.WithError(err).Error("onay e-postası gönderilemedi")
			return "", warn, ErrDeliveryFailure
		}
	}
	return sentTo, warn, nil
}

// sendWithAttachment writes the document to a scoped temp file, sends it and
// removes the file in every path.
func (i impl) sendWithAttachment(to, subject, body string, pdfFile []byte) error {
	tmp, err := os.CreateTemp("", "servis-form-*.pdf")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if _, err = tmp.Write(pdfFile); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return i.sender.SendEMailWithAttachment(to, subject, body, tmp.Name(), "servis-formu.pdf")
}

func (i impl) renderTicket(ctx context.Context, ticket dbmodels.ServiceTicket) ([]byte, error) {
	company, err := i.settings.GetCompanyInfo()
	if err != nil {
		i.getLogger(ticket.ID).WithError(err).Warn("şirket bilgileri okunamadı, varsayılan başlık kullanılacak")
	}
	data := pdfexport.TicketDocumentData{
		Company: company,
		Ticket:  ticket,
	}
	if len(ticket.Images) > 0 && i.fileReader != nil {
		img := ticket.Images[0]
		body, readErr := i.fileReader(ctx, img.ObjectKey)
		if readErr != nil {
			i.getLogger(ticket.ID).WithError(readErr).Warn("form görseli okunamadı")
		}
		data.Image = &pdfexport.ImageData{
			FileName: img.FileName,
			Body:     body,
			Caption:  img.Caption,
		}
	}
	return i.renderer(data)
}

func (i impl) VerifyToken(token string) (approvalapimodels.VerifyResult, error) {
	ticket, err := i.ticketStore.GetByApprovalToken(token)
	if err != nil {
		log.WithError(err).Error("onay bağlantısı sorgulanamadı")
		return approvalapimodels.VerifyResult{}, err
	}
	if ticket != nil {
		if ticket.Status == models.TicketStatusPending {
			view := ticket.ToPublicView()
			return approvalapimodels.VerifyResult{
				Valid:  true,
				Ticket: &view,
			}, nil
		}
		// sayfa açıkken başka bir istek formu sonuçlandırmış
		return i.processedResult(*ticket), nil
	}
	processed, err := i.ticketStore.FindProcessedByToken(token)
	if err != nil {
		log.WithError(err).Error("onay bağlantısı sorgulanamadı")
		return approvalapimodels.VerifyResult{}, err
	}
	if processed != nil {
		return i.processedResult(*processed), nil
	}
	return approvalapimodels.VerifyResult{Valid: false}, ErrNotFound
}

func (i impl) processedResult(ticket dbmodels.ServiceTicket) approvalapimodels.VerifyResult {
	view := ticket.ToProcessedView()
	return approvalapimodels.VerifyResult{
		Valid:     false,
		Processed: true,
		Message:   "Bu servis formu daha önce işleme alındı",
		Ticket:    &view,
	}
}

func (i impl) ProcessExternalApproval(ctx context.Context, token string, action models.ApprovalAction, reason string) (approvalapimodels.ProcessResult, *Warning, error) {
	if !action.IsValid() {
		return approvalapimodels.ProcessResult{}, nil, ErrInvalidRequest
	}
	ticket, err := i.ticketStore.GetByApprovalToken(token)
	if err != nil {
		log.WithError(err).Error("onay bağlantısı sorgulanamadı")
		return approvalapimodels.ProcessResult{}, nil, err
	}
	if ticket == nil {
		processed, err := i.ticketStore.FindProcessedByToken(token)
		if err != nil {
			return approvalapimodels.ProcessResult{}, nil, err
		}
		if processed != nil {
			// yinelenen tıklama, mevcut sonuç döner
			return i.alreadyProcessed(*processed), nil, nil
		}
		return approvalapimodels.ProcessResult{}, nil, ErrNotFound
	}
	if ticket.Status.IsTerminal() {
		return i.alreadyProcessed(*ticket), nil, nil
	}

	logger := i.getLogger(ticket.ID)
	now := time.Now()
	notes := ""
	if action == models.ApprovalActionReject {
		notes = reason
		if notes == "" {
			notes = i.defaultRejectReason()
		}
	}
	updMap := map[string]interface{}{
		"status":            action.ToStatus(),
		"approval_date":     now,
		"approval_notes":    notes,
		"external_approval": true,
		"approval_token":    nil,
		"spent_token":       token,
	}
	affected, err := i.ticketStore.TransitionByToken(token, updMap)
	if err != nil {
		logger.WithError(err).Error("durum geçişi kaydedilemedi")
		return approvalapimodels.ProcessResult{}, nil, err
	}
	if affected == 0 {
		// eşzamanlı istek kazandı, mevcut durum döner
		processed, err := i.ticketStore.FindProcessedByToken(token)
		if err != nil {
			return approvalapimodels.ProcessResult{}, nil, err
		}
		if processed != nil {
			return i.alreadyProcessed(*processed), nil, nil
		}
		return approvalapimodels.ProcessResult{}, nil, ErrNotFound
	}

	// geçiş bu çağrı tarafından yapıldı, yan etkiler yalnızca burada çalışır
	var warn *Warning
	if ticket.Customer != nil && ticket.Customer.ContactEmail != "" {
		if mailErr := i.sendConfirmationMail(*ticket, action, notes); mailErr != nil {
			logger.WithError(mailErr).Warn("bilgilendirme e-postası gönderilemedi")
			warn = &Warning{Phase: "confirmation", Err: mailErr}
		}
	}
	i.notifyStaff(*ticket, action)

	result := approvalapimodels.ProcessResult{
		ID:           ticket.ID,
		Status:       action.ToStatus(),
		ApprovalDate: &now,
	}
	if ticket.Customer != nil {
		result.Customer = ticket.Customer.Name
	}
	return result, warn, nil
}

func (i impl) alreadyProcessed(ticket dbmodels.ServiceTicket) approvalapimodels.ProcessResult {
	result := approvalapimodels.ProcessResult{
		ID:               ticket.ID,
		Status:           ticket.Status,
		ApprovalDate:     ticket.ApprovalDate,
		AlreadyProcessed: true,
	}
	if ticket.Customer != nil {
		result.Customer = ticket.Customer.Name
	}
	return result
}

func (i impl) StaffTransition(ticketID string, action models.ApprovalAction, notes, adminID string) error {
	if !action.IsValid() {
		return ErrInvalidRequest
	}
	logger := i.getLogger(ticketID)
	ticket, err := i.ticketStore.GetByID(ticketID)
	if err != nil {
		logger.WithError(err).Error("servis formu okunamadı")
		return err
	}
	if ticket == nil {
		return ErrNotFound
	}
	if action == models.ApprovalActionReject && notes == "" {
		notes = i.defaultRejectReason()
	}
	// onay bağlantısı bu yolda bilinçli olarak temizlenmiyor, davranış
	// dışa dönük akışla aynı değil (bkz. DESIGN.md)
	updMap := map[string]interface{}{
		"status":            action.ToStatus(),
		"approval_date":     time.Now(),
		"approval_notes":    notes,
		"external_approval": false,
		"approver_id":       adminID,
	}
	affected, err := i.ticketStore.TransitionByID(ticketID, updMap)
	if err != nil {
		logger.WithError(err).Error("durum geçişi kaydedilemedi")
		return err
	}
	if affected == 0 {
		return ErrInvalidState
	}
	i.notifyStaff(*ticket, action)
	return nil
}

func (i impl) GetPdfByToken(ctx context.Context, pdfToken string) ([]byte, string, error) {
	if helpers.IsContextDone(ctx) {
		return nil, "", ctx.Err()
	}
	ticket, err := i.ticketStore.GetByPdfToken(pdfToken)
	if err != nil {
		log.WithError(err).Error("pdf bağlantısı sorgulanamadı")
		return nil, "", err
	}
	if ticket == nil {
		return nil, "", ErrNotFound
	}
	pdfFile, err := i.renderTicket(ctx, *ticket)
	if err != nil {
		i.getLogger(ticket.ID).WithError(err).Error("pdf oluşturulamadı")
		return nil, "", err
	}
	fileName := fmt.Sprintf("servis-formu-%s.pdf", ticket.ID)
	return pdfFile, fileName, nil
}

func (i impl) defaultRejectReason() string {
	reason, err := i.settings.GetString(models.RejectDefaultReason)
	if err != nil || reason == "" {
		return fallbackRejectReason
	}
	return reason
}

func (i impl) appBaseUrl() string {
	base, err := i.settings.GetString(models.AppBaseUrlSetting)
	if err != nil || base == "" {
		return i.cfg.AppBaseUrl
	}
	return base
}

func (i impl) buildApprovalMail(ticket dbmodels.ServiceTicket, approvalToken string, withAttachment bool) string {
	base := i.appBaseUrl()
	approveLink := fmt.Sprintf("%s/ticket-approval/%s/approve", base, approvalToken)
	rejectLink := fmt.Sprintf("%s/ticket-approval/%s/reject", base, approvalToken)
	contact := ""
	if ticket.Customer != nil {
		contact = ticket.Customer.ContactName
	}
	detail := "Form detaylarını onay sayfasındaki bağlantılardan görüntüleyebilirsiniz."
	if withAttachment {
		detail = "Form detayları ekteki PDF dosyasındadır."
	}
	return fmt.Sprintf(`<html><body>
<p>Sayın %s,</p>
<p>%s tarihli hizmet servis formunuz onayınızı bekliyor.</p>
<p><a href="%s">Formu Onayla</a> &nbsp;|&nbsp; <a href="%s">Formu Reddet</a></p>
<p>%s</p>
</body></html>`,
		contact, ticket.StartTime.Format("02.01.2006"), approveLink, rejectLink, detail)
}

func (i impl) sendConfirmationMail(ticket dbmodels.ServiceTicket, action models.ApprovalAction, notes string) error {
	statusText := "onaylandı"
	extra := ""
	if action == models.ApprovalActionReject {
		statusText = "reddedildi"
		extra = fmt.Sprintf("<p>Gerekçe: %s</p>", notes)
	}
	body := fmt.Sprintf(`<html><body>
<p>Sayın %s,</p>
<p>%s tarihli hizmet servis formunuz %s.</p>
%s
</body></html>`,
		ticket.Customer.ContactName, ticket.StartTime.Format("02.01.2006"), statusText, extra)
	subject := fmt.Sprintf("Hizmet Servis Formu - %s", statusText)
	return i.sender.SendEMail(ticket.Customer.ContactEmail, subject, body)
}

func (i impl) notifyStaff(ticket dbmodels.ServiceTicket, action models.ApprovalAction) {
	if i.hub == nil {
		return
	}
	customer := ""
	if ticket.Customer != nil {
		customer = ticket.Customer.Name
	}
	msg := fmt.Sprintf("%s servis formu %s", customer, map[models.ApprovalAction]string{
		models.ApprovalActionApprove: "onaylandı",
		models.ApprovalActionReject:  "reddedildi",
	}[action])
	i.hub.Broadcast(models.WsTicketTransition, msg)
}
