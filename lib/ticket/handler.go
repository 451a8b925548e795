package tickethandler

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"servis-takip-backend/db"
	categorystore "servis-takip-backend/lib/category/store"
	customerstore "servis-takip-backend/lib/customer/store"
	filestorage "servis-takip-backend/lib/file-storage"
	ticketstore "servis-takip-backend/lib/ticket/store"
	connectionhub "servis-takip-backend/lib/ws/hub/connection-hub"
	"servis-takip-backend/models"
	ticketapimodels "servis-takip-backend/models/api/ticket"
	dbmodels "servis-takip-backend/models/db"
)

type Provider interface {
	Create(data ticketapimodels.TicketData, userID string) (id string, err error)
	Update(id string, data ticketapimodels.TicketData) error
	Get(id string) (*ticketapimodels.TicketView, error)
	List(filter ticketapimodels.TicketFilter) (list []ticketapimodels.TicketView, rowCount int64, err error)
	Delete(id string) error
	UploadImage(ctx context.Context, ticketID string, file []byte, fileName, contentType, caption string) (id string, err error)
	ListImages(ticketID string) ([]ticketapimodels.TicketImageView, error)
	GetImage(ctx context.Context, ticketID, imageID string) (body []byte, fileName string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(
		ticketstore.NewInstance(db.DB),
		customerstore.NewInstance(db.DB),
		categorystore.NewInstance(db.DB),
		filestorage.Instance,
		connectionhub.Instance,
	)
}

func NewInstance(ticketStore ticketstore.Provider,
	customerStore customerstore.Provider,
	categoryStore categorystore.Provider,
	storage filestorage.Provider,
	hub connectionhub.Provider,
) Provider {
	return impl{
		ticketStore:   ticketStore,
		customerStore: customerStore,
		categoryStore: categoryStore,
		storage:       storage,
		hub:           hub,
	}
}

type impl struct {
	ticketStore   ticketstore.Provider
	customerStore customerstore.Provider
	categoryStore categorystore.Provider
	storage       filestorage.Provider
	hub           connectionhub.Provider
}

func (i impl) Create(data ticketapimodels.TicketData, userID string) (string, error) {
	customer, err := i.customerStore.GetByID(data.CustomerID)
	if err != nil {
		return "", err
	}
	if customer == nil {
		return "", errors.New("müşteri bulunamadı")
	}
	category, err := i.categoryStore.GetByID(data.CategoryID)
	if err != nil {
		return "", err
	}
	if category == nil {
		return "", errors.New("kategori bulunamadı")
	}
	rec := dbmodels.ServiceTicket{
		CustomerID:  data.CustomerID,
		CategoryID:  data.CategoryID,
		UserID:      userID,
		StartTime:   data.StartTime,
		EndTime:     data.EndTime,
		Subject:     data.Subject,
		Description: data.Description,
		Location:    data.Location,
		Status:      models.TicketStatusPending,
	}
	rec.Duration = rec.CalcDuration()
	id, err := i.ticketStore.Create(rec)
	if err != nil {
		log.WithError(err).Error("servis formu kaydedilemedi")
		return "", err
	}
	if i.hub != nil {
		i.hub.Broadcast(models.WsTicketCreated, customer.Name+" için yeni servis formu oluşturuldu")
	}
	return id, nil
}

func (i impl) Update(id string, data ticketapimodels.TicketData) error {
	rec, err := i.ticketStore.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("servis formu bulunamadı")
	}
	if rec.Status.IsTerminal() {
		return errors.New("sonuçlanmış servis formu güncellenemez")
	}
	updMap := map[string]interface{}{
		"customer_id": data.CustomerID,
		"category_id": data.CategoryID,
		"start_time":  data.StartTime,
		"end_time":    data.EndTime,
		"subject":     data.Subject,
		"description": data.Description,
		"location":    data.Location,
	}
	// zaman alanları değiştiğinde süre yeniden hesaplanır
	updMap["duration"] = data.EndTime.Sub(data.StartTime).Hours()
	err = i.ticketStore.Update(id, updMap)
	if err != nil {
		log.WithField("ticket_id", id).WithError(err).Error("servis formu güncellenemedi")
		return err
	}
	return nil
}

func (i impl) Get(id string) (*ticketapimodels.TicketView, error) {
	rec, err := i.ticketStore.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	view := rec.ToModelView()
	return &view, nil
}

func (i impl) List(filter ticketapimodels.TicketFilter) (list []ticketapimodels.TicketView, rowCount int64, err error) {
	recList, rowCount, err := i.ticketStore.List(filter)
	if err != nil {
		log.WithError(err).Error("servis formu listesi alınamadı")
		return nil, 0, err
	}
	result := make([]ticketapimodels.TicketView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, rec.ToModelView())
	}
	return result, rowCount, nil
}

func (i impl) Delete(id string) error {
	rec, err := i.ticketStore.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("servis formu bulunamadı")
	}
	return i.ticketStore.Delete(id)
}

func (i impl) UploadImage(ctx context.Context, ticketID string, file []byte, fileName, contentType, caption string) (string, error) {
	rec, err := i.ticketStore.GetByID(ticketID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", errors.New("servis formu bulunamadı")
	}
	objectKey, err := i.storage.UploadTicketImage(ctx, ticketID, file, fileName, contentType)
	if err != nil {
		log.WithField("ticket_id", ticketID).WithError(err).Error("görsel yüklenemedi")
		return "", err
	}
	imageRec := dbmodels.TicketImage{
		TicketID:    ticketID,
		ObjectKey:   objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Caption:     caption,
	}
	return i.ticketStore.AddImage(imageRec)
}

func (i impl) ListImages(ticketID string) (list []ticketapimodels.TicketImageView, err error) {
	recList, err := i.ticketStore.ListImages(ticketID)
	if err != nil {
		return nil, err
	}
	for _, rec := range recList {
		list = append(list, rec.ToModelView())
	}
	return list, nil
}

func (i impl) GetImage(ctx context.Context, ticketID, imageID string) ([]byte, string, error) {
	rec, err := i.ticketStore.GetImage(ticketID, imageID)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "", errors.New("görsel bulunamadı")
	}
	body, err := i.storage.GetFile(ctx, rec.ObjectKey)
	if err != nil {
		return nil, "", err
	}
	return body, rec.FileName, nil
}
