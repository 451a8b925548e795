package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "servis-takip-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("migrasyon başlatılıyor")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "User tablosu oluşturulamadı")
	}
	if err := DB.AutoMigrate(&dbmodels.Customer{}); err != nil {
		return errors.Wrap(err, "Customer tablosu oluşturulamadı")
	}
	if err := DB.AutoMigrate(&dbmodels.Category{}); err != nil {
		return errors.Wrap(err, "Category tablosu oluşturulamadı")
	}
	if err := DB.AutoMigrate(&dbmodels.ServiceTicket{}); err != nil {
		return errors.Wrap(err, "ServiceTicket tablosu oluşturulamadı")
	}
	if err := DB.AutoMigrate(&dbmodels.TicketImage{}); err != nil {
		return errors.Wrap(err, "TicketImage tablosu oluşturulamadı")
	}
	if err := DB.AutoMigrate(&dbmodels.AppSetting{}); err != nil {
		return errors.Wrap(err, "AppSetting tablosu oluşturulamadı")
	}
	log.Info("migrasyon tamamlandı")
	return nil
}
