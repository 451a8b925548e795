package db

import (
	log "github.com/sirupsen/logrus"

	"servis-takip-backend/config"
	categorystore "servis-takip-backend/lib/category/store"
	settingsstore "servis-takip-backend/lib/settings/store"
	usersstore "servis-takip-backend/lib/users/store"
	authutils "servis-takip-backend/lib/utils/auth-utils"
	"servis-takip-backend/models"
	dbmodels "servis-takip-backend/models/db"
)

func InitPreload() {
	addDefaultAdmin()
	fillAppSettings()
	fillCategories()
}

func addDefaultAdmin() {
	if config.Conf.Admin.Email == "" {
		log.Warn("varsayılan yönetici eklenmedi, ADMIN_EMAIL ayarı yok")
		return
	}
	usersStore := usersstore.NewInstance(DB)
	existedRec, err := usersStore.FindByEmail(config.Conf.Admin.Email)
	if err != nil {
		log.WithError(err).Error("varsayılan yönetici eklenemedi")
		return
	}
	if existedRec != nil {
		return
	}
	rec := dbmodels.User{
		IsActive:  true,
		Role:      models.AdminRole,
		Password:  authutils.GetMD5Hash(config.Conf.Admin.Password),
		FirstName: config.Conf.Admin.FirstName,
		LastName:  config.Conf.Admin.LastName,
		Email:     config.Conf.Admin.Email,
	}
	_, err = usersStore.Create(rec)
	if err != nil {
		log.WithError(err).Error("varsayılan yönetici eklenemedi")
	}
}

func fillAppSettings() {
	log.Info("varsayılan ayarlar dolduruluyor")
	settingsStore := settingsstore.NewInstance(DB)
	for code, settingData := range dbmodels.DefaultSettingsMap {
		existing, err := settingsStore.GetByCode(code)
		if err != nil {
			log.WithError(err).
				WithField("setting_code", code).
				Error("ayar okunamadı")
			continue
		}
		if existing != nil {
			continue
		}
		if err = settingsStore.Create(settingData); err != nil {
			log.WithError(err).
				WithField("setting_code", code).
				Error("ayar eklenemedi")
		}
	}
	log.Info("varsayılan ayarlar tamamlandı")
}

var defaultCategories = []string{"Bakım", "Arıza", "Kurulum", "Keşif"}

func fillCategories() {
	categoryStore := categorystore.NewInstance(DB)
	list, err := categoryStore.List(false)
	if err != nil {
		log.WithError(err).Error("kategori listesi okunamadı")
		return
	}
	if len(list) > 0 {
		return
	}
	for _, name := range defaultCategories {
		_, err = categoryStore.Create(dbmodels.Category{Name: name, IsActive: true})
		if err != nil {
			log.WithError(err).WithField("category", name).Error("kategori eklenemedi")
		}
	}
}
