package usershandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"servis-takip-backend/db"
	usersstore "servis-takip-backend/lib/users/store"
	authutils "servis-takip-backend/lib/utils/auth-utils"
	connectionhub "servis-takip-backend/lib/ws/hub/connection-hub"
	userapimodels "servis-takip-backend/models/api/user"
	dbmodels "servis-takip-backend/models/db"
)

type Provider interface {
	Create(data userapimodels.UserData) (id string, err error)
	Update(id string, data userapimodels.UserData) error
	List() ([]userapimodels.UserView, error)
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(usersstore.NewInstance(db.DB), connectionhub.Instance)
}

func NewInstance(usersStore usersstore.Provider, hub connectionhub.Provider) Provider {
	return impl{
		usersStore: usersStore,
		hub:        hub,
	}
}

type impl struct {
	usersStore usersstore.Provider
	hub        connectionhub.Provider
}

func (i impl) Create(data userapimodels.UserData) (string, error) {
	existing, err := i.usersStore.FindByEmail(data.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", errors.New("bu e-posta ile kayıtlı kullanıcı var")
	}
	if data.Password == "" {
		return "", errors.New("şifre zorunludur")
	}
	rec := dbmodels.User{
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		Password:  authutils.GetMD5Hash(data.Password),
		Role:      data.Role,
		IsActive:  true,
	}
	if data.IsActive != nil {
		rec.IsActive = *data.IsActive
	}
	id, err := i.usersStore.Create(rec)
	if err != nil {
		log.WithError(err).Error("kullanıcı kaydedilemedi")
		return "", err
	}
	return id, nil
}

func (i impl) Update(id string, data userapimodels.UserData) error {
	rec, err := i.usersStore.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("kullanıcı bulunamadı")
	}
	updMap := map[string]interface{}{
		"first_name": data.FirstName,
		"last_name":  data.LastName,
		"email":      data.Email,
		"role":       data.Role,
	}
	if data.Password != "" {
		updMap["password"] = authutils.GetMD5Hash(data.Password)
	}
	if data.IsActive != nil {
		updMap["is_active"] = *data.IsActive
	}
	if err = i.usersStore.Update(id, updMap); err != nil {
		return err
	}
	if data.IsActive != nil && !*data.IsActive {
		i.closeSession(id)
	}
	return nil
}

func (i impl) List() (list []userapimodels.UserView, err error) {
	recList, err := i.usersStore.List()
	if err != nil {
		log.WithError(err).Error("kullanıcı listesi alınamadı")
		return nil, err
	}
	for _, rec := range recList {
		list = append(list, rec.ToModelView())
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	rec, err := i.usersStore.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("kullanıcı bulunamadı")
	}
	if err = i.usersStore.Delete(id); err != nil {
		return err
	}
	i.closeSession(id)
	return nil
}

// closeSession drops the staff push session so a removed or deactivated
// user stops receiving events immediately
func (i impl) closeSession(userID string) {
	if i.hub == nil || !i.hub.IsConnected(userID) {
		return
	}
	i.hub.SendClose(userID)
}
