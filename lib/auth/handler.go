package authhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"servis-takip-backend/db"
	usersstore "servis-takip-backend/lib/users/store"
	authutils "servis-takip-backend/lib/utils/auth-utils"
	authapimodels "servis-takip-backend/models/api/auth"
)

type Provider interface {
	Login(data authapimodels.LoginRequest) (*authapimodels.LoginResponse, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		usersStore: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	usersStore usersstore.Provider
}

func (i impl) Login(data authapimodels.LoginRequest) (*authapimodels.LoginResponse, error) {
	logger := log.WithField("email", data.Email)
	user, err := i.usersStore.FindByEmail(data.Email)
	if err != nil {
		logger.WithError(err).Error("kullanıcı sorgulanamadı")
		return nil, errors.New("giriş yapılamadı")
	}
	if user == nil || !user.IsActive {
		return nil, errors.New("e-posta veya şifre hatalı")
	}
	if authutils.GetMD5Hash(data.Password) != user.Password {
		return nil, errors.New("e-posta veya şifre hatalı")
	}
	accessToken, err := authutils.GetToken(user.ID, user.GetFullName(), user.Role)
	if err != nil {
		logger.WithError(err).Error("token üretilemedi")
		return nil, errors.New("giriş yapılamadı")
	}
	refreshToken, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		logger.WithError(err).Error("token üretilemedi")
		return nil, errors.New("giriş yapılamadı")
	}
	return &authapimodels.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
		FullName:     user.GetFullName(),
		Role:         string(user.Role),
	}, nil
}
