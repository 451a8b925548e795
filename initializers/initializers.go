package initializers

import (
	"context"

	"servis-takip-backend/config"
	"servis-takip-backend/fiberlog"
	approvalhandler "servis-takip-backend/lib/approval"
	authhandler "servis-takip-backend/lib/auth"
	categoryhandler "servis-takip-backend/lib/category"
	customerhandler "servis-takip-backend/lib/customer"
	xlsexport "servis-takip-backend/lib/export/xls"
	filestorage "servis-takip-backend/lib/file-storage"
	reporthandler "servis-takip-backend/lib/report"
	settingshandler "servis-takip-backend/lib/settings"
	tickethandler "servis-takip-backend/lib/ticket"
	usershandler "servis-takip-backend/lib/users"
	connectionhub "servis-takip-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	connectionhub.Init()
	filestorage.NewHandler()
	settingshandler.NewHandler()
	authhandler.NewHandler()
	usershandler.NewHandler()
	customerhandler.NewHandler()
	categoryhandler.NewHandler()
	xlsexport.NewHandler()
	tickethandler.NewHandler()
	approvalhandler.NewHandler(approvalhandler.Config{
		AppBaseUrl: config.Conf.Web.AppBaseUrl,
	})
	reporthandler.NewHandler()
}
