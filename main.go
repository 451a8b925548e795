package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"servis-takip-backend/config"
	apiv1 "servis-takip-backend/controllers/v1"
	"servis-takip-backend/fiberlog"
	"servis-takip-backend/initializers"
	"servis-takip-backend/lib/ws"
	"servis-takip-backend/middleware"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // limit of 20MB
	})
	app.Use(fiberRecover.New())

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiv1.InitAuthApiRouters(apiV1)
	apiv1.InitTicketApiRouters(apiV1)
	apiv1.InitCustomerApiRouters(apiV1)
	apiv1.InitCategoryApiRouters(apiV1)
	apiv1.InitUserApiRouters(apiV1)
	apiv1.InitReportApiRouters(apiV1)
	apiv1.InitSettingsApiRouters(apiV1)

	//müşteri onay akışı, sürümsüz sabit yol üzerinden
	approvalApp := fiber.New()
	approvalApp.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/approval", approvalApp)
	approvalApp.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST",
	}))
	apiv1.InitApprovalApiRouters(approvalApp)

	//websocket
	wsApp := fiber.New()
	app.Mount("/ws", wsApp)
	wsApp.Use(middleware.AuthorizationRequired())
	ws.InitWs(wsApp)

	app.Hooks().OnShutdown()

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		<-c
		wg.Add(1)
		defer wg.Done()
		log.Info("sunucu kapatılıyor")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("sunucu kapatılırken hata oluştu")
		}
		time.Sleep(time.Second)
		log.Info("sunucu kapatıldı")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP sunucusu durduruldu")
}
