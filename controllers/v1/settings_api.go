package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"servis-takip-backend/controllers"
	settingshandler "servis-takip-backend/lib/settings"
	"servis-takip-backend/middleware"
	"servis-takip-backend/models"
	apimodels "servis-takip-backend/models/api"
	settingsapimodels "servis-takip-backend/models/api/settings"
)

type settingsApiController struct {
	controllers.BaseAPIController
}

func InitSettingsApiRouters(app *fiber.App) {
	controller := settingsApiController{}
	app.Route("settings", func(settingsRoute fiber.Router) {
		settingsRoute.Use(middleware.AuthorizationRequired())
		settingsRoute.Use(middleware.AdminRequired())

		settingsRoute.Get("list", controller.List)
		settingsRoute.Route(":code", func(settingCodeRoute fiber.Router) {
			settingCodeRoute.Put("", controller.Update)
		})
	})
}

// @Summary Ayar listesi
// @Tags Ayarlar
// @Description Uygulama ayarları listesi
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]settingsapimodels.AppSettingView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settings/list [get]
func (c *settingsApiController) List(ctx *fiber.Ctx) error {
	list, err := settingshandler.Instance.GetList()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ayar listesi alınamadı")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Ayar değerini güncelle
// @Tags Ayarlar
// @Description Uygulama ayarının değerini güncelle
// @Param   Authorization	header	string	true	"Authorization token"
// @Param 	code			path	string	true	"setting code"
// @Param	body			body	settingsapimodels.UpdateAppSettingValue	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settings/{code} [put]
func (c *settingsApiController) Update(ctx *fiber.Ctx) error {
	code, err := c.GetIDByKey(ctx, "code")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload settingsapimodels.UpdateAppSettingValue
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = settingshandler.Instance.UpdateSettingValue(models.AppSettingCode(code), payload.Value); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
