package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"servis-takip-backend/controllers"
	customerhandler "servis-takip-backend/lib/customer"
	"servis-takip-backend/middleware"
	apimodels "servis-takip-backend/models/api"
	customerapimodels "servis-takip-backend/models/api/customer"
)

type customerApiController struct {
	controllers.BaseAPIController
}

func InitCustomerApiRouters(app *fiber.App) {
	controller := customerApiController{}
	app.Route("customers", func(customersRoute fiber.Router) {
		customersRoute.Use(middleware.AuthorizationRequired())

		customersRoute.Post("", controller.Create)
		customersRoute.Get("list", controller.List)
		customersRoute.Route(":id", func(customerIDRoute fiber.Router) {
			customerIDRoute.Get("", controller.Get)
			customerIDRoute.Put("", controller.Update)
			customerIDRoute.Delete("", middleware.AdminRequired(), controller.Delete)
		})
	})
}

// @Summary Müşteri oluştur
// @Tags Müşteriler
// @Description Yeni müşteri kaydı oluştur
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body			body	customerapimodels.CustomerData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/customers [post]
func (c *customerApiController) Create(ctx *fiber.Ctx) error {
	var payload customerapimodels.CustomerData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := customerhandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Müşteri oluşturulamadı")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Müşteri listesi
// @Tags Müşteriler
// @Description Müşteri listesi
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]customerapimodels.CustomerView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/customers/list [get]
func (c *customerApiController) List(ctx *fiber.Ctx) error {
	list, err := customerhandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Müşteri listesi alınamadı")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Müşteri detayı
// @Tags Müşteriler
// @Description Müşteri detayı
// @Param   Authorization	header	string	true	"Authorization token"
// @Param 	id				path	string	true	"customer id"
// @Success 200 {object} apimodels.Response{data=customerapimodels.CustomerView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/customers/{id} [get]
func (c *customerApiController) Get(ctx *fiber.Ctx) error {
	id, err := c.GetIDByKey(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := customerhandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Müşteri alınamadı")
	}
	if view == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("müşteri bulunamadı"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Müşteri güncelle
// @Tags Müşteriler
// @Description Müşteri kaydını güncelle
// @Param   Authorization	header	string	true	"Authorization token"
// @Param 	id				path	string	true	"customer id"
// @Param	body			body	customerapimodels.CustomerData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/customers/{id} [put]
func (c *customerApiController) Update(ctx *fiber.Ctx) error {
	id, err := c.GetIDByKey(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload customerapimodels.CustomerData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = customerhandler.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Müşteri güncellenemedi")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Müşteri sil
// @Tags Müşteriler
// @Description Müşteri kaydını sil
// @Param   Authorization	header	string	true	"Authorization token"
// @Param 	id				path	string	true	"customer id"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/customers/{id} [delete]
func (c *customerApiController) Delete(ctx *fiber.Ctx) error {
	id, err := c.GetIDByKey(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = customerhandler.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Müşteri silinemedi")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
