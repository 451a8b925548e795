package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"servis-takip-backend/controllers"
	categoryhandler "servis-takip-backend/lib/category"
	"servis-takip-backend/middleware"
	apimodels "servis-takip-backend/models/api"
	categoryapimodels "servis-takip-backend/models/api/category"
)

type categoryApiController struct {
	controllers.BaseAPIController
}

func InitCategoryApiRouters(app *fiber.App) {
	controller := categoryApiController{}
	app.Route("categories", func(categoriesRoute fiber.Router) {
		categoriesRoute.Use(middleware.AuthorizationRequired())

		categoriesRoute.Get("list", controller.List)
		categoriesRoute.Post("", middleware.AdminRequired(), controller.Create)
		categoriesRoute.Route(":id", func(categoryIDRoute fiber.Router) {
			categoryIDRoute.Use(middleware.AdminRequired())
			categoryIDRoute.Put("", controller.Update)
			categoryIDRoute.Delete("", controller.Delete)
		})
	})
}

// @Summary Kategori oluştur
// @Tags Kategoriler
// @Description Yeni hizmet kategorisi oluştur
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body			body	categoryapimodels.CategoryData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/categories [post]
func (c *categoryApiController) Create(ctx *fiber.Ctx) error {
	var payload categoryapimodels.CategoryData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := categoryhandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Kategori oluşturulamadı")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Kategori listesi
// @Tags Kategoriler
// @Description Kategori listesi, only_active=true ile yalnızca aktifler
// @Param   Authorization	header	string	true	"Authorization token"
// @Param 	only_active		query	bool	false	"yalnızca aktif kategoriler"
// @Success 200 {object} apimodels.Response{data=[]categoryapimodels.CategoryView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/categories/list [get]
func (c *categoryApiController) List(ctx *fiber.Ctx) error {
	onlyActive := ctx.QueryBool("only_active")
	list, err := categoryhandler.Instance.List(onlyActive)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Kategori listesi alınamadı")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Kategori güncelle
// @Tags Kategoriler
// @Description Kategori kaydını güncelle
// @Param   Authorization	header	string	true	"Authorization token"
// @Param 	id				path	string	true	"category id"
// @Param	body			body	categoryapimodels.CategoryData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/categories/{id} [put]
func (c *categoryApiController) Update(ctx *fiber.Ctx) error {
	id, err := c.GetIDByKey(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload categoryapimodels.CategoryData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = categoryhandler.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Kategori güncellenemedi")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Kategori sil
// @Tags Kategoriler
// @Description Kategori kaydını sil
// @Param   Authorization	header	string	true	"Authorization token"
// @Param 	id				path	string	true	"category id"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/categories/{id} [delete]
func (c *categoryApiController) Delete(ctx *fiber.Ctx) error {
	id, err := c.GetIDByKey(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = categoryhandler.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Kategori silinemedi")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
