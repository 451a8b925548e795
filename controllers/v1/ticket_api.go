package apiv1

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"servis-takip-backend/controllers"
	approvalhandler "servis-takip-backend/lib/approval"
	tickethandler "servis-takip-backend/lib/ticket"
	"servis-takip-backend/middleware"
	"servis-takip-backend/models"
	apimodels "servis-takip-backend/models/api"
	approvalapimodels "servis-takip-backend/models/api/approval"
	ticketapimodels "servis-takip-backend/models/api/ticket"
)

type ticketApiController struct {
	controllers.BaseAPIController
}

func InitTicketApiRouters(app *fiber.App) {
	controller := ticketApiController{}
	app.Route("tickets", func(ticketsRoute fiber.Router) {
		ticketsRoute.Use(middleware.AuthorizationRequired())

		ticketsRoute.Post("", controller.Create)
		ticketsRoute.Post("list", controller.List)
		ticketsRoute.Route(":id", func(ticketIDRoute fiber.Router) {
			ticketIDRoute.Get("", controller.Get)
			ticketIDRoute.Put("", controller.Update)
			ticketIDRoute.Delete("", middleware.AdminRequired(), controller.Delete)
			ticketIDRoute.Post("transition/:action", middleware.AdminRequired(), controller.Transition)
			ticketIDRoute.Post("images", controller.UploadImage)
			ticketIDRoute.Get("images", controller.ListImages)
			ticketIDRoute.Get("images/:imageId", controller.GetImage)
		})
	})
}

// @Summary Servis formu oluştur
// @Tags Servis formları
// @Description Yeni hizmet servis formu oluştur
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body			body	ticketapimodels.TicketData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tickets [post]
func (c *ticketApiController) Create(ctx *fiber.Ctx) error {
	var payload ticketapimodels.TicketData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := tickethandler.Instance.Create(payload, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Servis formu oluşturulamadı")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Servis formu listesi
// @Tags Servis formları
// @Description Filtreye göre servis formu listesi
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body			body	ticketapimodels.TicketFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]ticketapimodels.TicketView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tickets/list [post]
func (c *ticketApiController) List(ctx *fiber.Ctx) error {
	var filter ticketapimodels.TicketFilter
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := tickethandler.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Servis formu listesi alınamadı")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Servis formu detayı
// @Tags Servis formları
// @Description Servis formu detayı
// @Param   Authorization	header	string	true	"Authorization token"
// @Param 	id				path	string	true	"ticket id"
// @Success 200 {object} apimodels.Response{data=ticketapimodels.TicketView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tickets/{id} [get]
func (c *ticketApiController) Get(ctx *fiber.Ctx) error {
	id, err := c.GetIDByKey(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := tickethandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Servis formu alınamadı")
	}
	if view == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("servis formu bulunamadı"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Servis formu güncelle
// @Tags Servis formları
// @Description Bekleyen servis formunu güncelle
// @Param   Authorization	header	string	true	"Authorization token"
// @Param 	id				path	string	true	"ticket id"
// @Param	body			body	ticketapimodels.TicketData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tickets/{id} [put]
func (c *ticketApiController) Update(ctx *fiber.Ctx) error {
	id, err := c.GetIDByKey(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload ticketapimodels.TicketData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = tickethandler.Instance.Update(id, payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Servis formu sil
// @Tags Servis formları
// @Description Servis formunu sil
// @Param   Authorization	header	string	true	"Authorization token"
// @Param 	id				path	string	true	"ticket id"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tickets/{id} [delete]
func (c *ticketApiController) Delete(ctx *fiber.Ctx) error {
	id, err := c.GetIDByKey(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = tickethandler.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Servis formu silinemedi")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Servis formu durum geçişi
// @Tags Servis formları
// @Description Yönetici tarafından onaylama/reddetme
// @Param   Authorization	header	string	true	"Authorization token"
// @Param 	id				path	string	true	"ticket id"
// @Param 	action			path	string	true	"approve | reject"
// @Param	body			body	approvalapimodels.StaffTransitionRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tickets/{id}/transition/{action} [post]
func (c *ticketApiController) Transition(ctx *fiber.Ctx) error {
	id, err := c.GetIDByKey(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	action := models.ApprovalAction(ctx.Params("action"))
	var payload approvalapimodels.StaffTransitionRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = approvalhandler.Instance.StaffTransition(id, action, payload.Notes, middleware.GetUserID(ctx))
	if err != nil {
		switch {
		case errors.Is(err, approvalhandler.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		case errors.Is(err, approvalhandler.ErrInvalidState), errors.Is(err, approvalhandler.ErrInvalidRequest):
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Durum geçişi yapılamadı")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Form görseli yükle
// @Tags Servis formları
// @Description Servis formuna görsel ekle
// @Param   Authorization	header	string	true	"Authorization token"
// @Param 	id				path	string	true	"ticket id"
// @Param	file			formData	file	true	"görsel dosyası"
// @Param	caption			formData	string	false	"açıklama"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tickets/{id}/images [post]
func (c *ticketApiController) UploadImage(ctx *fiber.Ctx) error {
	id, err := c.GetIDByKey(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("görsel dosyası bulunamadı"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Görsel okunamadı")
	}
	defer file.Close()
	body, err := io.ReadAll(file)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Görsel okunamadı")
	}
	contentType := fileHeader.Header.Get("Content-Type")
	caption := ctx.FormValue("caption")
	imageID, err := tickethandler.Instance.UploadImage(ctx.UserContext(), id, body, fileHeader.Filename, contentType, caption)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(imageID))
}

// @Summary Form görselleri
// @Tags Servis formları
// @Description Servis formuna bağlı görsel listesi
// @Param   Authorization	header	string	true	"Authorization token"
// @Param 	id				path	string	true	"ticket id"
// @Success 200 {object} apimodels.Response{data=[]ticketapimodels.TicketImageView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tickets/{id}/images [get]
func (c *ticketApiController) ListImages(ctx *fiber.Ctx) error {
	id, err := c.GetIDByKey(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := tickethandler.Instance.ListImages(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Görsel listesi alınamadı")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Form görseli indir
// @Tags Servis formları
// @Description Servis formu görselini indir
// @Param   Authorization	header	string	true	"Authorization token"
// @Param 	id				path	string	true	"ticket id"
// @Param 	imageId			path	string	true	"image id"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tickets/{id}/images/{imageId} [get]
func (c *ticketApiController) GetImage(ctx *fiber.Ctx) error {
	id, err := c.GetIDByKey(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	imageID, err := c.GetIDByKey(ctx, "imageId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body, fileName, err := tickethandler.Instance.GetImage(ctx.UserContext(), id, imageID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Görsel alınamadı")
	}
	if body == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("görsel bulunamadı"))
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Status(fiber.StatusOK).Send(body)
}
