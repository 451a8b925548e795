package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"servis-takip-backend/controllers"
	approvalhandler "servis-takip-backend/lib/approval"
	"servis-takip-backend/middleware"
	"servis-takip-backend/models"
	apimodels "servis-takip-backend/models/api"
	approvalapimodels "servis-takip-backend/models/api/approval"
)

type approvalApiController struct {
	controllers.BaseAPIController
}

// InitApprovalApiRouters mounts the external approval flow. Verify, process
// and pdf endpoints are token addressed and intentionally unauthenticated.
func InitApprovalApiRouters(app *fiber.App) {
	controller := approvalApiController{}
	app.Get("send/:ticketId", middleware.AuthorizationRequired(), controller.Send)
	app.Get("verify/:token", controller.Verify)
	app.Post("process/:token/:action", controller.Process)
	app.Get("pdf/:pdfToken", controller.Pdf)
}

// @Summary Onaya gönder
// @Tags Müşteri onayı
// @Description Servis formunu müşteri onayına gönder
// @Param   Authorization	header	string	true	"Authorization token"
// @Param 	ticketId		path	string	true	"ticket id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/approval/send/{ticketId} [get]
func (c *approvalApiController) Send(ctx *fiber.Ctx) error {
	ticketID, err := c.GetIDByKey(ctx, "ticketId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	sentTo, warn, err := approvalhandler.Instance.RequestExternalApproval(ctx.UserContext(), ticketID)
	if err != nil {
		return c.sendApprovalError(ctx, err, "Onay e-postası gönderilemedi")
	}
	resp := fiber.Map{
		"message": "onay e-postası gönderildi",
		"sentTo":  sentTo,
	}
	if warn != nil {
		resp["warning"] = warn.Error()
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// @Summary Onay bağlantısını doğrula
// @Tags Müşteri onayı
// @Description Onay bağlantısındaki belirteci doğrula ve form özetini döndür
// @Param 	token	path	string	true	"approval token"
// @Success 200 {object} approvalapimodels.VerifyResult
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/approval/verify/{token} [get]
func (c *approvalApiController) Verify(ctx *fiber.Ctx) error {
	token, err := c.GetIDByKey(ctx, "token")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := approvalhandler.Instance.VerifyToken(token)
	if err != nil {
		return c.sendApprovalError(ctx, err, "Onay bağlantısı doğrulanamadı")
	}
	return ctx.Status(fiber.StatusOK).JSON(result)
}

// @Summary Onay sonucunu işle
// @Tags Müşteri onayı
// @Description Müşterinin onaylama/reddetme kararını kaydet
// @Param 	token	path	string	true	"approval token"
// @Param 	action	path	string	true	"approve | reject"
// @Param	body	body	approvalapimodels.ProcessRequest	false	"request body"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/approval/process/{token}/{action} [post]
func (c *approvalApiController) Process(ctx *fiber.Ctx) error {
	token, err := c.GetIDByKey(ctx, "token")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	action := models.ApprovalAction(ctx.Params("action"))
	payload := approvalapimodels.ProcessRequest{}
	if len(ctx.Body()) > 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	result, warn, err := approvalhandler.Instance.ProcessExternalApproval(ctx.UserContext(), token, action, payload.Reason)
	if err != nil {
		return c.sendApprovalError(ctx, err, "Onay sonucu kaydedilemedi")
	}
	message := "servis formu " + transitionText(result.Status)
	if result.AlreadyProcessed {
		message = "Bu servis formu daha önce işleme alındı"
	}
	resp := fiber.Map{
		"message": message,
		"ticket":  result,
	}
	if warn != nil {
		resp["warning"] = warn.Error()
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// @Summary Form PDF dosyası
// @Tags Müşteri onayı
// @Description Belirteç ile servis formu PDF dosyasını indir
// @Param 	pdfToken	path	string	true	"pdf token"
// @Success 200
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/approval/pdf/{pdfToken} [get]
func (c *approvalApiController) Pdf(ctx *fiber.Ctx) error {
	pdfToken, err := c.GetIDByKey(ctx, "pdfToken")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body, fileName, err := approvalhandler.Instance.GetPdfByToken(ctx.UserContext(), pdfToken)
	if err != nil {
		return c.sendApprovalError(ctx, err, "PDF alınamadı")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Status(fiber.StatusOK).Send(body)
}

func (c *approvalApiController) sendApprovalError(ctx *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, approvalhandler.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, approvalhandler.ErrInvalidState),
		errors.Is(err, approvalhandler.ErrMissingContact),
		errors.Is(err, approvalhandler.ErrInvalidRequest):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, approvalhandler.ErrDeliveryFailure):
		return ctx.Status(fiber.StatusBadGateway).JSON(apimodels.NewError(err.Error()))
	}
	return c.SendError(ctx, c.GetLogger(ctx), err, msg)
}

func transitionText(status models.TicketStatus) string {
	if status == models.TicketStatusRejected {
		return "reddedildi"
	}
	return "onaylandı"
}
