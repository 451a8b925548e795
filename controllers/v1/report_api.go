package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"servis-takip-backend/controllers"
	reporthandler "servis-takip-backend/lib/report"
	"servis-takip-backend/middleware"
	apimodels "servis-takip-backend/models/api"
	reportapimodels "servis-takip-backend/models/api/report"
)

type reportApiController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app *fiber.App) {
	controller := reportApiController{}
	app.Route("reports", func(reportsRoute fiber.Router) {
		reportsRoute.Use(middleware.AuthorizationRequired())

		reportsRoute.Post("summary", controller.Summary)
		reportsRoute.Post("export", controller.Export)
	})
}

// @Summary Özet rapor
// @Tags Raporlar
// @Description Tarih aralığına göre durum/kategori/personel kırılımları
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body			body	reportapimodels.ReportFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=reportapimodels.SummaryView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/summary [post]
func (c *reportApiController) Summary(ctx *fiber.Ctx) error {
	filter, err := c.parseFilter(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := reporthandler.Instance.Summary(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Rapor oluşturulamadı")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Excel dışa aktarım
// @Tags Raporlar
// @Description Tarih aralığındaki servis formlarını xlsx olarak indir
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body			body	reportapimodels.ReportFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/export [post]
func (c *reportApiController) Export(ctx *fiber.Ctx) error {
	filter, err := c.parseFilter(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buf, err := reporthandler.Instance.ExportTickets(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Dışa aktarım oluşturulamadı")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="servis-formlari.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

func (c *reportApiController) parseFilter(ctx *fiber.Ctx) (reportapimodels.ReportFilter, error) {
	filter := reportapimodels.ReportFilter{}
	if len(ctx.Body()) > 0 {
		if err := c.BodyParser(ctx, &filter); err != nil {
			return filter, err
		}
	}
	if filter.DateFrom == nil && filter.DateTo == nil {
		filter = reporthandler.DefaultRange()
	}
	return filter, nil
}
