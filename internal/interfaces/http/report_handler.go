package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mmrconsultoria/portal-os/internal/application/dto"
	"github.com/mmrconsultoria/portal-os/internal/application/report"
	"github.com/mmrconsultoria/portal-os/internal/domain"
)

// Content types de las exportaciones.
const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// ReportHandler reporte de tiempo por OS-Item (solo admin).
type ReportHandler struct {
	uc   *report.ReportUseCase
	errs errorMapper
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase, errs errorMapper) *ReportHandler {
	return &ReportHandler{uc: uc, errs: errs}
}

func (h *ReportHandler) filter(c *fiber.Ctx) (report.Filter, error) {
	var in dto.CycleReportRequest
	if err := c.QueryParser(&in); err != nil {
		return report.Filter{}, &domain.ValidationError{Problems: []string{"parâmetros do filtro inválidos"}}
	}
	return report.ParseFilter(in, h.uc.Location())
}

// Cycles godoc
// @Summary      Tempo por OS-Item
// @Tags         reports
// @Produce      json
// @Param        from             query  string  false  "AAAA-MM-DD"
// @Param        to               query  string  false  "AAAA-MM-DD"
// @Param        os               query  string  false  "lista separada por vírgula"
// @Param        machine          query  string  false  "lista separada por vírgula"
// @Param        pair_by_process  query  bool    false  "padrão true"
// @Success      200   {object}  dto.CycleReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/cycles [get]
func (h *ReportHandler) Cycles(c *fiber.Ctx) error {
	f, err := h.filter(c)
	if err != nil {
		return h.errs.write(c, err)
	}
	r, err := h.uc.BuildReport(c.UserContext(), GetCompanyCode(c), f)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(report.ToResponse(r))
}

// ExportXLSX GET /api/reports/cycles/export.xlsx
func (h *ReportHandler) ExportXLSX(c *fiber.Ctx) error {
	f, err := h.filter(c)
	if err != nil {
		return h.errs.write(c, err)
	}
	data, name, err := h.uc.ExportXLSX(c.UserContext(), GetCompanyCode(c), f)
	if err != nil {
		return h.errs.write(c, err)
	}
	return sendFile(c, name, mimeXLSX, data)
}

// ExportPDF GET /api/reports/cycles/export.pdf
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	f, err := h.filter(c)
	if err != nil {
		return h.errs.write(c, err)
	}
	data, name, err := h.uc.ExportPDF(c.UserContext(), GetCompanyCode(c), f)
	if err != nil {
		return h.errs.write(c, err)
	}
	return sendFile(c, name, mimePDF, data)
}

func sendFile(c *fiber.Ctx, name, mime string, data []byte) error {
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, mime)
	return c.Send(data)
}
