package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mmrconsultoria/portal-os/internal/application/dto"
	"github.com/mmrconsultoria/portal-os/internal/application/movement"
)

// MovementHandler captura y listado de movimientos Entrada/Saída OS.
type MovementHandler struct {
	uc   *movement.MovementUseCase
	errs errorMapper
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *movement.MovementUseCase, errs errorMapper) *MovementHandler {
	return &MovementHandler{uc: uc, errs: errs}
}

// Register godoc
// @Summary      Registrar Entrada/Saída de OS
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "os, item, quantity, process, operator, machine, movement"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterEvent(c.UserContext(), GetCompanyCode(c), GetUserID(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List registros de la empresa, últimos primero.
// GET /api/movements?os=&limit=&offset=
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ListEvents(c.UserContext(), GetCompanyCode(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Import carga una exportación .xlsx de la planilla (campo multipart "file").
// POST /api/movements/import
func (h *MovementHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "anexe a planilha no campo 'file'"})
	}
	f, err := fh.Open()
	if err != nil {
		return h.errs.write(c, err)
	}
	defer f.Close()

	out, err := h.uc.ImportSheet(c.UserContext(), GetCompanyCode(c), GetUserID(c), f)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
