package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/mmrconsultoria/portal-os/internal/application/nfe"
)

// NFeHandler importación de XML NF-e.
type NFeHandler struct {
	uc   *nfe.ImportUseCase
	errs errorMapper
}

// NewNFeHandler construye el handler.
func NewNFeHandler(uc *nfe.ImportUseCase, errs errorMapper) *NFeHandler {
	return &NFeHandler{uc: uc, errs: errs}
}

// Import godoc
// @Summary      Importar XML NF-e (.xml ou .zip)
// @Tags         nfe
// @Accept       multipart/form-data
// @Produce      json
// @Param        files   formData  file    true   "um ou mais .xml/.zip"
// @Param        format  query     string  false  "xlsx para baixar a planilha"
// @Success      200   {object}  dto.NFeImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/nfe/import [post]
func (h *NFeHandler) Import(c *fiber.Ctx) error {
	var uploads []nfe.Upload
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["files"] {
			f, err := fh.Open()
			if err != nil {
				return h.errs.write(c, err)
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return h.errs.write(c, err)
			}
			uploads = append(uploads, nfe.Upload{Name: fh.Filename, Data: data})
		}
	}

	res, err := h.uc.Import(c.UserContext(), uploads)
	if err != nil {
		return h.errs.write(c, err)
	}

	if c.Query("format") == "xlsx" {
		data, err := h.uc.Workbook(res)
		if err != nil {
			return h.errs.write(c, err)
		}
		return sendFile(c, nfe.ExportName, mimeXLSX, data)
	}
	return c.JSON(nfe.ToResponse(res))
}
