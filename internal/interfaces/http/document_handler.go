package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendordocs-api/internal/application/documents"
	"github.com/jhoicas/vendordocs-api/internal/application/dto"
	"github.com/jhoicas/vendordocs-api/internal/application/reports"
	"github.com/jhoicas/vendordocs-api/internal/domain"
)

// DocumentHandler subida, listado, revisión y exportación de documentos.
type DocumentHandler struct {
	uc     *documents.UseCase
	export *reports.ExportUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *documents.UseCase, export *reports.ExportUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc, export: export}
}

// List godoc
// @Summary      Listar documentos visibles
// @Description  Admin ve todos; auditor solo los de proveedores asignados; proveedor solo los propios.
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.DocumentResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetSubject(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Upload godoc
// @Summary      Subir documento
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file      formData  file    true   "archivo"
// @Param        category  formData  string  false  "invoice | report | certificate | agreement | other"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/documents/upload [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return respondError(c, fmt.Errorf("%w: no se recibió ningún archivo", domain.ErrInvalidInput))
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, fmt.Errorf("abrir archivo subido: %w", err))
	}
	defer f.Close()

	out, err := h.uc.Upload(c.UserContext(), GetSubject(c), documents.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Content:     f,
		Category:    c.FormValue("category"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Aprobar o rechazar documento
// @Description  Solo documentos pending; approved y rejected son definitivos.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID del documento"
// @Param        body  body  dto.UpdateStatusRequest  true  "approved | rejected"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/status [put]
func (h *DocumentHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetStatus(c.UserContext(), GetSubject(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar documentos visibles
// @Tags         documents
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        format  query  string  false  "pdf | xlsx"  default(pdf)
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documents/export [get]
func (h *DocumentHandler) Export(c *fiber.Ctx) error {
	if h.export == nil {
		return respondError(c, errors.New("exportación no configurada"))
	}
	f, err := h.export.Export(c.UserContext(), GetSubject(c), c.Query("format"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, f.Name))
	return c.Send(f.Data)
}
