package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendordocs-api/internal/application/dto"
	"github.com/jhoicas/vendordocs-api/internal/application/usecase"
)

// AssignmentHandler asignaciones auditor → proveedor.
type AssignmentHandler struct {
	uc *usecase.AssignmentUseCase
}

// NewAssignmentHandler construye el handler.
func NewAssignmentHandler(uc *usecase.AssignmentUseCase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

// Assign godoc
// @Summary      Asignar proveedor a auditor
// @Description  Idempotente: repetir la asignación no duplica el vínculo.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AssignVendorRequest  true  "auditorId, vendorId"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/assignments [post]
func (h *AssignmentHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignVendorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.Assign(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Vendor assigned successfully"})
}

// AssignedVendors godoc
// @Summary      Proveedores asignados al auditor autenticado
// @Tags         auditor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/auditor/vendors [get]
func (h *AssignmentHandler) AssignedVendors(c *fiber.Ctx) error {
	out, err := h.uc.AssignedVendors(c.UserContext(), GetSubject(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
