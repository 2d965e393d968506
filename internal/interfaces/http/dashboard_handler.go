package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/vendordocs-api/internal/application/analytics"
)

// DashboardHandler maneja los resúmenes por rol.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Admin devuelve totales de proveedores, auditores y documentos más la actividad reciente.
// GET /api/admin/dashboard
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	out, err := h.uc.Admin(c.UserContext(), GetSubject(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Auditor resumen restringido a los proveedores asignados.
// GET /api/auditor/dashboard
func (h *DashboardHandler) Auditor(c *fiber.Ctx) error {
	out, err := h.uc.Auditor(c.UserContext(), GetSubject(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Vendor conteos por estado de los documentos propios.
// GET /api/vendor/dashboard
func (h *DashboardHandler) Vendor(c *fiber.Ctx) error {
	out, err := h.uc.Vendor(c.UserContext(), GetSubject(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
