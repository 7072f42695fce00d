package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medihelp/sally-api/internal/application/dto"
	"github.com/medihelp/sally-api/internal/application/usecase"
)

// CatalogHandler maneja los listados de referencia: medicamentos, EPS,
// sedes, roles, equivalencias y consultas registradas.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListMedications godoc
// @Summary      Listar medicamentos
// @Tags         catalogo
// @Produce      json
// @Success      200  {array}   dto.MedicationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicamentos [get]
func (h *CatalogHandler) ListMedications(c *fiber.Ctx) error {
	out, err := h.uc.ListMedications(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Error consultando medicamentos"})
	}
	if len(out) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "No se encontraron medicamentos"})
	}
	return c.JSON(out)
}

// ListInsurers godoc
// @Summary      Listar EPS
// @Tags         catalogo
// @Produce      json
// @Success      200  {array}   dto.InsurerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/eps [get]
func (h *CatalogHandler) ListInsurers(c *fiber.Ctx) error {
	out, err := h.uc.ListInsurers(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Error consultando EPS"})
	}
	if len(out) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "No se encontraron EPS"})
	}
	return c.JSON(out)
}

// ListFacilities godoc
// @Summary      Listar sedes
// @Tags         catalogo
// @Produce      json
// @Success      200  {array}   dto.FacilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sedes [get]
func (h *CatalogHandler) ListFacilities(c *fiber.Ctx) error {
	out, err := h.uc.ListFacilities(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Error consultando sedes"})
	}
	if len(out) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "No se encontraron sedes"})
	}
	return c.JSON(out)
}

// ListRoles godoc
// @Summary      Listar roles
// @Tags         catalogo
// @Produce      json
// @Success      200  {array}   dto.RoleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles [get]
func (h *CatalogHandler) ListRoles(c *fiber.Ctx) error {
	out, err := h.uc.ListRoles(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Error consultando roles"})
	}
	if len(out) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "No se encontraron roles"})
	}
	return c.JSON(out)
}

// ListEquivalences godoc
// @Summary      Listar equivalencias de medicamentos
// @Tags         catalogo
// @Produce      json
// @Success      200  {array}   dto.EquivalenceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equivalencias [get]
func (h *CatalogHandler) ListEquivalences(c *fiber.Ctx) error {
	out, err := h.uc.ListEquivalences(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Error consultando equivalencias"})
	}
	if len(out) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "No se encontraron equivalencias"})
	}
	return c.JSON(out)
}

// ListQueryLogs godoc
// @Summary      Listar consultas médicas registradas
// @Tags         catalogo
// @Produce      json
// @Success      200  {array}   dto.QueryLogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consultas [get]
func (h *CatalogHandler) ListQueryLogs(c *fiber.Ctx) error {
	out, err := h.uc.ListQueryLogs(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Error consultando el registro de consultas"})
	}
	if len(out) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "No se encontraron consultas"})
	}
	return c.JSON(out)
}
