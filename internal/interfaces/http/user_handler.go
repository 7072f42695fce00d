package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medihelp/sally-api/internal/application/dto"
	"github.com/medihelp/sally-api/internal/application/usecase"
)

// UserHandler maneja los listados administrativos de usuarios.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios registrados
// @Tags         usuarios
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Error consultando usuarios"})
	}
	if len(out) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "No se encontraron usuarios"})
	}
	return c.JSON(out)
}

// GetByDocument godoc
// @Summary      Buscar usuario por documento
// @Tags         usuarios
// @Produce      json
// @Param        documento  path  string  true  "Número de documento"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{documento} [get]
func (h *UserHandler) GetByDocument(c *fiber.Ctx) error {
	documento := c.Params("documento")
	if documento == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "documento es requerido"})
	}
	out, err := h.uc.GetByDocument(c.Context(), documento)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Error consultando el usuario"})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Usuario no encontrado"})
	}
	return c.JSON(out)
}
