package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/medihelp/sally-api/internal/application/dto"
	"github.com/medihelp/sally-api/internal/application/usecase"
	"github.com/medihelp/sally-api/internal/domain"
)

// AssistantHandler maneja las peticiones HTTP del asistente conversacional.
type AssistantHandler struct {
	uc *usecase.AssistantUseCase
}

// NewAssistantHandler construye el handler.
func NewAssistantHandler(uc *usecase.AssistantUseCase) *AssistantHandler {
	return &AssistantHandler{uc: uc}
}

// Start godoc
// @Summary      Iniciar conversación con Sally
// @Tags         ia
// @Produce      json
// @Success      200  {object}  dto.StartConversationResponse
// @Router       /api/ia [get]
func (h *AssistantHandler) Start(c *fiber.Ctx) error {
	out := h.uc.StartConversation(c.Context())
	return c.JSON(out)
}

// Message godoc
// @Summary      Enviar un turno a la conversación
// @Tags         ia
// @Accept       json
// @Produce      json
// @Param        sessionId  path  string  true  "ID de sesión"
// @Param        body  body  dto.TurnRequest  true  "Mensaje del usuario"
// @Success      200  {object}  dto.TurnResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/ia/{sessionId} [post]
func (h *AssistantHandler) Message(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	var in dto.TurnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Cuerpo de la petición inválido"})
	}

	// Compatibilidad con el cliente antiguo que enviaba el documento en
	// campo propio en lugar de message.
	input := in.Message
	if in.Documento != "" {
		input = in.Documento
	}

	out, err := h.uc.PostMessage(c.Context(), sessionID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Sesión no válida. Inicie una nueva conversación."})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Mensaje requerido"})
		case errors.Is(err, domain.ErrInvalidSessionState):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Estado de conversación no válido. Inicie una nueva conversación."})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Error procesando el mensaje"})
		}
	}
	return c.JSON(out)
}
