package ports

import (
	"context"

	"github.com/medihelp/sally-api/internal/domain/conversation"
)

// CompletionService puerto de salida hacia el servicio de generación de texto.
// Cualquier adaptador (OpenAI, Anthropic, mock) debe implementar esta interfaz;
// la aplicación solo conoce este contrato, no la implementación concreta.
type CompletionService interface {
	// Complete envía la lista ordenada de mensajes (system primero) y devuelve
	// la respuesta generada. El contexto debe llevar timeout: las llamadas al
	// modelo pueden demorar varios segundos.
	Complete(ctx context.Context, messages []conversation.Message) (string, error)

	// Enabled indica si el servicio tiene credencial configurada. Cuando es
	// false el asistente responde el mensaje estático de no disponibilidad
	// sin intentar la llamada.
	Enabled() bool
}
