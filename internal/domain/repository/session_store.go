package repository

import "github.com/medihelp/sally-api/internal/domain/conversation"

// SessionStore puerto del repositorio de sesiones conversacionales.
// El adaptador por defecto es un mapa en memoria con vida igual a la del
// proceso; el puerto permite enchufar un almacén externo sin tocar los
// casos de uso. No garantiza exclusión mutua por sesión: dos peticiones
// concurrentes sobre el mismo ID pueden perder una actualización (limitación
// aceptada, el cliente conversacional espera la respuesta antes de enviar
// el siguiente turno).
type SessionStore interface {
	Get(id string) (*conversation.Session, bool)
	Set(session *conversation.Session)
	Delete(id string)
}
