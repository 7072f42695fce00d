package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrSessionNotFound       = errors.New("sesión no encontrada")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrInvalidSessionState   = errors.New("estado de sesión no válido")
	ErrCompletionUnavailable = errors.New("servicio de completions no disponible")
)
