package entity

import "time"

// MaxQueryTermLength tope de caracteres del término registrado en consultas.
const MaxQueryTermLength = 120

// QueryLog registro de una consulta médica (tabla consultas). Se escribe con
// mejor esfuerzo: si la escritura falla, la respuesta al usuario no se afecta.
type QueryLog struct {
	ID                int64
	IDUsuario         string
	FechaHora         time.Time
	Canal             string
	TerminoBuscado    string // truncado a MaxQueryTermLength
	Respuesta         string
	TiempoRespuestaMs int
	Disponible        bool
}
