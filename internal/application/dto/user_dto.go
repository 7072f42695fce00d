package dto

import "time"

// UserResponse un usuario de la red. No expone la credencial provisional.
type UserResponse struct {
	ID              string     `json:"id_usuario"`
	TipoDocumento   string     `json:"tipo_documento"`
	Documento       string     `json:"documento"`
	NombreUsuario   string     `json:"nombre_usuario"`
	Email           *string    `json:"email"`
	Edad            *int       `json:"edad"`
	Ciudad          *string    `json:"ciudad"`
	CanalPreferido  string     `json:"canal_preferido"`
	IDSedePreferida *int64     `json:"id_sede_preferida"`
	IDRol           int        `json:"id_rol"`
	Estado          string     `json:"estado"`
	FechaCreacion   time.Time  `json:"fecha_creacion"`
	UltimoAcceso    *time.Time `json:"ultimo_acceso"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Error string `json:"error"`
}
