package entity

import "time"

// Tipos de documento de identidad aceptados.
const (
	DocTypeCC = "CC" // Cédula de Ciudadanía
	DocTypeCE = "CE" // Cédula de Extranjería
	DocTypeTI = "TI" // Tarjeta de Identidad
)

// Canales de comunicación preferidos.
const (
	ChannelWeb      = "web"
	ChannelWhatsapp = "whatsapp"
	ChannelPhone    = "telefono"
)

// DefaultRoleID rol asignado a todo usuario creado desde el asistente.
const DefaultRoleID = 1

// User representa un usuario de la red de farmacias, identificado por su
// número de documento. Los campos opcionales quedan en nil si el usuario
// no los suministró durante el registro guiado.
type User struct {
	ID              string
	TipoDocumento   string // CC, CE, TI
	Documento       string // único
	NombreUsuario   string
	Email           *string
	PasswordHash    string // credencial provisional: nombre sin espacios + sufijo aleatorio
	Edad            *int   // 18–120
	Ciudad          *string
	CanalPreferido  string // web, whatsapp, telefono
	IDSedePreferida *int64
	IDRol           int
	Estado          string // activo, inactivo
	FechaCreacion   time.Time
	UltimoAcceso    *time.Time
}
