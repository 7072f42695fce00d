package entity

// Insurer una EPS (entidad promotora de salud) afiliada a la red.
type Insurer struct {
	ID       int64
	NombreEPS string
	Regimen  string // contributivo, subsidiado
	Telefono string
	Email    string
	SitioWeb string
}
