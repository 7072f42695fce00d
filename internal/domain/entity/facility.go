package entity

// Facility una sede dispensadora de la red de farmacias.
// EPS es la aseguradora afiliada; puede ser nil si la sede no tiene convenio.
type Facility struct {
	ID           int64
	NombreSede   string
	Ciudad       string
	Departamento string
	Direccion    string
	Barrio       string
	Telefono     string
	Horario      string
	EPS          *Insurer
}
