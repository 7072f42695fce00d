package entity

// Equivalence un medicamento equivalente (genérico o de otro laboratorio)
// para un medicamento del catálogo.
type Equivalence struct {
	ID                int64
	IDMedicamento     int64
	NombreEquivalente string
	Laboratorio       string
}

// Role un rol del sistema (tabla roles). El asistente solo asigna el rol 1.
type Role struct {
	ID        int64
	NombreRol string
}
