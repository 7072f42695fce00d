package entity

// InventoryLine una línea de inventario: un medicamento en una sede con su
// stock actual (tabla inventario_sede, joined con medicamento y sede).
type InventoryLine struct {
	ID                   int64
	Stock                int
	StockMinimo          int
	EstadoDisponibilidad string
	Medicamento          Medication
	Sede                 Facility
}

// Disponible indica si la línea tiene existencias.
func (l InventoryLine) Disponible() bool {
	return l.Stock > 0
}
