package entity

import "github.com/shopspring/decimal"

// Medication un medicamento del catálogo (tabla medicamentos).
type Medication struct {
	ID               int64
	NombreComercial  string
	PrincipioActivo  string
	Concentracion    string
	Presentacion     string
	ViaAdministracion string
	Precio           decimal.Decimal
	RequiereFormula  bool
}
