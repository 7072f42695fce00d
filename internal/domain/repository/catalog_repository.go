package repository

import (
	"context"

	"github.com/medihelp/sally-api/internal/domain/entity"
)

// CatalogRepository puerto de lectura del catálogo de referencia:
// medicamentos, EPS, sedes, inventario y equivalencias. Solo consultas;
// el catálogo se administra por fuera del asistente.
type CatalogRepository interface {
	ListMedications(ctx context.Context) ([]entity.Medication, error)
	ListInsurers(ctx context.Context) ([]entity.Insurer, error)

	// ListFacilities devuelve las sedes con su EPS asociada.
	ListFacilities(ctx context.Context) ([]entity.Facility, error)

	// ListInventory devuelve el inventario completo con medicamento, sede y EPS.
	ListInventory(ctx context.Context) ([]entity.InventoryLine, error)

	// SearchInventory busca líneas cuyo nombre comercial o principio activo
	// contengan el término (sin distinguir mayúsculas).
	SearchInventory(ctx context.Context, term string) ([]entity.InventoryLine, error)

	ListEquivalences(ctx context.Context) ([]entity.Equivalence, error)
	ListRoles(ctx context.Context) ([]entity.Role, error)
}
