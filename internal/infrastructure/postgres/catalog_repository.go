package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medihelp/sally-api/internal/domain/entity"
	"github.com/medihelp/sally-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación del puerto CatalogRepository sobre PostgreSQL.
// Solo lecturas: el catálogo se administra por fuera del asistente.
type CatalogRepo struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository construye el adaptador de lectura del catálogo.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

// ListMedications devuelve el catálogo completo de medicamentos.
func (r *CatalogRepo) ListMedications(ctx context.Context) ([]entity.Medication, error) {
	query := `
		SELECT id_medicamento, nombre_comercial, principio_activo, concentracion,
		       presentacion, via_administracion, precio, requiere_formula
		FROM medicamentos ORDER BY nombre_comercial`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list medicamentos: %w", err)
	}
	defer rows.Close()

	var list []entity.Medication
	for rows.Next() {
		var m entity.Medication
		if err := rows.Scan(&m.ID, &m.NombreComercial, &m.PrincipioActivo, &m.Concentracion,
			&m.Presentacion, &m.ViaAdministracion, &m.Precio, &m.RequiereFormula); err != nil {
			return nil, fmt.Errorf("scan medicamento: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListInsurers devuelve todas las EPS.
func (r *CatalogRepo) ListInsurers(ctx context.Context) ([]entity.Insurer, error) {
	query := `SELECT id_eps, nombre_eps, regimen, telefono, email, sitio_web FROM eps ORDER BY nombre_eps`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list eps: %w", err)
	}
	defer rows.Close()

	var list []entity.Insurer
	for rows.Next() {
		var e entity.Insurer
		if err := rows.Scan(&e.ID, &e.NombreEPS, &e.Regimen, &e.Telefono, &e.Email, &e.SitioWeb); err != nil {
			return nil, fmt.Errorf("scan eps: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// ListFacilities devuelve todas las sedes con su EPS asociada (LEFT JOIN:
// una sede puede no tener convenio).
func (r *CatalogRepo) ListFacilities(ctx context.Context) ([]entity.Facility, error) {
	query := `
		SELECT s.id_sede, s.nombre_sede, s.ciudad, s.departamento, s.direccion, s.barrio,
		       s.telefono, s.horario,
		       e.id_eps, e.nombre_eps, e.regimen, e.telefono, e.email, e.sitio_web
		FROM sedes s
		LEFT JOIN eps e ON e.id_eps = s.id_eps
		ORDER BY s.id_sede`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sedes: %w", err)
	}
	defer rows.Close()

	var list []entity.Facility
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sede: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

const inventoryQuery = `
	SELECT i.id_inventario, i.stock, i.stock_minimo, i.estado_disponibilidad,
	       m.id_medicamento, m.nombre_comercial, m.principio_activo, m.concentracion,
	       m.presentacion, m.via_administracion, m.precio, m.requiere_formula,
	       s.id_sede, s.nombre_sede, s.ciudad, s.departamento, s.direccion, s.barrio,
	       s.telefono, s.horario,
	       e.id_eps, e.nombre_eps, e.regimen, e.telefono, e.email, e.sitio_web
	FROM inventario_sede i
	JOIN medicamentos m ON m.id_medicamento = i.id_medicamento
	JOIN sedes s ON s.id_sede = i.id_sede
	LEFT JOIN eps e ON e.id_eps = s.id_eps`

// ListInventory devuelve el inventario completo con medicamento, sede y EPS.
func (r *CatalogRepo) ListInventory(ctx context.Context) ([]entity.InventoryLine, error) {
	rows, err := r.pool.Query(ctx, inventoryQuery+` ORDER BY i.id_inventario`)
	if err != nil {
		return nil, fmt.Errorf("list inventario: %w", err)
	}
	defer rows.Close()
	return scanInventoryLines(rows)
}

// SearchInventory busca líneas cuyo nombre comercial o principio activo
// contengan el término, sin distinguir mayúsculas.
func (r *CatalogRepo) SearchInventory(ctx context.Context, term string) ([]entity.InventoryLine, error) {
	query := inventoryQuery + `
	WHERE m.nombre_comercial ILIKE '%' || $1 || '%'
	   OR m.principio_activo ILIKE '%' || $1 || '%'
	ORDER BY i.id_inventario`
	rows, err := r.pool.Query(ctx, query, term)
	if err != nil {
		return nil, fmt.Errorf("search inventario: %w", err)
	}
	defer rows.Close()
	return scanInventoryLines(rows)
}

// ListEquivalences devuelve los equivalentes de medicamentos.
func (r *CatalogRepo) ListEquivalences(ctx context.Context) ([]entity.Equivalence, error) {
	query := `SELECT id_equivalencia, id_medicamento, nombre_equivalente, laboratorio FROM equivalencias ORDER BY id_equivalencia`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list equivalencias: %w", err)
	}
	defer rows.Close()

	var list []entity.Equivalence
	for rows.Next() {
		var e entity.Equivalence
		if err := rows.Scan(&e.ID, &e.IDMedicamento, &e.NombreEquivalente, &e.Laboratorio); err != nil {
			return nil, fmt.Errorf("scan equivalencia: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// ListRoles devuelve los roles del sistema.
func (r *CatalogRepo) ListRoles(ctx context.Context) ([]entity.Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id_rol, nombre_rol FROM roles ORDER BY id_rol`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var list []entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.NombreRol); err != nil {
			return nil, fmt.Errorf("scan rol: %w", err)
		}
		list = append(list, role)
	}
	return list, rows.Err()
}

// ── Scan helpers ─────────────────────────────────────────────────────────────

// nullableInsurer columnas de EPS de un LEFT JOIN; todas pueden venir NULL.
type nullableInsurer struct {
	ID       *int64
	Nombre   *string
	Regimen  *string
	Telefono *string
	Email    *string
	SitioWeb *string
}

func (n nullableInsurer) toEntity() *entity.Insurer {
	if n.ID == nil {
		return nil
	}
	e := &entity.Insurer{ID: *n.ID}
	if n.Nombre != nil {
		e.NombreEPS = *n.Nombre
	}
	if n.Regimen != nil {
		e.Regimen = *n.Regimen
	}
	if n.Telefono != nil {
		e.Telefono = *n.Telefono
	}
	if n.Email != nil {
		e.Email = *n.Email
	}
	if n.SitioWeb != nil {
		e.SitioWeb = *n.SitioWeb
	}
	return e
}

func scanFacility(row pgx.Row) (entity.Facility, error) {
	var f entity.Facility
	var ins nullableInsurer
	err := row.Scan(&f.ID, &f.NombreSede, &f.Ciudad, &f.Departamento, &f.Direccion, &f.Barrio,
		&f.Telefono, &f.Horario,
		&ins.ID, &ins.Nombre, &ins.Regimen, &ins.Telefono, &ins.Email, &ins.SitioWeb)
	if err != nil {
		return entity.Facility{}, err
	}
	f.EPS = ins.toEntity()
	return f, nil
}

func scanInventoryLines(rows pgx.Rows) ([]entity.InventoryLine, error) {
	var list []entity.InventoryLine
	for rows.Next() {
		var l entity.InventoryLine
		var ins nullableInsurer
		err := rows.Scan(&l.ID, &l.Stock, &l.StockMinimo, &l.EstadoDisponibilidad,
			&l.Medicamento.ID, &l.Medicamento.NombreComercial, &l.Medicamento.PrincipioActivo,
			&l.Medicamento.Concentracion, &l.Medicamento.Presentacion, &l.Medicamento.ViaAdministracion,
			&l.Medicamento.Precio, &l.Medicamento.RequiereFormula,
			&l.Sede.ID, &l.Sede.NombreSede, &l.Sede.Ciudad, &l.Sede.Departamento, &l.Sede.Direccion,
			&l.Sede.Barrio, &l.Sede.Telefono, &l.Sede.Horario,
			&ins.ID, &ins.Nombre, &ins.Regimen, &ins.Telefono, &ins.Email, &ins.SitioWeb)
		if err != nil {
			return nil, fmt.Errorf("scan línea de inventario: %w", err)
		}
		l.Sede.EPS = ins.toEntity()
		list = append(list, l)
	}
	return list, rows.Err()
}
